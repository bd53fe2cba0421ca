// Copyright The Notary Project Authors.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package oid collects object identifiers for crypto algorithms and for the
// CRL and CRL entry extensions defined in RFC 5280.
package oid

import "encoding/asn1"

// OIDs for hash algorithms
var (
	// SHA1 (id-sha1) is defined in RFC 3370 2.1 SHA-1
	SHA1 = asn1.ObjectIdentifier{1, 3, 14, 3, 2, 26}

	// SHA256 (id-sha256) is defined in RFC 8017 B.1 Hash Functions
	SHA256 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}

	// SHA384 (id-sha384) is defined in RFC 8017 B.1 Hash Functions
	SHA384 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}

	// SHA512 (id-sha512) is defined in RFC 8017 B.1 Hash Functions
	SHA512 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}
)

// OIDs for signature algorithms
var (
	// RSA is defined in RFC 8017 C ASN.1 Module
	RSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}

	// SHA1WithRSA is defined in RFC 8017 C ASN.1 Module
	SHA1WithRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 5}

	// SHA1WithRSAISO is the ISO assignment of sha1-with-rsa-signature.
	// Some legacy issuers are known to use it in place of SHA1WithRSA.
	SHA1WithRSAISO = asn1.ObjectIdentifier{1, 3, 14, 3, 2, 29}

	// SHA256WithRSA is defined in RFC 8017 C ASN.1 Module
	SHA256WithRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}

	// SHA384WithRSA is defined in RFC 8017 C ASN.1 Module
	SHA384WithRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 12}

	// SHA512WithRSA is defined in RFC 8017 C ASN.1 Module
	SHA512WithRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 13}

	// RSAPSS (id-RSASSA-PSS) is defined in RFC 8017 C ASN.1 Module
	RSAPSS = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 10}

	// MGF1 (id-mgf1) is defined in RFC 8017 C ASN.1 Module
	MGF1 = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 8}

	// ECDSAWithSHA1 is defined in ANSI X9.62
	ECDSAWithSHA1 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 1}

	// ECDSAWithSHA256 is defined in RFC 5758 3.2 ECDSA Signature Algorithm
	ECDSAWithSHA256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 2}

	// ECDSAWithSHA384 is defined in RFC 5758 3.2 ECDSA Signature Algorithm
	ECDSAWithSHA384 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 3}

	// ECDSAWithSHA512 is defined in RFC 5758 3.2 ECDSA Signature Algorithm
	ECDSAWithSHA512 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 4}

	// Ed25519 (id-Ed25519) is defined in RFC 8410 3 Curve25519 and Curve448
	// Algorithm Identifiers
	Ed25519 = asn1.ObjectIdentifier{1, 3, 101, 112}
)

// OIDs for CRL extensions defined in RFC 5280 5.2
var (
	// AuthorityKeyIdentifier (id-ce-authorityKeyIdentifier) is defined in
	// RFC 5280 5.2.1
	AuthorityKeyIdentifier = asn1.ObjectIdentifier{2, 5, 29, 35}

	// CRLNumber (id-ce-cRLNumber) is defined in RFC 5280 5.2.3
	CRLNumber = asn1.ObjectIdentifier{2, 5, 29, 20}

	// DeltaCRLIndicator (id-ce-deltaCRLIndicator) is defined in RFC 5280 5.2.4
	DeltaCRLIndicator = asn1.ObjectIdentifier{2, 5, 29, 27}

	// IssuingDistributionPoint (id-ce-issuingDistributionPoint) is defined in
	// RFC 5280 5.2.5
	IssuingDistributionPoint = asn1.ObjectIdentifier{2, 5, 29, 28}

	// FreshestCRL (id-ce-freshestCRL) is defined in RFC 5280 5.2.6
	FreshestCRL = asn1.ObjectIdentifier{2, 5, 29, 46}
)

// OIDs for CRL entry extensions defined in RFC 5280 5.3
var (
	// CRLReasons (id-ce-cRLReasons) is defined in RFC 5280 5.3.1
	CRLReasons = asn1.ObjectIdentifier{2, 5, 29, 21}

	// InvalidityDate (id-ce-invalidityDate) is defined in RFC 5280 5.3.2
	InvalidityDate = asn1.ObjectIdentifier{2, 5, 29, 24}

	// CertificateIssuer (id-ce-certificateIssuer) is defined in RFC 5280 5.3.3
	CertificateIssuer = asn1.ObjectIdentifier{2, 5, 29, 29}
)
