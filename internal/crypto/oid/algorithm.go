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

package oid

import (
	"crypto"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
)

// SignatureAlgorithm ties a signature algorithm identifier to the parameters
// needed to verify a signature made with it.
type SignatureAlgorithm struct {
	// Name is the conventional printable name, e.g. "SHA256-RSA".
	Name string

	// OID identifies the algorithm on the wire.
	OID asn1.ObjectIdentifier

	// PublicKeyAlgorithm is the key family the algorithm belongs to.
	PublicKeyAlgorithm x509.PublicKeyAlgorithm

	// Hash is the digest computed over the signed bytes. Zero for algorithms
	// that hash internally (Ed25519).
	Hash crypto.Hash

	// IsPSS reports whether the RSASSA-PSS scheme is used instead of
	// PKCS#1 v1.5.
	IsPSS bool
}

var signatureAlgorithms = []SignatureAlgorithm{
	{"SHA1-RSA", SHA1WithRSA, x509.RSA, crypto.SHA1, false},
	{"SHA1-RSA", SHA1WithRSAISO, x509.RSA, crypto.SHA1, false},
	{"SHA256-RSA", SHA256WithRSA, x509.RSA, crypto.SHA256, false},
	{"SHA384-RSA", SHA384WithRSA, x509.RSA, crypto.SHA384, false},
	{"SHA512-RSA", SHA512WithRSA, x509.RSA, crypto.SHA512, false},
	{"SHA256-RSAPSS", RSAPSS, x509.RSA, crypto.SHA256, true},
	{"SHA384-RSAPSS", RSAPSS, x509.RSA, crypto.SHA384, true},
	{"SHA512-RSAPSS", RSAPSS, x509.RSA, crypto.SHA512, true},
	{"ECDSA-SHA1", ECDSAWithSHA1, x509.ECDSA, crypto.SHA1, false},
	{"ECDSA-SHA256", ECDSAWithSHA256, x509.ECDSA, crypto.SHA256, false},
	{"ECDSA-SHA384", ECDSAWithSHA384, x509.ECDSA, crypto.SHA384, false},
	{"ECDSA-SHA512", ECDSAWithSHA512, x509.ECDSA, crypto.SHA512, false},
	{"Ed25519", Ed25519, x509.Ed25519, crypto.Hash(0), false},
}

// pssParameters reflects the parameters in an AlgorithmIdentifier that
// specifies RSASSA-PSS. See RFC 8017, A.2.3.
type pssParameters struct {
	Hash         pkix.AlgorithmIdentifier `asn1:"explicit,tag:0"`
	MGF          pkix.AlgorithmIdentifier `asn1:"explicit,tag:1"`
	SaltLength   int                      `asn1:"explicit,tag:2"`
	TrailerField int                      `asn1:"optional,explicit,tag:3,default:1"`
}

// ToSignatureAlgorithm resolves a signature algorithm identifier, with its
// raw DER parameters, to the verification parameters it implies. The second
// return value is false for unrecognized identifiers.
//
// For RSASSA-PSS the digest is carried in the parameters rather than the
// OID; only the SHA-256/384/512 parameter combinations with MGF1 and the
// standard salt length are accepted, mirroring crypto/x509.
func ToSignatureAlgorithm(alg asn1.ObjectIdentifier, params []byte) (SignatureAlgorithm, bool) {
	if alg.Equal(RSAPSS) {
		return toPSSAlgorithm(params)
	}
	for _, details := range signatureAlgorithms {
		if details.OID.Equal(alg) && !details.IsPSS {
			return details, true
		}
	}
	return SignatureAlgorithm{}, false
}

func toPSSAlgorithm(params []byte) (SignatureAlgorithm, bool) {
	var pss pssParameters
	if rest, err := asn1.Unmarshal(params, &pss); err != nil || len(rest) != 0 {
		return SignatureAlgorithm{}, false
	}

	// PSS is greatly overburdened with options. This code forces them into
	// three buckets by requiring that the MGF1 hash function always match the
	// message hash function, as recommended in RFC 3447, Section 8.1.
	if !pss.MGF.Algorithm.Equal(MGF1) {
		return SignatureAlgorithm{}, false
	}
	var mgf1Hash pkix.AlgorithmIdentifier
	if rest, err := asn1.Unmarshal(pss.MGF.Parameters.FullBytes, &mgf1Hash); err != nil || len(rest) != 0 {
		return SignatureAlgorithm{}, false
	}
	if !mgf1Hash.Algorithm.Equal(pss.Hash.Algorithm) {
		return SignatureAlgorithm{}, false
	}

	var saltLen int
	switch {
	case pss.Hash.Algorithm.Equal(SHA256):
		saltLen = crypto.SHA256.Size()
	case pss.Hash.Algorithm.Equal(SHA384):
		saltLen = crypto.SHA384.Size()
	case pss.Hash.Algorithm.Equal(SHA512):
		saltLen = crypto.SHA512.Size()
	default:
		return SignatureAlgorithm{}, false
	}
	if pss.SaltLength != saltLen || pss.TrailerField != 1 {
		return SignatureAlgorithm{}, false
	}

	hash, _ := ToHash(pss.Hash.Algorithm)
	for _, details := range signatureAlgorithms {
		if details.IsPSS && details.Hash == hash {
			return details, true
		}
	}
	return SignatureAlgorithm{}, false
}
