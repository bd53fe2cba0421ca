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

package crl

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"errors"
	"math/big"
	"time"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/notaryproject/crl-core-go/internal/crypto/oid"
)

// Entry is one revoked-certificate record of a CRL. Entries are owned by
// the Document that parsed them and are immutable after parsing.
type Entry struct {
	// Raw is the verbatim encoding of this entry within the CRL.
	Raw []byte

	// SerialNumber is the serial number of the revoked certificate.
	SerialNumber *big.Int

	// RevocationDate is the date the certificate was revoked.
	RevocationDate time.Time

	// RawCertificateIssuer is the DER distinguished name from the
	// certificateIssuer entry extension. It is nil unless this entry names a
	// different issuing CA than the CRL itself (indirect CRLs).
	RawCertificateIssuer []byte

	// ReasonCode is the revocation reason from the cRLReasons extension,
	// -1 when the extension is absent.
	ReasonCode int

	// InvalidityDate is the date the key is suspected to have become
	// compromised, zero when the extension is absent. (RFC 5280, 5.3.2)
	InvalidityDate time.Time

	// Extensions are the entry extensions in encoded order.
	Extensions []pkix.Extension

	// effectiveIssuer is the distinguished name governing this entry per
	// RFC 5280, 5.3.3: the CRL issuer until some entry carries the
	// certificateIssuer extension, which then also applies to the entries
	// after it.
	effectiveIssuer []byte
}

// parseEntry reads one revokedCertificates element.
//
//	SEQUENCE {
//	    userCertificate     CertificateSerialNumber,
//	    revocationDate      Time,
//	    crlEntryExtensions  Extensions OPTIONAL }
//
// runningIssuer is the governing issuer carried over from the previous
// entry; the updated value for subsequent entries is returned.
func parseEntry(der *cryptobyte.String, runningIssuer []byte) (*Entry, []byte, error) {
	var raw cryptobyte.String
	if !der.ReadASN1Element(&raw, cryptobyte_asn1.SEQUENCE) {
		return nil, nil, MalformedEncodingError{Message: "malformed revoked certificate entry"}
	}

	entry := &Entry{
		Raw:        raw,
		ReasonCode: -1,
	}

	body := raw
	if !body.ReadASN1(&body, cryptobyte_asn1.SEQUENCE) {
		return nil, nil, MalformedEncodingError{Message: "malformed revoked certificate entry"}
	}

	entry.SerialNumber = new(big.Int)
	if !body.ReadASN1Integer(entry.SerialNumber) {
		return nil, nil, MalformedEncodingError{Message: "malformed serial number in revoked certificate entry"}
	}

	var err error
	entry.RevocationDate, err = parseTime(&body)
	if err != nil {
		return nil, nil, MalformedEncodingError{Message: "malformed revocation date", Detail: err}
	}

	if body.PeekASN1Tag(cryptobyte_asn1.SEQUENCE) {
		var extensions cryptobyte.String
		if !body.ReadASN1(&extensions, cryptobyte_asn1.SEQUENCE) {
			return nil, nil, MalformedEncodingError{Message: "malformed crlEntryExtensions"}
		}
		for !extensions.Empty() {
			ext, err := parseExtension(&extensions)
			if err != nil {
				return nil, nil, MalformedEncodingError{Message: "malformed entry extension", Detail: err}
			}
			if err := parseKnownEntryExtension(entry, ext); err != nil {
				return nil, nil, err
			}
			entry.Extensions = append(entry.Extensions, ext)
		}
	}
	if !body.Empty() {
		return nil, nil, MalformedEncodingError{Message: "trailing data in revoked certificate entry"}
	}

	if entry.RawCertificateIssuer != nil {
		runningIssuer = entry.RawCertificateIssuer
	}
	entry.effectiveIssuer = runningIssuer
	return entry, runningIssuer, nil
}

// parseKnownEntryExtension decodes the entry extensions this package
// surfaces as typed fields.
func parseKnownEntryExtension(entry *Entry, ext pkix.Extension) error {
	switch {
	case ext.Id.Equal(oid.CRLReasons):
		value := cryptobyte.String(ext.Value)
		if !value.ReadASN1Enum(&entry.ReasonCode) || !value.Empty() {
			return MalformedEncodingError{Message: "malformed cRLReasons entry extension"}
		}
	case ext.Id.Equal(oid.InvalidityDate):
		var invalidityDate time.Time
		rest, err := asn1.UnmarshalWithParams(ext.Value, &invalidityDate, "generalized")
		if err != nil || len(rest) != 0 {
			return MalformedEncodingError{Message: "malformed invalidityDate entry extension", Detail: err}
		}
		entry.InvalidityDate = invalidityDate
	case ext.Id.Equal(oid.CertificateIssuer):
		rawIssuer, err := parseCertificateIssuer(ext.Value)
		if err != nil {
			return MalformedEncodingError{Message: "malformed certificateIssuer entry extension", Detail: err}
		}
		entry.RawCertificateIssuer = rawIssuer
	}
	return nil
}

// parseCertificateIssuer extracts the distinguished name from a
// certificateIssuer extension value.
//
//	CertificateIssuer ::= GeneralNames
//
// Conforming CRL issuers must include the directoryName choice; the other
// GeneralName choices are skipped. (RFC 5280, 5.3.3)
func parseCertificateIssuer(value []byte) ([]byte, error) {
	input := cryptobyte.String(value)
	var generalNames cryptobyte.String
	if !input.ReadASN1(&generalNames, cryptobyte_asn1.SEQUENCE) || !input.Empty() {
		return nil, errors.New("malformed GeneralNames")
	}
	for !generalNames.Empty() {
		var name cryptobyte.String
		var tag cryptobyte_asn1.Tag
		if !generalNames.ReadAnyASN1(&name, &tag) {
			return nil, errors.New("malformed GeneralName")
		}
		// directoryName is [4], constructed because Name is a CHOICE
		if tag == cryptobyte_asn1.Tag(4).Constructed().ContextSpecific() {
			var dn cryptobyte.String
			if !name.ReadASN1Element(&dn, cryptobyte_asn1.SEQUENCE) || !name.Empty() {
				return nil, errors.New("malformed directoryName")
			}
			return dn, nil
		}
	}
	return nil, errors.New("no distinguished name in certificateIssuer extension")
}

// CertificateIssuer returns the decoded distinguished name from the
// certificateIssuer entry extension. FieldAbsentError is returned when the
// entry does not carry one, which is the case for every entry of a
// non-indirect CRL.
func (e *Entry) CertificateIssuer() (pkix.Name, error) {
	if e.RawCertificateIssuer == nil {
		return pkix.Name{}, FieldAbsentError{Field: "certificateIssuer"}
	}
	var rdn pkix.RDNSequence
	if rest, err := asn1.Unmarshal(e.RawCertificateIssuer, &rdn); err != nil || len(rest) != 0 {
		return pkix.Name{}, MalformedEncodingError{Message: "malformed certificateIssuer distinguished name", Detail: err}
	}
	var name pkix.Name
	name.FillFromRDNSequence(&rdn)
	return name, nil
}

// Encoded returns the verbatim encoding of this entry.
func (e *Entry) Encoded() EncodingBlob {
	return EncodingBlob{Data: e.Raw, Format: FormatDER}
}
