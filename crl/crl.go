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

// Package crl parses X.509 certificate revocation lists, verifies their
// signatures, and answers revocation queries over the parsed entries.
//
// A Document only exists after a successful parse and is immutable from
// then on; it is safe for concurrent read access without locking. The
// revocation index is fully built before ParseDocument returns.
package crl

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"math/big"
	"time"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/notaryproject/crl-core-go/internal/crypto/oid"
	coreasn1 "github.com/notaryproject/crl-core-go/internal/encoding/asn1"
)

// documentType is the fixed type identifier reported by Document.Type.
const documentType = "X509"

// AlgorithmIdentifier is a signature algorithm as it appeared on the wire.
type AlgorithmIdentifier struct {
	// OID identifies the algorithm.
	OID asn1.ObjectIdentifier

	// RawParameters is the verbatim DER of the algorithm parameters,
	// including the outer tag and length; nil when absent.
	RawParameters []byte
}

// Document is a parsed X.509 certificate revocation list.
type Document struct {
	// Raw is the complete encoding the document was parsed from. For DER
	// input it is verbatim; BER input is normalized to DER first and Raw
	// holds the normalization that was actually parsed.
	Raw []byte

	// RawTBSCertList is the byte-exact TBSCertList subrange of Raw. It is
	// the region the issuer signed and is never re-serialized.
	RawTBSCertList []byte

	// RawIssuer is the byte-exact DER of the issuer distinguished name.
	RawIssuer []byte

	// Issuer is the decoded issuer distinguished name.
	Issuer pkix.Name

	// Version is the X.509 version number: the optional wire field is
	// zero-based, so an absent field means 1 and an encoded 1 means 2.
	Version int

	// ThisUpdate is the issuance date of this CRL.
	ThisUpdate time.Time

	// SignatureAlgorithm is the algorithm from the outer CertificateList; it
	// is required to match the one inside TBSCertList.
	SignatureAlgorithm AlgorithmIdentifier

	// Signature is the signature value with the BIT STRING wrapping removed.
	Signature []byte

	// Extensions are the CRL extensions in encoded order.
	Extensions []pkix.Extension

	// Number is the cRLNumber extension value, nil when absent.
	Number *big.Int

	// AuthorityKeyID is the key identifier from the authorityKeyIdentifier
	// extension, nil when absent.
	AuthorityKeyID []byte

	nextUpdate    time.Time
	hasNextUpdate bool

	entries []*Entry
	index   *revocationIndex
}

// ParseDocument parses one CRL from its binary encoding. The input is
// normally DER; definite-length BER relaxations are normalized to DER
// before parsing. Parsing either fully succeeds or returns an error with
// no partial document.
func ParseDocument(data []byte) (*Document, error) {
	der, err := coreasn1.ConvertToDER(data)
	if err != nil {
		if errors.Is(err, coreasn1.ErrEarlyEOF) {
			return nil, UnexpectedEOFError{Detail: err}
		}
		return nil, MalformedEncodingError{Message: "invalid ASN.1 structure", Detail: err}
	}
	return parseDocument(der)
}

func parseDocument(der []byte) (*Document, error) {
	doc := &Document{Raw: der}
	input := cryptobyte.String(der)

	// CertificateList ::= SEQUENCE {
	//     tbsCertList        TBSCertList,
	//     signatureAlgorithm AlgorithmIdentifier,
	//     signatureValue     BIT STRING }
	var certList cryptobyte.String
	if !input.ReadASN1(&certList, cryptobyte_asn1.SEQUENCE) {
		return nil, MalformedEncodingError{Message: "malformed CertificateList"}
	}

	var tbs cryptobyte.String
	if !certList.ReadASN1Element(&tbs, cryptobyte_asn1.SEQUENCE) {
		return nil, MalformedEncodingError{Message: "malformed TBSCertList"}
	}
	doc.RawTBSCertList = tbs

	outerAlg, err := parseAlgorithmIdentifier(&certList)
	if err != nil {
		return nil, MalformedEncodingError{Message: "malformed signatureAlgorithm", Detail: err}
	}
	doc.SignatureAlgorithm = outerAlg

	var signature asn1.BitString
	if !certList.ReadASN1BitString(&signature) {
		return nil, MalformedEncodingError{Message: "malformed signatureValue"}
	}
	doc.Signature = signature.RightAlign()
	if !certList.Empty() {
		return nil, MalformedEncodingError{Message: "trailing data after signatureValue"}
	}

	if err := parseTBSCertList(doc, tbs); err != nil {
		return nil, err
	}

	// the index must be complete before the document becomes visible
	doc.index = newRevocationIndex(doc.entries)
	return doc, nil
}

// parseTBSCertList fills doc from the TBSCertList element captured in
// RawTBSCertList.
//
//	TBSCertList ::= SEQUENCE {
//	    version              Version OPTIONAL,
//	    signature            AlgorithmIdentifier,
//	    issuer               Name,
//	    thisUpdate           Time,
//	    nextUpdate           Time OPTIONAL,
//	    revokedCertificates  SEQUENCE OF SEQUENCE { ... } OPTIONAL,
//	    crlExtensions        [0] EXPLICIT Extensions OPTIONAL }
func parseTBSCertList(doc *Document, tbs cryptobyte.String) error {
	if !tbs.ReadASN1(&tbs, cryptobyte_asn1.SEQUENCE) {
		return MalformedEncodingError{Message: "malformed TBSCertList"}
	}

	doc.Version = 1
	if tbs.PeekASN1Tag(cryptobyte_asn1.INTEGER) {
		var version int
		if !tbs.ReadASN1Integer(&version) || version < 0 {
			return MalformedEncodingError{Message: "malformed version"}
		}
		// the wire field is zero-based
		doc.Version = version + 1
	}

	tbsAlg, err := parseAlgorithmIdentifier(&tbs)
	if err != nil {
		return MalformedEncodingError{Message: "malformed signature algorithm in TBSCertList", Detail: err}
	}
	if !tbsAlg.OID.Equal(doc.SignatureAlgorithm.OID) {
		return MalformedEncodingError{Message: "signature algorithm in TBSCertList does not match CertificateList"}
	}

	var issuer cryptobyte.String
	if !tbs.ReadASN1Element(&issuer, cryptobyte_asn1.SEQUENCE) {
		return MalformedEncodingError{Message: "malformed issuer"}
	}
	doc.RawIssuer = issuer
	var issuerRDN pkix.RDNSequence
	if rest, err := asn1.Unmarshal(issuer, &issuerRDN); err != nil || len(rest) != 0 {
		return MalformedEncodingError{Message: "malformed issuer distinguished name", Detail: err}
	}
	doc.Issuer.FillFromRDNSequence(&issuerRDN)

	doc.ThisUpdate, err = parseTime(&tbs)
	if err != nil {
		return MalformedEncodingError{Message: "malformed thisUpdate", Detail: err}
	}

	if tbs.PeekASN1Tag(cryptobyte_asn1.UTCTime) || tbs.PeekASN1Tag(cryptobyte_asn1.GeneralizedTime) {
		doc.nextUpdate, err = parseTime(&tbs)
		if err != nil {
			return MalformedEncodingError{Message: "malformed nextUpdate", Detail: err}
		}
		doc.hasNextUpdate = true
	}

	if tbs.PeekASN1Tag(cryptobyte_asn1.SEQUENCE) {
		var revoked cryptobyte.String
		if !tbs.ReadASN1(&revoked, cryptobyte_asn1.SEQUENCE) {
			return MalformedEncodingError{Message: "malformed revokedCertificates"}
		}
		// An entry's governing issuer starts as the CRL issuer and is
		// carried forward once an entry overrides it. (RFC 5280, 5.3.3)
		runningIssuer := doc.RawIssuer
		for !revoked.Empty() {
			var entry *Entry
			entry, runningIssuer, err = parseEntry(&revoked, runningIssuer)
			if err != nil {
				return err
			}
			doc.entries = append(doc.entries, entry)
		}
	}

	var extensions cryptobyte.String
	var present bool
	if !tbs.ReadOptionalASN1(&extensions, &present, cryptobyte_asn1.Tag(0).Constructed().ContextSpecific()) {
		return MalformedEncodingError{Message: "malformed crlExtensions"}
	}
	if present {
		if !extensions.ReadASN1(&extensions, cryptobyte_asn1.SEQUENCE) {
			return MalformedEncodingError{Message: "malformed crlExtensions"}
		}
		for !extensions.Empty() {
			ext, err := parseExtension(&extensions)
			if err != nil {
				return MalformedEncodingError{Message: "malformed CRL extension", Detail: err}
			}
			if err := parseKnownExtension(doc, ext); err != nil {
				return err
			}
			doc.Extensions = append(doc.Extensions, ext)
		}
	}

	if !tbs.Empty() {
		return MalformedEncodingError{Message: "trailing data in TBSCertList"}
	}
	return nil
}

// parseKnownExtension decodes the CRL extensions this package surfaces as
// typed fields. Unknown extensions are kept raw in Extensions.
func parseKnownExtension(doc *Document, ext pkix.Extension) error {
	switch {
	case ext.Id.Equal(oid.CRLNumber):
		value := cryptobyte.String(ext.Value)
		doc.Number = new(big.Int)
		if !value.ReadASN1Integer(doc.Number) || !value.Empty() {
			return MalformedEncodingError{Message: "malformed cRLNumber extension"}
		}
	case ext.Id.Equal(oid.AuthorityKeyIdentifier):
		var akid struct {
			ID []byte `asn1:"optional,tag:0"`
		}
		if rest, err := asn1.Unmarshal(ext.Value, &akid); err != nil || len(rest) != 0 {
			return MalformedEncodingError{Message: "malformed authorityKeyIdentifier extension", Detail: err}
		}
		doc.AuthorityKeyID = akid.ID
	}
	return nil
}

// parseAlgorithmIdentifier reads one AlgorithmIdentifier, keeping the
// parameters as the verbatim DER element.
func parseAlgorithmIdentifier(der *cryptobyte.String) (AlgorithmIdentifier, error) {
	var ai AlgorithmIdentifier
	var aiSeq cryptobyte.String
	if !der.ReadASN1(&aiSeq, cryptobyte_asn1.SEQUENCE) {
		return ai, errors.New("malformed AlgorithmIdentifier")
	}
	if !aiSeq.ReadASN1ObjectIdentifier(&ai.OID) {
		return ai, errors.New("malformed algorithm OID")
	}
	if !aiSeq.Empty() {
		var params cryptobyte.String
		var tag cryptobyte_asn1.Tag
		if !aiSeq.ReadAnyASN1Element(&params, &tag) {
			return ai, errors.New("malformed algorithm parameters")
		}
		ai.RawParameters = params
		if !aiSeq.Empty() {
			return ai, errors.New("trailing data in AlgorithmIdentifier")
		}
	}
	return ai, nil
}

// parseExtension reads one Extension.
//
//	Extension ::= SEQUENCE {
//	    extnID     OBJECT IDENTIFIER,
//	    critical   BOOLEAN DEFAULT FALSE,
//	    extnValue  OCTET STRING }
func parseExtension(der *cryptobyte.String) (pkix.Extension, error) {
	var ext pkix.Extension
	var extSeq cryptobyte.String
	if !der.ReadASN1(&extSeq, cryptobyte_asn1.SEQUENCE) {
		return ext, errors.New("malformed extension")
	}
	if !extSeq.ReadASN1ObjectIdentifier(&ext.Id) {
		return ext, errors.New("malformed extension OID")
	}
	if extSeq.PeekASN1Tag(cryptobyte_asn1.BOOLEAN) {
		if !extSeq.ReadASN1Boolean(&ext.Critical) {
			return ext, errors.New("malformed extension critical flag")
		}
	}
	var value cryptobyte.String
	if !extSeq.ReadASN1(&value, cryptobyte_asn1.OCTET_STRING) || !extSeq.Empty() {
		return ext, errors.New("malformed extension value")
	}
	ext.Value = value
	return ext, nil
}

// parseTime reads one Time value, which is a UTCTime before 2050 and a
// GeneralizedTime from then on. (RFC 5280, 5.1.2.4)
func parseTime(der *cryptobyte.String) (time.Time, error) {
	var t time.Time
	switch {
	case der.PeekASN1Tag(cryptobyte_asn1.UTCTime):
		var utc cryptobyte.String
		if !der.ReadASN1(&utc, cryptobyte_asn1.UTCTime) {
			return t, errors.New("malformed UTCTime")
		}
		s := string(utc)
		formatStr := "060102150405Z0700"
		var err error
		t, err = time.Parse(formatStr, s)
		if err != nil {
			formatStr = "0601021504Z0700"
			t, err = time.Parse(formatStr, s)
		}
		if err != nil {
			return t, errors.New("malformed UTCTime")
		}
		if serialized := t.Format(formatStr); serialized != s {
			return t, errors.New("malformed UTCTime")
		}
		if t.Year() >= 2050 {
			// UTCTime interprets the low two-digit years as 1950-2049
			t = t.AddDate(-100, 0, 0)
		}
	case der.PeekASN1Tag(cryptobyte_asn1.GeneralizedTime):
		var generalized cryptobyte.String
		if !der.ReadASN1(&generalized, cryptobyte_asn1.GeneralizedTime) {
			return t, errors.New("malformed GeneralizedTime")
		}
		s := string(generalized)
		formatStr := "20060102150405Z0700"
		var err error
		t, err = time.Parse(formatStr, s)
		if err != nil {
			return t, errors.New("malformed GeneralizedTime")
		}
		if serialized := t.Format(formatStr); serialized != s {
			return t, errors.New("malformed GeneralizedTime")
		}
	default:
		return t, errors.New("unsupported time format")
	}
	return t, nil
}

// Type returns the fixed type identifier of this document, "X509".
func (d *Document) Type() string {
	return documentType
}

// NextUpdate returns the date by which the next CRL will be issued.
// FieldAbsentError is returned when the optional field was omitted, which
// is distinct from any zero value.
func (d *Document) NextUpdate() (time.Time, error) {
	if !d.hasNextUpdate {
		return time.Time{}, FieldAbsentError{Field: "nextUpdate"}
	}
	return d.nextUpdate, nil
}

// TBSCertList returns the byte-exact signed region of the document.
func (d *Document) TBSCertList() []byte {
	return d.RawTBSCertList
}

// SignatureValue returns the signature bytes.
func (d *Document) SignatureValue() []byte {
	return d.Signature
}

// SignatureAlgorithmName returns the conventional name of the signature
// algorithm, e.g. "SHA256-RSA". For an unrecognized algorithm the dotted
// OID string is returned.
func (d *Document) SignatureAlgorithmName() string {
	if alg, ok := oid.ToSignatureAlgorithm(d.SignatureAlgorithm.OID, d.SignatureAlgorithm.RawParameters); ok {
		return alg.Name
	}
	return d.SignatureAlgorithm.OID.String()
}

// SignatureAlgorithmOID returns the dotted string form of the signature
// algorithm OID.
func (d *Document) SignatureAlgorithmOID() string {
	return d.SignatureAlgorithm.OID.String()
}

// SignatureAlgorithmParameters returns the verbatim DER of the signature
// algorithm parameters. FieldAbsentError is returned when the parameters
// were omitted.
func (d *Document) SignatureAlgorithmParameters() ([]byte, error) {
	if d.SignatureAlgorithm.RawParameters == nil {
		return nil, FieldAbsentError{Field: "signatureAlgorithm.parameters"}
	}
	return d.SignatureAlgorithm.RawParameters, nil
}

// Encoded returns the document encoding. The original bytes are returned
// verbatim; the document is never re-serialized.
func (d *Document) Encoded() EncodingBlob {
	return EncodingBlob{Data: d.Raw, Format: FormatDER}
}

// EncodedPEM returns the document in PEM armor.
func (d *Document) EncodedPEM() EncodingBlob {
	data := pem.EncodeToMemory(&pem.Block{Type: pemTypeCRL, Bytes: d.Raw})
	return EncodingBlob{Data: data, Format: FormatPEM}
}
