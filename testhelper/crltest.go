package testhelper

import (
	"crypto"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"
	"time"
)

var oidCertificateIssuer = asn1.ObjectIdentifier{2, 5, 29, 29}

// CRLOptions controls the optional parts of a generated CRL.
type CRLOptions struct {
	// Number is the cRLNumber value; defaults to 1.
	Number *big.Int

	// ThisUpdate defaults to one hour ago.
	ThisUpdate time.Time

	// NextUpdate defaults to one day from now. It cannot be omitted because
	// crypto/x509 refuses to create a CRL without it.
	NextUpdate time.Time

	// SignatureAlgorithm overrides the default choice for the signing key.
	SignatureAlgorithm x509.SignatureAlgorithm

	// ExtraExtensions are appended to the CRL extensions.
	ExtraExtensions []pkix.Extension
}

// CreateCRL signs a CRL over the given entries with the issuer's key and
// returns the DER encoding.
func CreateCRL(issuer *x509.Certificate, key crypto.Signer, entries []x509.RevocationListEntry, opts CRLOptions) ([]byte, error) {
	if opts.Number == nil {
		opts.Number = big.NewInt(1)
	}
	if opts.ThisUpdate.IsZero() {
		opts.ThisUpdate = time.Now().Add(-time.Hour)
	}
	if opts.NextUpdate.IsZero() {
		opts.NextUpdate = time.Now().AddDate(0, 0, 1)
	}

	template := &x509.RevocationList{
		Number:                    opts.Number,
		ThisUpdate:                opts.ThisUpdate,
		NextUpdate:                opts.NextUpdate,
		SignatureAlgorithm:        opts.SignatureAlgorithm,
		RevokedCertificateEntries: entries,
		ExtraExtensions:           opts.ExtraExtensions,
	}
	return x509.CreateRevocationList(rand.Reader, template, issuer, key)
}

// RevokedEntry builds one revoked-certificate entry.
func RevokedEntry(serial *big.Int, revokedAt time.Time) x509.RevocationListEntry {
	return x509.RevocationListEntry{
		SerialNumber:   serial,
		RevocationTime: revokedAt,
	}
}

// CertificateIssuerExtension builds a certificateIssuer entry extension
// naming the certificate's issuing CA, for generating indirect CRLs. The
// extension value is GeneralNames holding one directoryName.
func CertificateIssuerExtension(rawDN []byte) (pkix.Extension, error) {
	directoryName, err := asn1.Marshal(asn1.RawValue{
		Class:      asn1.ClassContextSpecific,
		Tag:        4,
		IsCompound: true,
		Bytes:      rawDN,
	})
	if err != nil {
		return pkix.Extension{}, err
	}
	value, err := asn1.Marshal(asn1.RawValue{
		Tag:        asn1.TagSequence,
		IsCompound: true,
		Bytes:      directoryName,
	})
	if err != nil {
		return pkix.Extension{}, err
	}
	return pkix.Extension{
		Id:       oidCertificateIssuer,
		Critical: true,
		Value:    value,
	}, nil
}
