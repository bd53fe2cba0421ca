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
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/notaryproject/crl-core-go/internal/crypto/hashutil"
	"github.com/notaryproject/crl-core-go/internal/crypto/oid"
)

// Verify checks the document signature against the given public key. The
// verification runs over the byte-exact TBSCertList region that was
// captured during parsing, never over a re-serialization.
//
// The result is deterministic for a given document and key. A structurally
// valid signature made by a different key fails with SignatureMismatchError,
// a key of the wrong family fails with KeyMismatchError, and an algorithm
// this package does not implement fails with UnsupportedAlgorithmError.
func (d *Document) Verify(publicKey crypto.PublicKey) error {
	alg, ok := oid.ToSignatureAlgorithm(d.SignatureAlgorithm.OID, d.SignatureAlgorithm.RawParameters)
	if !ok {
		return UnsupportedAlgorithmError{OID: d.SignatureAlgorithm.OID.String()}
	}

	signed := d.RawTBSCertList
	var digest []byte
	if alg.Hash != crypto.Hash(0) {
		if !alg.Hash.Available() {
			return UnsupportedAlgorithmError{OID: d.SignatureAlgorithm.OID.String()}
		}
		var err error
		digest, err = hashutil.ComputeHash(alg.Hash, signed)
		if err != nil {
			return err
		}
	}

	switch alg.PublicKeyAlgorithm {
	case x509.RSA:
		key, ok := publicKey.(*rsa.PublicKey)
		if !ok {
			return KeyMismatchError{Expected: "RSA", Actual: keyTypeName(publicKey)}
		}
		if alg.IsPSS {
			opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: alg.Hash}
			if err := rsa.VerifyPSS(key, alg.Hash, digest, d.Signature, opts); err != nil {
				return SignatureMismatchError{Detail: err}
			}
			return nil
		}
		if err := rsa.VerifyPKCS1v15(key, alg.Hash, digest, d.Signature); err != nil {
			return SignatureMismatchError{Detail: err}
		}
		return nil
	case x509.ECDSA:
		key, ok := publicKey.(*ecdsa.PublicKey)
		if !ok {
			return KeyMismatchError{Expected: "ECDSA", Actual: keyTypeName(publicKey)}
		}
		if !ecdsa.VerifyASN1(key, digest, d.Signature) {
			return SignatureMismatchError{}
		}
		return nil
	case x509.Ed25519:
		key, ok := publicKey.(ed25519.PublicKey)
		if !ok {
			return KeyMismatchError{Expected: "Ed25519", Actual: keyTypeName(publicKey)}
		}
		if !ed25519.Verify(key, signed, d.Signature) {
			return SignatureMismatchError{}
		}
		return nil
	default:
		return UnsupportedAlgorithmError{OID: d.SignatureAlgorithm.OID.String()}
	}
}

// CheckSignatureFrom verifies that the document was signed by the given
// issuer certificate. In addition to the cryptographic check, the issuer
// must be allowed to sign CRLs: its KeyUsage, when present, must include
// cRLSign, and its authority key identifier must match the document's when
// both are present.
func (d *Document) CheckSignatureFrom(issuer *x509.Certificate) error {
	if issuer == nil {
		return errors.New("crl: nil issuer certificate")
	}
	if issuer.KeyUsage != 0 && issuer.KeyUsage&x509.KeyUsageCRLSign == 0 {
		return fmt.Errorf("crl: issuer %q key usage does not permit CRL signing", issuer.Subject)
	}
	if len(d.AuthorityKeyID) > 0 && len(issuer.SubjectKeyId) > 0 &&
		!bytes.Equal(d.AuthorityKeyID, issuer.SubjectKeyId) {
		return fmt.Errorf("crl: authority key identifier does not match issuer %q", issuer.Subject)
	}
	if !bytes.Equal(d.RawIssuer, issuer.RawSubject) {
		return fmt.Errorf("crl: issuer name does not match certificate subject %q", issuer.Subject)
	}
	return d.Verify(issuer.PublicKey)
}

func keyTypeName(publicKey crypto.PublicKey) string {
	switch publicKey.(type) {
	case *rsa.PublicKey:
		return "RSA"
	case *ecdsa.PublicKey:
		return "ECDSA"
	case ed25519.PublicKey:
		return "Ed25519"
	default:
		return fmt.Sprintf("%T", publicKey)
	}
}
