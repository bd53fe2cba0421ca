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
	"crypto/x509"
	"encoding/asn1"
	"errors"
	"testing"

	"github.com/notaryproject/crl-core-go/testhelper"
)

func TestVerifyRSA(t *testing.T) {
	ca := testhelper.GetRSACACertificate()
	der, err := testhelper.CreateCRL(ca.Cert, ca.PrivateKey, nil, testhelper.CRLOptions{})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := ParseDocument(der)
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.Verify(ca.Cert.PublicKey); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}

	// verification is deterministic
	if err := doc.Verify(ca.Cert.PublicKey); err != nil {
		t.Fatalf("second verification disagreed with the first: %v", err)
	}
}

func TestVerifyRSAPSS(t *testing.T) {
	ca := testhelper.GetRSACACertificate()
	der, err := testhelper.CreateCRL(ca.Cert, ca.PrivateKey, nil, testhelper.CRLOptions{
		SignatureAlgorithm: x509.SHA256WithRSAPSS,
	})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := ParseDocument(der)
	if err != nil {
		t.Fatal(err)
	}

	if name := doc.SignatureAlgorithmName(); name != "SHA256-RSAPSS" {
		t.Errorf("expected SHA256-RSAPSS, got %s", name)
	}
	if err := doc.Verify(ca.Cert.PublicKey); err != nil {
		t.Fatalf("expected valid PSS signature, got %v", err)
	}
}

func TestVerifyECDSA(t *testing.T) {
	ca := testhelper.GetECCACertificate()
	der, err := testhelper.CreateCRL(ca.Cert, ca.PrivateKey, nil, testhelper.CRLOptions{})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := ParseDocument(der)
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.Verify(ca.Cert.PublicKey); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}
}

func TestVerifyEd25519(t *testing.T) {
	ca := testhelper.GetEd25519CACertificate()
	der, err := testhelper.CreateCRL(ca.Cert, ca.PrivateKey, nil, testhelper.CRLOptions{})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := ParseDocument(der)
	if err != nil {
		t.Fatal(err)
	}

	if name := doc.SignatureAlgorithmName(); name != "Ed25519" {
		t.Errorf("expected Ed25519, got %s", name)
	}
	if err := doc.Verify(ca.Cert.PublicKey); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	ca := testhelper.GetRSACACertificate()
	der, err := testhelper.CreateCRL(ca.Cert, ca.PrivateKey, nil, testhelper.CRLOptions{})
	if err != nil {
		t.Fatal(err)
	}

	// the signature content octets are at the tail of the encoding
	tampered := bytes.Clone(der)
	tampered[len(tampered)-1] ^= 0xff

	doc, err := ParseDocument(tampered)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Verify(ca.Cert.PublicKey)
	var mismatchErr SignatureMismatchError
	if !errors.As(err, &mismatchErr) {
		t.Fatalf("expected SignatureMismatchError, got %v", err)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	rsaCA := testhelper.GetRSACACertificate()
	der, err := testhelper.CreateCRL(rsaCA.Cert, rsaCA.PrivateKey, nil, testhelper.CRLOptions{})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := ParseDocument(der)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("wrong key family", func(t *testing.T) {
		ecCA := testhelper.GetECCACertificate()
		err := doc.Verify(ecCA.Cert.PublicKey)
		var keyErr KeyMismatchError
		if !errors.As(err, &keyErr) {
			t.Fatalf("expected KeyMismatchError, got %v", err)
		}
		if keyErr.Expected != "RSA" || keyErr.Actual != "ECDSA" {
			t.Errorf("unexpected key families in error: %v", keyErr)
		}
	})

	t.Run("wrong key of the right family", func(t *testing.T) {
		other := testhelper.GetRSALeafCertificate()
		err := doc.Verify(other.Cert.PublicKey)
		var mismatchErr SignatureMismatchError
		if !errors.As(err, &mismatchErr) {
			t.Fatalf("expected SignatureMismatchError, got %v", err)
		}
	})
}

func TestVerifyUnsupportedAlgorithm(t *testing.T) {
	// md5WithRSAEncryption is well-formed but not supported
	der := minimalCertListDER(t, asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 4})
	doc, err := ParseDocument(der)
	if err != nil {
		t.Fatal(err)
	}

	ca := testhelper.GetRSACACertificate()
	err = doc.Verify(ca.Cert.PublicKey)
	var algErr UnsupportedAlgorithmError
	if !errors.As(err, &algErr) {
		t.Fatalf("expected UnsupportedAlgorithmError, got %v", err)
	}
	if algErr.OID != "1.2.840.113549.1.1.4" {
		t.Errorf("unexpected OID in error: %s", algErr.OID)
	}
}

func TestCheckSignatureFrom(t *testing.T) {
	ca := testhelper.GetRSACACertificate()
	der, err := testhelper.CreateCRL(ca.Cert, ca.PrivateKey, nil, testhelper.CRLOptions{})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := ParseDocument(der)
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.CheckSignatureFrom(ca.Cert); err != nil {
		t.Fatalf("expected issuer to check out, got %v", err)
	}

	t.Run("nil issuer", func(t *testing.T) {
		if err := doc.CheckSignatureFrom(nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("issuer without cRLSign key usage", func(t *testing.T) {
		leaf := testhelper.GetRSALeafCertificate()
		if err := doc.CheckSignatureFrom(leaf.Cert); err == nil {
			t.Fatal("expected error for certificate not allowed to sign CRLs")
		}
	})

	t.Run("issuer with a different subject", func(t *testing.T) {
		other := testhelper.GetECCACertificate()
		if err := doc.CheckSignatureFrom(other.Cert); err == nil {
			t.Fatal("expected error for mismatched issuer name")
		}
	})
}
