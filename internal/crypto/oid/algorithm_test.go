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
	"testing"
)

func TestToSignatureAlgorithm(t *testing.T) {
	tests := []struct {
		name     string
		alg      asn1.ObjectIdentifier
		wantName string
		wantKey  x509.PublicKeyAlgorithm
		wantHash crypto.Hash
		wantOK   bool
	}{
		{"SHA256-RSA", SHA256WithRSA, "SHA256-RSA", x509.RSA, crypto.SHA256, true},
		{"SHA384-RSA", SHA384WithRSA, "SHA384-RSA", x509.RSA, crypto.SHA384, true},
		{"SHA512-RSA", SHA512WithRSA, "SHA512-RSA", x509.RSA, crypto.SHA512, true},
		{"SHA1-RSA ISO variant", SHA1WithRSAISO, "SHA1-RSA", x509.RSA, crypto.SHA1, true},
		{"ECDSA-SHA256", ECDSAWithSHA256, "ECDSA-SHA256", x509.ECDSA, crypto.SHA256, true},
		{"ECDSA-SHA384", ECDSAWithSHA384, "ECDSA-SHA384", x509.ECDSA, crypto.SHA384, true},
		{"ECDSA-SHA512", ECDSAWithSHA512, "ECDSA-SHA512", x509.ECDSA, crypto.SHA512, true},
		{"Ed25519", Ed25519, "Ed25519", x509.Ed25519, crypto.Hash(0), true},
		{"unknown OID", asn1.ObjectIdentifier{1, 2, 3, 4}, "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alg, ok := ToSignatureAlgorithm(tt.alg, nil)
			if ok != tt.wantOK {
				t.Fatalf("ToSignatureAlgorithm() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if alg.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", alg.Name, tt.wantName)
			}
			if alg.PublicKeyAlgorithm != tt.wantKey {
				t.Errorf("PublicKeyAlgorithm = %v, want %v", alg.PublicKeyAlgorithm, tt.wantKey)
			}
			if alg.Hash != tt.wantHash {
				t.Errorf("Hash = %v, want %v", alg.Hash, tt.wantHash)
			}
		})
	}
}

func TestToSignatureAlgorithmPSS(t *testing.T) {
	params := marshalPSSParams(t, SHA256, crypto.SHA256.Size())
	alg, ok := ToSignatureAlgorithm(RSAPSS, params)
	if !ok {
		t.Fatal("ToSignatureAlgorithm() failed for valid PSS parameters")
	}
	if alg.Name != "SHA256-RSAPSS" || !alg.IsPSS || alg.Hash != crypto.SHA256 {
		t.Errorf("unexpected algorithm: %+v", alg)
	}

	// wrong salt length must be rejected
	bad := marshalPSSParams(t, SHA256, 20)
	if _, ok := ToSignatureAlgorithm(RSAPSS, bad); ok {
		t.Error("ToSignatureAlgorithm() accepted PSS parameters with non-standard salt length")
	}

	// garbage parameters must be rejected
	if _, ok := ToSignatureAlgorithm(RSAPSS, []byte{0x30}); ok {
		t.Error("ToSignatureAlgorithm() accepted malformed PSS parameters")
	}
}

func marshalPSSParams(t *testing.T, hashOID asn1.ObjectIdentifier, saltLen int) []byte {
	t.Helper()
	hashAlg := pkix.AlgorithmIdentifier{
		Algorithm:  hashOID,
		Parameters: asn1.NullRawValue,
	}
	hashDER, err := asn1.Marshal(hashAlg)
	if err != nil {
		t.Fatal(err)
	}
	params := pssParameters{
		Hash: hashAlg,
		MGF: pkix.AlgorithmIdentifier{
			Algorithm:  MGF1,
			Parameters: asn1.RawValue{FullBytes: hashDER},
		},
		SaltLength:   saltLen,
		TrailerField: 1,
	}
	der, err := asn1.Marshal(params)
	if err != nil {
		t.Fatal(err)
	}
	return der
}
