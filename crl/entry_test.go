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
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"
	"testing"
	"time"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/notaryproject/crl-core-go/testhelper"
)

var oidInvalidityDateTest = asn1.ObjectIdentifier{2, 5, 29, 24}

func TestEntryExtensions(t *testing.T) {
	ca := testhelper.GetRSACACertificate()
	invalidityDate := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	invalidityDateValue, err := asn1.MarshalWithParams(invalidityDate, "generalized")
	if err != nil {
		t.Fatal(err)
	}
	entries := []x509.RevocationListEntry{
		{
			SerialNumber:   big.NewInt(1001),
			RevocationTime: time.Now().Add(-time.Hour),
			ReasonCode:     1, // keyCompromise
			ExtraExtensions: []pkix.Extension{{
				Id:    oidInvalidityDateTest,
				Value: invalidityDateValue,
			}},
		},
		testhelper.RevokedEntry(big.NewInt(1002), time.Now().Add(-time.Hour)),
	}
	der, err := testhelper.CreateCRL(ca.Cert, ca.PrivateKey, entries, testhelper.CRLOptions{})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := ParseDocument(der)
	if err != nil {
		t.Fatal(err)
	}

	withExts, err := doc.RevokedCertificate(big.NewInt(1001))
	if err != nil {
		t.Fatal(err)
	}
	if withExts.ReasonCode != 1 {
		t.Errorf("expected reason code 1, got %d", withExts.ReasonCode)
	}
	if !withExts.InvalidityDate.Equal(invalidityDate) {
		t.Errorf("expected invalidity date %v, got %v", invalidityDate, withExts.InvalidityDate)
	}
	if len(withExts.Extensions) != 2 {
		t.Errorf("expected 2 entry extensions, got %d", len(withExts.Extensions))
	}

	plain, err := doc.RevokedCertificate(big.NewInt(1002))
	if err != nil {
		t.Fatal(err)
	}
	if plain.ReasonCode != -1 {
		t.Errorf("expected reason code -1 for absent extension, got %d", plain.ReasonCode)
	}
	if !plain.InvalidityDate.IsZero() {
		t.Error("expected zero invalidity date for absent extension")
	}
	if plain.RawCertificateIssuer != nil {
		t.Error("expected no certificateIssuer on a direct CRL entry")
	}
}

func TestEntryEncoded(t *testing.T) {
	ca := testhelper.GetRSACACertificate()
	entries := []x509.RevocationListEntry{
		testhelper.RevokedEntry(big.NewInt(5), time.Now().Add(-time.Hour)),
	}
	der, err := testhelper.CreateCRL(ca.Cert, ca.PrivateKey, entries, testhelper.CRLOptions{})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := ParseDocument(der)
	if err != nil {
		t.Fatal(err)
	}

	entry := doc.RevokedCertificates()[0]
	blob := entry.Encoded()
	if blob.Format != FormatDER {
		t.Fatalf("expected DER format, got %v", blob.Format)
	}
	// the entry encoding is a verbatim subrange of the document
	if !bytes.Contains(doc.Raw, blob.Data) {
		t.Error("entry encoding is not a subrange of the document encoding")
	}
}

func TestParseEntryMalformed(t *testing.T) {
	t.Run("not a sequence", func(t *testing.T) {
		input := cryptobyte.String([]byte{0x02, 0x01, 0x01})
		if _, _, err := parseEntry(&input, nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing revocation date", func(t *testing.T) {
		var b cryptobyte.Builder
		b.AddASN1(cryptobyte_asn1.SEQUENCE, func(child *cryptobyte.Builder) {
			child.AddASN1Int64(5)
		})
		raw, err := b.Bytes()
		if err != nil {
			t.Fatal(err)
		}
		input := cryptobyte.String(raw)
		if _, _, err := parseEntry(&input, nil); err == nil {
			t.Fatal("expected error")
		}
	})
}
