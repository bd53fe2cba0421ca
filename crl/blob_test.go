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
	"encoding/pem"
	"errors"
	"testing"

	"github.com/notaryproject/crl-core-go/testhelper"
)

func TestParseBlob(t *testing.T) {
	ca := testhelper.GetRSACACertificate()
	der, err := testhelper.CreateCRL(ca.Cert, ca.PrivateKey, nil, testhelper.CRLOptions{})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("DER", func(t *testing.T) {
		doc, err := ParseBlob(EncodingBlob{Data: der, Format: FormatDER})
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(doc.Raw, der) {
			t.Error("parsed document does not preserve the DER bytes")
		}
	})

	t.Run("PEM parses identically to DER", func(t *testing.T) {
		pemData := pem.EncodeToMemory(&pem.Block{Type: "X509 CRL", Bytes: der})
		doc, err := ParseBlob(EncodingBlob{Data: pemData, Format: FormatPEM})
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(doc.Raw, der) {
			t.Error("PEM input did not yield the same document as DER")
		}
	})

	t.Run("legacy CRL armor", func(t *testing.T) {
		pemData := pem.EncodeToMemory(&pem.Block{Type: "CRL", Bytes: der})
		if _, err := ParseBlob(EncodingBlob{Data: pemData, Format: FormatPEM}); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("wrong armor type", func(t *testing.T) {
		pemData := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
		_, err := ParseBlob(EncodingBlob{Data: pemData, Format: FormatPEM})
		var malformedErr MalformedEncodingError
		if !errors.As(err, &malformedErr) {
			t.Fatalf("expected MalformedEncodingError, got %v", err)
		}
	})

	t.Run("no PEM block", func(t *testing.T) {
		_, err := ParseBlob(EncodingBlob{Data: []byte("plain text"), Format: FormatPEM})
		var malformedErr MalformedEncodingError
		if !errors.As(err, &malformedErr) {
			t.Fatalf("expected MalformedEncodingError, got %v", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := ParseBlob(EncodingBlob{Data: der, Format: Format(42)})
		var formatErr UnsupportedFormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("expected UnsupportedFormatError, got %v", err)
		}
		if formatErr.Format != Format(42) {
			t.Errorf("unexpected format in error: %v", formatErr.Format)
		}
	})
}

func TestFormatString(t *testing.T) {
	if FormatDER.String() != "DER" || FormatPEM.String() != "PEM" {
		t.Error("unexpected format names")
	}
	if Format(42).String() != "Format(42)" {
		t.Errorf("unexpected name for unknown format: %s", Format(42))
	}
}
