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
	"encoding/pem"
	"fmt"
)

// Format identifies the encoding carried by an EncodingBlob.
type Format int

const (
	// FormatDER is the binary ASN.1 Distinguished Encoding Rules form.
	FormatDER Format = iota

	// FormatPEM is base64 text armor wrapping DER.
	FormatPEM
)

// String returns the conventional name of the format.
func (f Format) String() string {
	switch f {
	case FormatDER:
		return "DER"
	case FormatPEM:
		return "PEM"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// EncodingBlob is an encoded CRL together with its format tag. It is the
// unit of input and output for this package.
type EncodingBlob struct {
	Data   []byte
	Format Format
}

// pemTypeCRL is the PEM armor type of an X.509 CRL,
// "-----BEGIN X509 CRL-----".
const pemTypeCRL = "X509 CRL"

// ParseBlob parses one CRL from the blob according to its format tag. PEM
// input is de-armored and then parsed identically to DER input.
func ParseBlob(blob EncodingBlob) (*Document, error) {
	switch blob.Format {
	case FormatDER:
		return ParseDocument(blob.Data)
	case FormatPEM:
		der, err := decodePEM(blob.Data)
		if err != nil {
			return nil, err
		}
		return ParseDocument(der)
	default:
		return nil, UnsupportedFormatError{Format: blob.Format}
	}
}

// decodePEM strips the CRL armor from PEM input and returns the DER payload.
func decodePEM(data []byte) ([]byte, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, MalformedEncodingError{Message: "no PEM block found"}
	}
	// "CRL" armor is produced by some legacy tooling and accepted on input
	if block.Type != pemTypeCRL && block.Type != "CRL" {
		return nil, MalformedEncodingError{Message: fmt.Sprintf("unexpected PEM block type %q", block.Type)}
	}
	return block.Bytes, nil
}
