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
	"fmt"
	"math/big"
)

// MalformedEncodingError indicates that the input is not a structurally
// valid CRL encoding. It is never returned for inputs that parse but fail
// signature verification; those yield SignatureMismatchError instead.
type MalformedEncodingError struct {
	Message string
	Detail  error
}

// Error returns error message.
func (e MalformedEncodingError) Error() string {
	msg := "crl: malformed encoding"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Detail != nil {
		msg += ": " + e.Detail.Error()
	}
	return msg
}

// Unwrap returns the internal error.
func (e MalformedEncodingError) Unwrap() error {
	return e.Detail
}

// UnexpectedEOFError indicates that a declared ASN.1 length exceeds the
// remaining input.
type UnexpectedEOFError struct {
	Detail error
}

// Error returns error message.
func (e UnexpectedEOFError) Error() string {
	msg := "crl: unexpected end of input"
	if e.Detail != nil {
		msg += ": " + e.Detail.Error()
	}
	return msg
}

// Unwrap returns the internal error.
func (e UnexpectedEOFError) Unwrap() error {
	return e.Detail
}

// UnsupportedFormatError indicates an EncodingBlob whose format tag is
// neither DER nor PEM.
type UnsupportedFormatError struct {
	Format Format
}

// Error returns error message.
func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("crl: unsupported encoding format %d", int(e.Format))
}

// UnsupportedAlgorithmError indicates a signature algorithm identifier this
// package does not implement.
type UnsupportedAlgorithmError struct {
	OID string
}

// Error returns error message.
func (e UnsupportedAlgorithmError) Error() string {
	if e.OID != "" {
		return "crl: unsupported signature algorithm " + e.OID
	}
	return "crl: unsupported signature algorithm"
}

// FieldAbsentError indicates an accessor for a genuinely optional field that
// is not present in the parsed document.
type FieldAbsentError struct {
	Field string
}

// Error returns error message.
func (e FieldAbsentError) Error() string {
	return fmt.Sprintf("crl: field %q is absent", e.Field)
}

// NotFoundError indicates a revocation query for a serial number that has no
// entry in the CRL.
type NotFoundError struct {
	SerialNumber *big.Int
}

// Error returns error message.
func (e NotFoundError) Error() string {
	if e.SerialNumber != nil {
		return fmt.Sprintf("crl: no revoked certificate with serial number %v", e.SerialNumber)
	}
	return "crl: revoked certificate not found"
}

// SignatureMismatchError indicates that the document parsed but its
// signature does not verify under the supplied public key.
type SignatureMismatchError struct {
	Detail error
}

// Error returns error message.
func (e SignatureMismatchError) Error() string {
	msg := "crl: signature verification failed"
	if e.Detail != nil {
		msg += ": " + e.Detail.Error()
	}
	return msg
}

// Unwrap returns the internal error.
func (e SignatureMismatchError) Unwrap() error {
	return e.Detail
}

// KeyMismatchError indicates a public key whose type is incompatible with
// the declared signature algorithm.
type KeyMismatchError struct {
	// Expected is the key family the signature algorithm requires.
	Expected string
	// Actual describes the key that was supplied.
	Actual string
}

// Error returns error message.
func (e KeyMismatchError) Error() string {
	if e.Expected != "" && e.Actual != "" {
		return fmt.Sprintf("crl: signature algorithm requires a %s public key, but a %s key was given", e.Expected, e.Actual)
	}
	return "crl: public key type does not match the signature algorithm"
}
