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
	"crypto/x509"
	"fmt"
	"time"

	"github.com/notaryproject/crl-core-go/internal/crypto/oid"
)

// Validate checks that the document is usable for revocation decisions at
// the given time: the signature chains to the issuer certificate, the
// document carries a nextUpdate that has not passed, and every critical CRL
// extension is one this package understands.
func Validate(doc *Document, issuer *x509.Certificate, now time.Time) error {
	if doc == nil {
		return fmt.Errorf("crl: nil document")
	}

	// unsupported critical extensions may change the meaning of the CRL, so
	// the CRL cannot be trusted for revocation decisions (RFC 5280, 5.2)
	for _, ext := range doc.Extensions {
		if ext.Critical && !isSupportedCriticalExtension(ext.Id.String()) {
			return fmt.Errorf("crl: unsupported critical extension %v", ext.Id)
		}
	}

	nextUpdate, err := doc.NextUpdate()
	if err != nil {
		return fmt.Errorf("crl: CRL does not carry a nextUpdate")
	}
	if now.After(nextUpdate) {
		return fmt.Errorf("crl: expired CRL. Current time %v is after CRL nextUpdate %v", now, nextUpdate)
	}

	if err := doc.CheckSignatureFrom(issuer); err != nil {
		return fmt.Errorf("crl: CRL is not signed by CA %s: %w", issuer.Subject, err)
	}
	return nil
}

// isSupportedCriticalExtension reports whether a critical CRL extension can
// be honored by this package. Delta CRLs are deliberately excluded: an
// unprocessed deltaCRLIndicator would silently under-report revocations.
func isSupportedCriticalExtension(id string) bool {
	return id == oid.IssuingDistributionPoint.String()
}
