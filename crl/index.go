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
	"math/big"
)

// revocationIndex maps serial numbers to entries so that repeated lookups
// avoid a linear scan over what can be many thousands of entries. It is
// built once per Document, before the Document is published, and is
// read-only thereafter.
type revocationIndex struct {
	// indirect is true when some entry names a different issuing CA than
	// the CRL itself, in which case lookups must qualify the serial number
	// with the issuer.
	indirect bool

	bySerial map[string]*Entry

	// byIssuerSerial is populated only for indirect CRLs.
	byIssuerSerial map[string]*Entry
}

func newRevocationIndex(entries []*Entry) *revocationIndex {
	index := &revocationIndex{
		bySerial: make(map[string]*Entry, len(entries)),
	}
	for _, entry := range entries {
		if entry.RawCertificateIssuer != nil {
			index.indirect = true
			break
		}
	}
	if index.indirect {
		index.byIssuerSerial = make(map[string]*Entry, len(entries))
	}

	for _, entry := range entries {
		// the first encoded entry wins duplicate serials
		key := serialKey(entry.SerialNumber)
		if _, ok := index.bySerial[key]; !ok {
			index.bySerial[key] = entry
		}
		if index.indirect {
			key := issuerSerialKey(entry.effectiveIssuer, entry.SerialNumber)
			if _, ok := index.byIssuerSerial[key]; !ok {
				index.byIssuerSerial[key] = entry
			}
		}
	}
	return index
}

func (i *revocationIndex) lookupSerial(serial *big.Int) *Entry {
	return i.bySerial[serialKey(serial)]
}

func (i *revocationIndex) lookupIssuerSerial(rawIssuer []byte, serial *big.Int) *Entry {
	return i.byIssuerSerial[issuerSerialKey(rawIssuer, serial)]
}

func serialKey(serial *big.Int) string {
	return serial.String()
}

func issuerSerialKey(rawIssuer []byte, serial *big.Int) string {
	return string(rawIssuer) + "/" + serial.String()
}

// IsIndirect reports whether any entry of this CRL names a different
// issuing CA than the CRL issuer.
func (d *Document) IsIndirect() bool {
	return d.index.indirect
}

// IsRevoked reports whether the certificate's serial number appears in this
// CRL. For indirect CRLs the certificate's issuer must also match the
// entry's governing issuer. Presence is purely informational: no comparison
// of revocation dates against the certificate's validity is performed.
func (d *Document) IsRevoked(cert *x509.Certificate) bool {
	if cert == nil {
		return false
	}
	if d.index.indirect {
		return d.index.lookupIssuerSerial(cert.RawIssuer, cert.SerialNumber) != nil
	}
	return d.index.lookupSerial(cert.SerialNumber) != nil
}

// RevokedCertificate returns the entry for the given serial number.
// NotFoundError is returned when the serial number has no entry.
func (d *Document) RevokedCertificate(serial *big.Int) (*Entry, error) {
	if serial == nil {
		return nil, NotFoundError{}
	}
	entry := d.index.lookupSerial(serial)
	if entry == nil {
		return nil, NotFoundError{SerialNumber: serial}
	}
	return entry, nil
}

// RevokedCertificateFromCert resolves the serial number, and for indirect
// CRLs the issuer, from the certificate and returns the matching entry.
// NotFoundError is returned when the certificate has no entry.
func (d *Document) RevokedCertificateFromCert(cert *x509.Certificate) (*Entry, error) {
	if cert == nil {
		return nil, NotFoundError{}
	}
	if d.index.indirect {
		entry := d.index.lookupIssuerSerial(cert.RawIssuer, cert.SerialNumber)
		if entry == nil {
			return nil, NotFoundError{SerialNumber: cert.SerialNumber}
		}
		return entry, nil
	}
	return d.RevokedCertificate(cert.SerialNumber)
}

// RevokedCertificates returns all entries in their original encoded order,
// which is not necessarily sorted by serial number. An empty CRL yields an
// empty result; that is a valid CRL state, not an error.
func (d *Document) RevokedCertificates() []*Entry {
	if len(d.entries) == 0 {
		return nil
	}
	entries := make([]*Entry, len(d.entries))
	copy(entries, d.entries)
	return entries
}
