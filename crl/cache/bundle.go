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

package cache

import (
	"errors"
	"time"

	"github.com/notaryproject/crl-core-go/crl"
)

const (
	// PathCRL is the file name of the CRL within a cached tarball
	PathCRL = "crl.der"

	// PathMetadata is the file name of the metadata within a cached tarball
	PathMetadata = "metadata.json"
)

// CRLMetadata records where a cached CRL came from.
type CRLMetadata struct {
	// URL is the distribution point the CRL was downloaded from
	URL string `json:"url"`

	// NextUpdate mirrors the nextUpdate field of the CRL; zero when the CRL
	// omits it
	NextUpdate time.Time `json:"nextUpdate"`
}

// Metadata is the sidecar information stored next to a cached CRL.
type Metadata struct {
	// CRL describes the cached CRL
	CRL CRLMetadata `json:"crl.der"`

	// CreatedAt is when the cache entry was written. This is distinct from
	// the CRL's thisUpdate; it marks the start of the cache effective period.
	CreatedAt time.Time `json:"createdAt"`
}

// Bundle is the in-memory form of one cache entry: a parsed CRL document
// plus its cache metadata.
type Bundle struct {
	Document *crl.Document
	Metadata Metadata
}

// Validate checks that the bundle carries everything a cache entry needs.
func (b *Bundle) Validate() error {
	if b.Document == nil {
		return errors.New("CRL document is missing")
	}
	if b.Metadata.CRL.URL == "" {
		return errors.New("CRL URL is missing")
	}
	if b.Metadata.CreatedAt.IsZero() {
		return errors.New("bundle creation time is missing")
	}
	return nil
}
