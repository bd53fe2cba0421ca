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

// Package cache provides storage for downloaded CRLs keyed by their
// distribution point URL.
package cache

import (
	"context"
	"time"
)

// DefaultMaxAge is the default maximum age of a cached CRL.
const DefaultMaxAge = 24 * 7 * time.Hour

// Cache is the interface the fetcher stores downloaded CRLs behind.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves the CRL bundle with the given URL
	//
	// - if the key does not exist, return ErrNotFound
	// - if the cached CRL is older than the cache's maximum age, return
	//   ErrCacheMiss
	Get(ctx context.Context, url string) (*Bundle, error)

	// Set stores the CRL bundle with the given URL
	Set(ctx context.Context, url string, bundle *Bundle) error

	// Delete removes the CRL bundle with the given URL
	Delete(ctx context.Context, url string) error
}
