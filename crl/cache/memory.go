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
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryCache is an in-memory cache that stores CRL bundles.
//
// The cache is built on top of sync.Map to leverage its concurrency control
// and atomicity, so it is suitable for writing once and reading many times.
//
// MemoryCache doesn't handle cache cleaning but provides the Delete and
// Flush methods to remove CRLs from memory.
type MemoryCache struct {
	// MaxAge is the maximum age of the cached CRLs. A cached CRL older than
	// MaxAge is considered expired.
	MaxAge time.Duration

	store sync.Map
}

// NewMemoryCache creates a new memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		MaxAge: DefaultMaxAge,
	}
}

// Get retrieves the CRL bundle from memory
//
// - if the key does not exist, return ErrNotFound
// - if the cached CRL is expired, return ErrCacheMiss
func (c *MemoryCache) Get(ctx context.Context, url string) (*Bundle, error) {
	value, ok := c.store.Load(url)
	if !ok {
		return nil, ErrNotFound
	}

	bundle, ok := value.(*Bundle)
	if !ok {
		return nil, fmt.Errorf("invalid cached value type: %T", value)
	}

	expires := bundle.Metadata.CreatedAt.Add(c.MaxAge)
	if c.MaxAge > 0 && time.Now().After(expires) {
		return nil, ErrCacheMiss
	}

	return bundle, nil
}

// Set stores the CRL bundle in memory
func (c *MemoryCache) Set(ctx context.Context, url string, bundle *Bundle) error {
	if err := bundle.Validate(); err != nil {
		return err
	}
	c.store.Store(url, bundle)
	return nil
}

// Delete removes the CRL bundle from memory
func (c *MemoryCache) Delete(ctx context.Context, url string) error {
	c.store.Delete(url)
	return nil
}

// Flush removes all CRL bundles from memory
func (c *MemoryCache) Flush(ctx context.Context) error {
	c.store.Range(func(key, value any) bool {
		c.store.Delete(key)
		return true
	})
	return nil
}
