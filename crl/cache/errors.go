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

import "errors"

var (
	// ErrNotFound is returned when the requested URL has never been cached.
	ErrNotFound = errors.New("CRL not found in cache")

	// ErrCacheMiss is returned when the cached CRL exists but is older than
	// the cache's maximum age.
	ErrCacheMiss = errors.New("cache miss")
)

// BrokenFileError indicates that a cached tarball was corrupt or missing
// required data. Callers treat it like a cache miss and re-download.
type BrokenFileError struct {
	Err error
}

func (e *BrokenFileError) Error() string {
	return e.Err.Error()
}

func (e *BrokenFileError) Unwrap() error {
	return e.Err
}
