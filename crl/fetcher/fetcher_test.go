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

package fetcher

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/notaryproject/crl-core-go/crl/cache"
	"github.com/notaryproject/crl-core-go/testhelper"
)

func testCRL(t *testing.T) []byte {
	t.Helper()
	ca := testhelper.GetRSACACertificate()
	der, err := testhelper.CreateCRL(ca.Cert, ca.PrivateKey, nil, testhelper.CRLOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return der
}

func TestNewCachedFetcher(t *testing.T) {
	if _, err := NewCachedFetcher(nil, nil); err == nil {
		t.Fatal("expected error for nil cache client")
	}
	if _, err := NewCachedFetcher(nil, cache.NewMemoryCache()); err != nil {
		t.Fatal(err)
	}
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	der := testCRL(t)
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write(der)
	}))
	defer server.Close()

	fetcher, err := NewCachedFetcher(server.Client(), cache.NewMemoryCache())
	if err != nil {
		t.Fatal(err)
	}

	bundle, fromCache, err := fetcher.Fetch(ctx, server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if fromCache {
		t.Error("first fetch should not come from cache")
	}
	if !bytes.Equal(bundle.Document.Raw, der) {
		t.Error("fetched CRL bytes do not match")
	}
	if bundle.Metadata.CRL.URL != server.URL {
		t.Errorf("expected URL %q in metadata, got %q", server.URL, bundle.Metadata.CRL.URL)
	}
	if bundle.Metadata.CRL.NextUpdate.IsZero() {
		t.Error("expected nextUpdate in metadata")
	}

	_, fromCache, err = fetcher.Fetch(ctx, server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !fromCache {
		t.Error("second fetch should come from cache")
	}
	if requests != 1 {
		t.Errorf("expected 1 HTTP request, got %d", requests)
	}
}

func TestFetchExpiredCacheRedownloads(t *testing.T) {
	ctx := context.Background()
	der := testCRL(t)
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write(der)
	}))
	defer server.Close()

	cacheClient := cache.NewMemoryCache()
	cacheClient.MaxAge = time.Nanosecond
	fetcher, err := NewCachedFetcher(server.Client(), cacheClient)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		_, fromCache, err := fetcher.Fetch(ctx, server.URL)
		if err != nil {
			t.Fatal(err)
		}
		if fromCache {
			t.Error("expected every fetch to bypass the expired cache")
		}
	}
	if requests != 2 {
		t.Errorf("expected 2 HTTP requests, got %d", requests)
	}
}

func TestFetchErrors(t *testing.T) {
	ctx := context.Background()
	fetcher, err := NewCachedFetcher(nil, cache.NewMemoryCache())
	if err != nil {
		t.Fatal(err)
	}

	t.Run("empty URL", func(t *testing.T) {
		if _, _, err := fetcher.Fetch(ctx, ""); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, _, err := fetcher.Fetch(ctx, "ldap://example.com/crl")
		if err == nil || !strings.Contains(err.Error(), "unsupported scheme") {
			t.Fatalf("expected scheme error, got %v", err)
		}
	})

	t.Run("HTTP error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		if _, _, err := fetcher.Fetch(ctx, server.URL); err == nil {
			t.Fatal("expected error for 404 response")
		}
	})

	t.Run("response is not a CRL", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not a CRL"))
		}))
		defer server.Close()

		if _, _, err := fetcher.Fetch(ctx, server.URL); err == nil {
			t.Fatal("expected error for unparsable response")
		}
	})
}
