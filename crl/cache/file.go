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
	"archive/tar"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/notaryproject/crl-core-go/crl"
)

// tempFileName is the prefix of the temporary file
const tempFileName = "crl-*"

// FileCache stores each CRL as a tarball of two files, crl.der and
// metadata.json. The crl.der file is the CRL encoding in DER and the
// metadata.json file is its cache metadata. The cache builds on top of the
// UNIX file system to leverage the file system concurrency control and
// atomicity.
//
// NOTE: For Windows, the atomicity is not guaranteed. Please avoid using
// this cache on Windows when concurrent write is required.
//
// FileCache doesn't handle cache cleaning but provides the Delete and Flush
// methods to remove the CRLs from the file system.
type FileCache struct {
	// MaxAge is the maximum age of the cached CRLs. A cached CRL older than
	// MaxAge is considered expired.
	MaxAge time.Duration

	root string
}

// NewFileCache creates a new file system cache
//
//   - root is the directory to store the CRLs.
func NewFileCache(root string) (*FileCache, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &FileCache{
		MaxAge: DefaultMaxAge,
		root:   root,
	}, nil
}

// Get retrieves the CRL bundle from the file system
//
// - if the key does not exist, return ErrNotFound
// - if the cached CRL is expired, return ErrCacheMiss
func (c *FileCache) Get(ctx context.Context, url string) (bundle *Bundle, err error) {
	f, err := os.Open(filepath.Join(c.root, fileName(url)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bundle, err = parseBundleFromTar(f)
	if err != nil {
		return nil, err
	}

	expires := bundle.Metadata.CreatedAt.Add(c.MaxAge)
	if c.MaxAge > 0 && time.Now().After(expires) {
		// do not delete the file to maintain the idempotent behavior
		return nil, ErrCacheMiss
	}

	return bundle, nil
}

// Set stores the CRL bundle in the file system
func (c *FileCache) Set(ctx context.Context, url string, bundle *Bundle) error {
	// save to temp file
	tempFile, err := os.CreateTemp("", tempFileName)
	if err != nil {
		return err
	}
	defer tempFile.Close()

	if err := saveTar(tempFile, bundle); err != nil {
		return err
	}

	// rename is atomic on UNIX-like platforms
	return os.Rename(tempFile.Name(), filepath.Join(c.root, fileName(url)))
}

// Delete removes the CRL bundle file from the file system
func (c *FileCache) Delete(ctx context.Context, url string) error {
	// remove is atomic on UNIX-like platforms
	return os.Remove(filepath.Join(c.root, fileName(url)))
}

// Flush removes all CRLs from the file system
func (c *FileCache) Flush(ctx context.Context) error {
	return filepath.Walk(c.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		// remove is atomic on UNIX-like platforms
		return os.Remove(path)
	})
}

// fileName returns the file name of the CRL bundle tarball
func fileName(url string) string {
	return hashURL(url) + ".tar"
}

// hashURL hashes the URL with SHA256 and returns the hex-encoded result
func hashURL(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])
}

// parseBundleFromTar parses a CRL bundle from a tarball
//
// The tarball contains two files:
// - crl.der: the CRL in DER format
// - metadata.json: the metadata of the CRL
//
// example of metadata.json:
//
//	{
//	  "crl.der": {
//	    "url": "https://example.com/crl.der"
//	  },
//	  "createdAt": "2026-07-20T00:00:00Z"
//	}
func parseBundleFromTar(data io.Reader) (*Bundle, error) {
	bundle := &Bundle{}

	tarReader := tar.NewReader(data)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &BrokenFileError{
				Err: fmt.Errorf("failed to read tarball: %w", err),
			}
		}

		switch header.Name {
		case PathCRL:
			data, err := io.ReadAll(tarReader)
			if err != nil {
				return nil, err
			}

			doc, err := crl.ParseDocument(data)
			if err != nil {
				return nil, &BrokenFileError{
					Err: fmt.Errorf("failed to parse CRL from tarball: %w", err),
				}
			}
			bundle.Document = doc
		case PathMetadata:
			var metadata Metadata
			if err := json.NewDecoder(tarReader).Decode(&metadata); err != nil {
				return nil, &BrokenFileError{
					Err: fmt.Errorf("failed to parse CRL metadata from tarball: %w", err),
				}
			}
			bundle.Metadata = metadata
		}
	}
	if err := bundle.Validate(); err != nil {
		return nil, &BrokenFileError{Err: err}
	}

	return bundle, nil
}

// saveTar writes the CRL bundle as a tarball holding crl.der and
// metadata.json. The CRL encoding is written verbatim.
func saveTar(w io.Writer, bundle *Bundle) (err error) {
	if err := bundle.Validate(); err != nil {
		return err
	}

	tarWriter := tar.NewWriter(w)
	defer func() {
		if cerr := tarWriter.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := addToTar(PathCRL, bundle.Document.Raw, bundle.Metadata.CreatedAt, tarWriter); err != nil {
		return err
	}

	metadataBytes, err := json.Marshal(bundle.Metadata)
	if err != nil {
		return err
	}
	return addToTar(PathMetadata, metadataBytes, time.Now(), tarWriter)
}

func addToTar(fileName string, data []byte, modTime time.Time, tw *tar.Writer) error {
	header := &tar.Header{
		Name:    fileName,
		Size:    int64(len(data)),
		Mode:    0644,
		ModTime: modTime,
	}
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err := tw.Write(data)
	return err
}
