package mnist_go

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Fetcher Collaborator returning raw decompressed bytes for a resource locator
//
// When compressed is true the payload is gzip on the wire (or on disk) and must
// come back already decompressed. Implementations own retries and timeouts;
// the dataset core does neither.
type Fetcher interface {
	Fetch(ctx context.Context, locator string, compressed bool) ([]byte, error)
}

// HTTPFetcher Fetcher downloading over HTTP(S), optionally keeping the wire payload on disk
//
// CacheDir, when non-empty, stores each downloaded payload under its base name
// and later calls for the same locator are served from disk without touching
// the network.
type HTTPFetcher struct {
	Client   *http.Client
	CacheDir string
}

func (f *HTTPFetcher) Fetch(ctx context.Context, locator string, compressed bool) ([]byte, error) {
	var cachePath string
	if f.CacheDir != "" {
		cachePath = filepath.Join(f.CacheDir, filepath.Base(locator))
		if payload, err := ioutil.ReadFile(cachePath); err == nil {
			return decompressPayload(payload, compressed)
		}
	}
	payload, err := f.download(ctx, locator)
	if err != nil {
		return nil, err
	}
	if cachePath != "" {
		if err := os.MkdirAll(f.CacheDir, 0755); err != nil {
			return nil, errors.Wrap(err, "Can't prepare cache directory")
		}
		if err := ioutil.WriteFile(cachePath, payload, 0644); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("Can't cache payload as '%s'", cachePath))
		}
	}
	return decompressPayload(payload, compressed)
}

func (f *HTTPFetcher) download(ctx context.Context, locator string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Can't prepare request for '%s'", locator))
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Can't fetch '%s'", locator))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status '%s' for '%s'", resp.Status, locator)
	}
	payload, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Can't read body of '%s'", locator))
	}
	return payload, nil
}

// FileFetcher Fetcher reading locators as local file paths
type FileFetcher struct{}

func (f FileFetcher) Fetch(ctx context.Context, locator string, compressed bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := ioutil.ReadFile(locator)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Can't read file '%s'", locator))
	}
	return decompressPayload(payload, compressed)
}

func decompressPayload(payload []byte, compressed bool) ([]byte, error) {
	if !compressed {
		return payload, nil
	}
	gz, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "Can't open gzip payload")
	}
	defer gz.Close()
	raw, err := ioutil.ReadAll(gz)
	if err != nil {
		return nil, errors.Wrap(err, "Can't decompress gzip payload")
	}
	return raw, nil
}
