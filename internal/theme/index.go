package theme

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxThemeBytes bounds anything read from a theme source.
const maxThemeBytes = 1 << 20

var httpClient = &http.Client{Timeout: 15 * time.Second}

type sourceKind int

const (
	sourcePath sourceKind = iota
	sourceFileURL
	sourceHTTP
)

func kindOf(src string) sourceKind {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return sourceHTTP
	case strings.HasPrefix(src, "file://"):
		return sourceFileURL
	default:
		return sourcePath
	}
}

// IsSource reports whether arg names a theme file rather than an index id.
func IsSource(arg string) bool {
	if kindOf(arg) != sourcePath {
		return true
	}
	return strings.HasSuffix(strings.ToLower(arg), ".json") || strings.ContainsRune(arg, filepath.Separator)
}

// Fetch reads a single theme file from a local path, file:// or http(s) URL.
func Fetch(ctx context.Context, src string) (ThemeFile, error) {
	b, err := read(ctx, src)
	if err != nil {
		return ThemeFile{}, err
	}
	return ParseThemeFile(b)
}

func FetchIndex(ctx context.Context, indexURL string) (ThemeIndex, error) {
	b, err := read(ctx, indexURL)
	if err != nil {
		return ThemeIndex{}, err
	}
	var idx ThemeIndex
	if err := json.Unmarshal(b, &idx); err != nil {
		return ThemeIndex{}, fmt.Errorf("decode theme index %s: %w", indexURL, err)
	}
	if idx.Version == 0 {
		idx.Version = 1
	}
	return idx, nil
}

// FetchThemeByID looks id up in the index and fetches the entry it points
// to. Relative entry URLs resolve against the index location.
func FetchThemeByID(ctx context.Context, indexURL, id string) (ThemeFile, error) {
	idx, err := FetchIndex(ctx, indexURL)
	if err != nil {
		return ThemeFile{}, err
	}
	for _, entry := range idx.Themes {
		if entry.ID != id {
			continue
		}
		t, err := Fetch(ctx, relativeTo(indexURL, entry.URL))
		if err != nil {
			return ThemeFile{}, fmt.Errorf("theme %s: %w", id, err)
		}
		if t.ID != id {
			return ThemeFile{}, fmt.Errorf("theme id mismatch: index says %q, file says %q", id, t.ID)
		}
		return t, nil
	}
	return ThemeFile{}, fmt.Errorf("theme not found in index: %s", id)
}

func read(ctx context.Context, src string) ([]byte, error) {
	switch kindOf(src) {
	case sourceHTTP:
		return get(ctx, src)
	case sourceFileURL:
		u, err := url.Parse(src)
		if err != nil {
			return nil, err
		}
		return readFile(u.Path)
	default:
		return readFile(src)
	}
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxThemeBytes))
}

func get(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return nil, fmt.Errorf("fetch %s failed: %s", src, res.Status)
	}
	return io.ReadAll(io.LimitReader(res.Body, maxThemeBytes))
}

func relativeTo(base, ref string) string {
	if kindOf(ref) != sourcePath || filepath.IsAbs(ref) {
		return ref
	}
	switch kindOf(base) {
	case sourceHTTP:
		b, err := url.Parse(base)
		if err != nil {
			return ref
		}
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return b.ResolveReference(r).String()
	case sourceFileURL:
		if u, err := url.Parse(base); err == nil {
			base = u.Path
		}
	}
	return filepath.Join(filepath.Dir(base), ref)
}
