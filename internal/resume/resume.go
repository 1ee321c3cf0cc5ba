package resume

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"termfolio/internal/app"
)

//go:embed resume.md
var bundled []byte

var ErrNoFilename = errors.New("resume filename is empty")

type Saver struct {
	Source   string // file to copy; empty uses the bundled markdown resume
	Filename string
	Dir      string
	Open     bool
	Runner   app.CommandRunner
}

// Bundled returns the resume compiled into the binary.
func Bundled() []byte {
	out := make([]byte, len(bundled))
	copy(out, bundled)
	return out
}

// Target reports where Save will write. The bundled resume keeps its .md
// extension regardless of the configured one.
func (s Saver) Target() (string, error) {
	name := strings.TrimSpace(s.Filename)
	if name == "" {
		return "", ErrNoFilename
	}
	name = filepath.Base(name)
	if s.Source == "" {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".md"
	}
	dir := s.Dir
	if dir == "" {
		d, err := app.DefaultDownloadDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	dir, err := app.ExpandPath(dir)
	if err != nil {
		return "", fmt.Errorf("expand download dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}

// Save writes the resume into the download directory and returns its path.
func (s Saver) Save(ctx context.Context) (string, error) {
	dst, err := s.Target()
	if err != nil {
		return "", err
	}
	src, err := s.open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".resume-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write resume: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	if s.Open && s.Runner != nil {
		if err := app.OpenFile(ctx, s.Runner, dst); err != nil {
			return dst, fmt.Errorf("open %s: %w", dst, err)
		}
	}
	return dst, nil
}

func (s Saver) open() (io.ReadCloser, error) {
	if s.Source == "" {
		return io.NopCloser(strings.NewReader(string(bundled))), nil
	}
	p, err := app.ExpandPath(s.Source)
	if err != nil {
		return nil, fmt.Errorf("expand resume source: %w", err)
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open resume source: %w", err)
	}
	return f, nil
}
