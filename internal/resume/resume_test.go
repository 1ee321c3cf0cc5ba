package resume

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	calls [][]string
	err   error
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return nil, r.err
}

func TestSaveBundledUsesMarkdownExtension(t *testing.T) {
	dir := t.TempDir()
	s := Saver{Filename: "Mohan_Degalwade_Resume.pdf", Dir: dir}
	got, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Mohan_Degalwade_Resume.md"), got)

	b, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, Bundled(), b)
}

func TestSaveCopiesSource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.7"), 0o644))
	dir := filepath.Join(t.TempDir(), "nested", "Downloads")

	r := &recordingRunner{}
	s := Saver{Source: src, Filename: "resume.pdf", Dir: dir, Open: true, Runner: r}
	got, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resume.pdf"), got)

	b, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(b))
	require.Len(t, r.calls, 1)
	assert.Equal(t, got, r.calls[0][len(r.calls[0])-1])
}

func TestSaveExpandsHome(t *testing.T) {
	homedir.DisableCache = true
	home := t.TempDir()
	t.Setenv("HOME", home)
	s := Saver{Filename: "cv.md", Dir: "~/Downloads"}
	got, err := s.Target()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Downloads", "cv.md"), got)
}

func TestFilenameCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	got, err := Saver{Source: "x", Filename: "../../etc/passwd", Dir: dir}.Target()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "passwd"), got)
}

func TestSaveErrors(t *testing.T) {
	_, err := Saver{Dir: t.TempDir()}.Save(context.Background())
	assert.ErrorIs(t, err, ErrNoFilename)

	_, err = Saver{Source: "/no/such/file.pdf", Filename: "a.pdf", Dir: t.TempDir()}.Save(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	r := &recordingRunner{err: errors.New("no opener")}
	dst, err := Saver{Filename: "a.md", Dir: t.TempDir(), Open: true, Runner: r}.Save(context.Background())
	require.Error(t, err)
	assert.FileExists(t, dst)
}
