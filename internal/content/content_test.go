package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedServesEveryRoutedTopic(t *testing.T) {
	lib, err := Embedded()
	require.NoError(t, err)
	assert.Empty(t, lib.Missing(RequiredTopics()...))

	about, ok := lib.Topic("about")
	require.True(t, ok)
	assert.Contains(t, about.Markdown, "Mohan Degalwade")

	banner := lib.Banner()
	assert.Len(t, banner.Art, 6)
	assert.Contains(t, banner.Welcome, "Portfolio Terminal")
}

func TestEmbeddedSectionsOrder(t *testing.T) {
	lib, err := Embedded()
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"about", "experience", "projects", "skills", "achievements", "education", "contact"},
		lib.SectionKeys())
}

func TestOverlayShadowsEmbedded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.md"), []byte("custom about"), 0o644))

	lib, err := Load(dir)
	require.NoError(t, err)
	about, _ := lib.Topic("about")
	assert.Equal(t, "custom about", about.Markdown)
	skills, _ := lib.Topic("skills")
	assert.True(t, strings.Contains(skills.Markdown, "SKILLS"), "non-overridden topics come from the binary")
	assert.Equal(t, dir, lib.Dir())
}

func TestOverlayManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := "topics:\n  - key: about\n    title: Me\n    file: me.md\n    section: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "me.md"), []byte("hi"), 0o644))

	lib, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"about"}, lib.Keys())
	assert.Equal(t, []Section{{Key: "about", Title: "Me"}}, lib.Sections())
	assert.Contains(t, lib.Missing(RequiredTopics()...), "skills")
}

func TestInvalidManifest(t *testing.T) {
	cases := map[string]string{
		"empty":     "topics: []\n",
		"duplicate": "topics:\n  - {key: a, file: help.md}\n  - {key: A, file: help.md}\n",
		"no file":   "topics:\n  - {key: a}\n",
		"syntax":    "topics: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(body), 0o644))
			_, err := Load(dir)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidManifest), "got %v", err)
		})
	}
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestIsRelevantEvent(t *testing.T) {
	assert.True(t, isRelevantEvent(fsnotify.Event{Name: "/c/about.md", Op: fsnotify.Write}))
	assert.True(t, isRelevantEvent(fsnotify.Event{Name: "/c/manifest.yaml", Op: fsnotify.Create}))
	assert.False(t, isRelevantEvent(fsnotify.Event{Name: "/c/about.md", Op: fsnotify.Chmod}))
	assert.False(t, isRelevantEvent(fsnotify.Event{Name: "/c/.about.md.swp", Op: fsnotify.Write}))
}

func TestWatcherSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, 20*time.Millisecond)
	require.NoError(t, err)
	changes, err := w.Start()
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.md"), []byte("x"), 0o644))
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change notification")
	}
}
