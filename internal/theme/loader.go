package theme

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"termfolio/internal/config"
)

const DefaultID = "default"

//go:embed builtin/*.json
var builtinFS embed.FS

var ErrNotInstalled = errors.New("theme not installed")

type Entry struct {
	ID      string
	Builtin bool
}

func builtinIDs() []string {
	ids := []string{DefaultID}
	ents, _ := fs.ReadDir(builtinFS, "builtin")
	for _, ent := range ents {
		name := ent.Name()
		if filepath.Ext(name) == ".json" {
			ids = append(ids, name[:len(name)-5])
		}
	}
	return ids
}

func IsBuiltin(id string) bool {
	for _, b := range builtinIDs() {
		if b == id {
			return true
		}
	}
	return false
}

// Lookup returns a theme by id from the built-in set or the local themes
// directory, in that order.
func Lookup(id string) (ThemeFile, error) {
	if id == "" || id == DefaultID {
		return ThemeFile{ID: DefaultID, Name: "Default", Version: 1, Colors: DefaultPaletteHex()}, nil
	}
	if b, err := builtinFS.ReadFile("builtin/" + id + ".json"); err == nil {
		return ParseThemeFile(b)
	}
	themesDir, err := config.ThemesDir()
	if err != nil {
		return ThemeFile{}, err
	}
	b, err := os.ReadFile(filepath.Join(themesDir, id+".json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ThemeFile{}, fmt.Errorf("%w: %s", ErrNotInstalled, id)
		}
		return ThemeFile{}, err
	}
	t, err := ParseThemeFile(b)
	if err != nil {
		return ThemeFile{}, fmt.Errorf("invalid installed theme %s: %w", id, err)
	}
	if t.ID != id {
		return ThemeFile{}, fmt.Errorf("theme id mismatch: expected %q got %q", id, t.ID)
	}
	return t, nil
}

// LoadActivePaletteHex falls back to the default palette on any error and
// still reports the error so callers can log it.
func LoadActivePaletteHex(cfg config.Config) (PaletteHex, string, error) {
	t, err := Lookup(cfg.Theme.Active)
	if err != nil {
		return DefaultPaletteHex(), DefaultID, err
	}
	return t.Colors, t.ID, nil
}

func SaveThemeFile(t ThemeFile) error {
	if IsBuiltin(t.ID) {
		return fmt.Errorf("cannot overwrite built-in theme: %s", t.ID)
	}
	if err := t.Colors.Validate(); err != nil {
		return err
	}
	themesDir, err := config.ThemesDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(themesDir, 0o755); err != nil {
		return err
	}
	out, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(themesDir, t.ID+".json"), out, 0o644)
}

// List returns built-in themes first, then installed ones sorted by id.
func List() ([]Entry, error) {
	out := make([]Entry, 0, 8)
	for _, id := range builtinIDs() {
		out = append(out, Entry{ID: id, Builtin: true})
	}
	themesDir, err := config.ThemesDir()
	if err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	local := make([]string, 0, len(ents))
	for _, ent := range ents {
		name := ent.Name()
		if ent.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		id := name[:len(name)-5]
		if IsBuiltin(id) {
			continue
		}
		local = append(local, id)
	}
	sort.Strings(local)
	for _, id := range local {
		out = append(out, Entry{ID: id})
	}
	return out, nil
}

func RemoveLocalTheme(id string) error {
	if id == "" {
		return fmt.Errorf("theme id is required")
	}
	if IsBuiltin(id) {
		return fmt.Errorf("cannot uninstall built-in theme: %s", id)
	}
	themesDir, err := config.ThemesDir()
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(themesDir, id+".json")); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotInstalled, id)
		}
		return err
	}
	return nil
}
