package theme

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type Hex string

type PaletteHex struct {
	Prompt       Hex `json:"prompt"`
	Path         Hex `json:"path"`
	Command      Hex `json:"command"`
	Success      Hex `json:"success"`
	Error        Hex `json:"error"`
	Hint         Hex `json:"hint"`
	Highlight    Hex `json:"highlight"`
	Heading      Hex `json:"heading"`
	AccentOrange Hex `json:"accent_orange"`
	AccentBlue   Hex `json:"accent_blue"`
	TextPrimary  Hex `json:"text_primary"`
	TextMuted    Hex `json:"text_muted"`
	Border       Hex `json:"border"`
	TabActiveBg  Hex `json:"tab_active_bg"`
	TabActiveFg  Hex `json:"tab_active_fg"`
	TabInactive  Hex `json:"tab_inactive"`
	StatusText   Hex `json:"status_text"`
	BannerLine1  Hex `json:"banner_line_1"`
	BannerLine2  Hex `json:"banner_line_2"`
	BannerLine3  Hex `json:"banner_line_3"`
	BannerLine4  Hex `json:"banner_line_4"`
	BannerLine5  Hex `json:"banner_line_5"`
	BannerLine6  Hex `json:"banner_line_6"`
}

type ThemeFile struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Version int               `json:"version"`
	Vars    map[string]string `json:"vars,omitempty"`
	Colors  PaletteHex        `json:"colors"`
}

type PaletteResolved struct {
	Prompt       string
	Path         string
	Command      string
	Success      string
	Error        string
	Hint         string
	Highlight    string
	Heading      string
	AccentOrange string
	AccentBlue   string
	TextPrimary  string
	TextMuted    string
	Border       string
	TabActiveBg  string
	TabActiveFg  string
	TabInactive  string
	StatusText   string
	BannerLines  [6]string
}

var (
	hexRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	varRe = regexp.MustCompile(`^var\(--([a-zA-Z0-9_-]+)\)$`)
	idRe  = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)
)

func (p *PaletteHex) fields() map[string]*Hex {
	return map[string]*Hex{
		"prompt":        &p.Prompt,
		"path":          &p.Path,
		"command":       &p.Command,
		"success":       &p.Success,
		"error":         &p.Error,
		"hint":          &p.Hint,
		"highlight":     &p.Highlight,
		"heading":       &p.Heading,
		"accent_orange": &p.AccentOrange,
		"accent_blue":   &p.AccentBlue,
		"text_primary":  &p.TextPrimary,
		"text_muted":    &p.TextMuted,
		"border":        &p.Border,
		"tab_active_bg": &p.TabActiveBg,
		"tab_active_fg": &p.TabActiveFg,
		"tab_inactive":  &p.TabInactive,
		"status_text":   &p.StatusText,
		"banner_line_1": &p.BannerLine1,
		"banner_line_2": &p.BannerLine2,
		"banner_line_3": &p.BannerLine3,
		"banner_line_4": &p.BannerLine4,
		"banner_line_5": &p.BannerLine5,
		"banner_line_6": &p.BannerLine6,
	}
}

func (p PaletteHex) Validate() error {
	fields := p.fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if val := *fields[key]; !hexRe.MatchString(string(val)) {
			return fmt.Errorf("invalid hex color for %s: %q", key, string(val))
		}
	}
	return nil
}

type rawThemeFile struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Version int               `json:"version"`
	Vars    map[string]string `json:"vars"`
	Colors  map[string]string `json:"colors"`
}

// ParseThemeFile decodes a theme. Missing colors fall back to the default
// palette; values may reference vars as var(--name).
func ParseThemeFile(b []byte) (ThemeFile, error) {
	var raw rawThemeFile
	if err := json.Unmarshal(b, &raw); err != nil {
		return ThemeFile{}, err
	}
	if raw.ID == "" {
		return ThemeFile{}, fmt.Errorf("theme id is required")
	}
	if !idRe.MatchString(raw.ID) {
		return ThemeFile{}, fmt.Errorf("invalid theme id: %q", raw.ID)
	}
	t := ThemeFile{
		ID:      raw.ID,
		Name:    raw.Name,
		Version: raw.Version,
		Vars:    raw.Vars,
		Colors:  DefaultPaletteHex(),
	}
	if t.Version == 0 {
		t.Version = 1
	}
	fields := t.Colors.fields()
	for key, val := range raw.Colors {
		dst, ok := fields[key]
		if !ok {
			return ThemeFile{}, fmt.Errorf("unknown color key: %s", key)
		}
		resolved, err := resolveVar(val, raw.Vars, map[string]bool{})
		if err != nil {
			return ThemeFile{}, fmt.Errorf("color %s: %w", key, err)
		}
		*dst = Hex(resolved)
	}
	if err := t.Colors.Validate(); err != nil {
		return ThemeFile{}, err
	}
	return t, nil
}

func resolveVar(val string, vars map[string]string, seen map[string]bool) (string, error) {
	val = strings.TrimSpace(val)
	if !strings.HasPrefix(val, "var(") {
		return val, nil
	}
	m := varRe.FindStringSubmatch(val)
	if m == nil {
		return "", fmt.Errorf("invalid variable reference: %q", val)
	}
	name := m[1]
	if seen[name] {
		return "", fmt.Errorf("circular variable reference: %s", name)
	}
	next, ok := vars[name]
	if !ok {
		return "", fmt.Errorf("unknown color variable: %s", name)
	}
	seen[name] = true
	return resolveVar(next, vars, seen)
}

func DefaultPaletteHex() PaletteHex {
	return PaletteHex{
		Prompt:       "#4ec9b0",
		Path:         "#569cd6",
		Command:      "#e6e6e6",
		Success:      "#6a9955",
		Error:        "#f44747",
		Hint:         "#808080",
		Highlight:    "#dcdcaa",
		Heading:      "#ce9178",
		AccentOrange: "#ff8c00",
		AccentBlue:   "#569cd6",
		TextPrimary:  "#d4d4d4",
		TextMuted:    "#9e9e9e",
		Border:       "#3c3c3c",
		TabActiveBg:  "#4ec9b0",
		TabActiveFg:  "#1e1e1e",
		TabInactive:  "#808080",
		StatusText:   "#4ec9b0",
		BannerLine1:  "#ff8c00",
		BannerLine2:  "#f79a1e",
		BannerLine3:  "#eea83c",
		BannerLine4:  "#e5b65a",
		BannerLine5:  "#dcc478",
		BannerLine6:  "#d3d296",
	}
}

type ThemeIndex struct {
	Version int               `json:"version"`
	Themes  []ThemeIndexEntry `json:"themes"`
}

type ThemeIndexEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}
