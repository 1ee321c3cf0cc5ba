package render

import "termfolio/internal/theme"

// Theme is a palette resolved for the current terminal: hex strings on
// truecolor terminals, xterm-256 indexes otherwise.
type Theme struct {
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

func DefaultTheme() Theme {
	return ThemeFromResolved(theme.ResolveForTerminal(theme.DefaultPaletteHex(), theme.DetectProfile()))
}

func ThemeFromResolved(r theme.PaletteResolved) Theme {
	return Theme{
		Prompt:       r.Prompt,
		Path:         r.Path,
		Command:      r.Command,
		Success:      r.Success,
		Error:        r.Error,
		Hint:         r.Hint,
		Highlight:    r.Highlight,
		Heading:      r.Heading,
		AccentOrange: r.AccentOrange,
		AccentBlue:   r.AccentBlue,
		TextPrimary:  r.TextPrimary,
		TextMuted:    r.TextMuted,
		Border:       r.Border,
		TabActiveBg:  r.TabActiveBg,
		TabActiveFg:  r.TabActiveFg,
		TabInactive:  r.TabInactive,
		StatusText:   r.StatusText,
		BannerLines:  r.BannerLines,
	}
}

// WithDefaults fills empty roles from the default palette.
func (t Theme) WithDefaults() Theme {
	d := DefaultTheme()
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&t.Prompt, d.Prompt)
	fill(&t.Path, d.Path)
	fill(&t.Command, d.Command)
	fill(&t.Success, d.Success)
	fill(&t.Error, d.Error)
	fill(&t.Hint, d.Hint)
	fill(&t.Highlight, d.Highlight)
	fill(&t.Heading, d.Heading)
	fill(&t.AccentOrange, d.AccentOrange)
	fill(&t.AccentBlue, d.AccentBlue)
	fill(&t.TextPrimary, d.TextPrimary)
	fill(&t.TextMuted, d.TextMuted)
	fill(&t.Border, d.Border)
	fill(&t.TabActiveBg, d.TabActiveBg)
	fill(&t.TabActiveFg, d.TabActiveFg)
	fill(&t.TabInactive, d.TabInactive)
	fill(&t.StatusText, d.StatusText)
	for i := range t.BannerLines {
		fill(&t.BannerLines[i], d.BannerLines[i])
	}
	return t
}
