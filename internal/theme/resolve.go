package theme

import (
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// DetectProfile reads the color profile from the environment. Terminals that
// advertise 24-bit color through COLORTERM or TERM are trusted even when
// termenv settles on something lower.
func DetectProfile() termenv.Profile {
	profile := termenv.EnvColorProfile()
	if profile == termenv.TrueColor || profile == termenv.Ascii {
		return profile
	}
	ct := strings.ToLower(os.Getenv("COLORTERM"))
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(ct, "truecolor") || strings.Contains(ct, "24bit") ||
		strings.Contains(term, "direct") || strings.Contains(term, "truecolor") {
		return termenv.TrueColor
	}
	return profile
}

// ProfileName is the label the doctor command prints for p.
func ProfileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}

// ResolveForTerminal converts every role to a lipgloss color string for
// profile: hex on truecolor, an xterm index below that, and empty (no color)
// on ascii terminals.
func ResolveForTerminal(p PaletteHex, profile termenv.Profile) PaletteResolved {
	c := func(h Hex) string { return terminalColor(profile, h) }
	return PaletteResolved{
		Prompt:       c(p.Prompt),
		Path:         c(p.Path),
		Command:      c(p.Command),
		Success:      c(p.Success),
		Error:        c(p.Error),
		Hint:         c(p.Hint),
		Highlight:    c(p.Highlight),
		Heading:      c(p.Heading),
		AccentOrange: c(p.AccentOrange),
		AccentBlue:   c(p.AccentBlue),
		TextPrimary:  c(p.TextPrimary),
		TextMuted:    c(p.TextMuted),
		Border:       c(p.Border),
		TabActiveBg:  c(p.TabActiveBg),
		TabActiveFg:  c(p.TabActiveFg),
		TabInactive:  c(p.TabInactive),
		StatusText:   c(p.StatusText),
		BannerLines: [6]string{
			c(p.BannerLine1), c(p.BannerLine2), c(p.BannerLine3),
			c(p.BannerLine4), c(p.BannerLine5), c(p.BannerLine6),
		},
	}
}

func terminalColor(profile termenv.Profile, h Hex) string {
	if !hexRe.MatchString(string(h)) {
		// invalid entries never pass Validate; treat them as light gray
		h = "#c0c0c0"
	}
	switch v := profile.Color(string(h)).(type) {
	case termenv.RGBColor:
		return string(v)
	case termenv.ANSI256Color:
		return strconv.Itoa(int(v))
	case termenv.ANSIColor:
		return strconv.Itoa(int(v))
	default:
		return ""
	}
}
