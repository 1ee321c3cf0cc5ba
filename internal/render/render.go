// Package render turns console output blocks into terminal, plain or HTML
// text. User-supplied text is escaped here and nowhere else.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"termfolio/internal/console"
)

type Renderer interface {
	Block(b console.Block) string
}

type Format string

const (
	FormatANSI  Format = "ansi"
	FormatPlain Format = "plain"
	FormatHTML  Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatANSI, FormatPlain, FormatHTML:
		return f, nil
	case "":
		return FormatANSI, nil
	default:
		return "", fmt.Errorf("unknown format %q (want ansi, plain or html)", s)
	}
}

// Transcript renders every block in order, one per line group.
func Transcript(r Renderer, blocks []console.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, r.Block(b))
	}
	return strings.Join(parts, "\n")
}

var quotedRe = regexp.MustCompile(`'[^']+'`)

// splitQuoted cuts s into alternating plain and 'quoted' pieces; quoted
// pieces are highlighted in the banner hint.
func splitQuoted(s string) []piece {
	var out []piece
	last := 0
	for _, loc := range quotedRe.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, piece{text: s[last:loc[0]]})
		}
		out = append(out, piece{text: s[loc[0]:loc[1]], quoted: true})
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, piece{text: s[last:]})
	}
	return out
}

type piece struct {
	text   string
	quoted bool
}
