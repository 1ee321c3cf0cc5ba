package render

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"termfolio/internal/console"
)

// Plain renders without any styling. Markdown goes through glamour's notty
// style so headings and lists keep their shape.
type Plain struct {
	prompt console.Prompt
	width  int
	md     *glamour.TermRenderer
}

func NewPlain(prompt console.Prompt, width int) (*Plain, error) {
	md, err := newMarkdownRenderer("notty", width)
	if err != nil {
		return nil, err
	}
	return &Plain{prompt: prompt, width: width, md: md}, nil
}

func (p *Plain) Block(b console.Block) string {
	switch b.Kind {
	case console.BlockBanner:
		lines := append([]string{}, b.Banner.Art...)
		for _, s := range []string{b.Banner.Welcome, b.Banner.Info, b.Banner.Hint} {
			if s != "" {
				lines = append(lines, wrapText(s, p.width))
			}
		}
		return strings.Join(append(lines, ""), "\n")
	case console.BlockCommandLine:
		return SanitizeTerminal(p.prompt.String()) + " " + SanitizeTerminal(b.Text)
	case console.BlockSuccess, console.BlockError, console.BlockHint:
		return wrapText(SanitizeTerminal(b.Text), p.width)
	case console.BlockContent:
		out, err := p.md.Render(b.Markdown)
		if err != nil {
			return wrapText(SanitizeTerminal(b.Markdown), p.width)
		}
		return strings.Trim(out, "\n")
	default:
		return ""
	}
}
