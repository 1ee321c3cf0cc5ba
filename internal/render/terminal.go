package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"termfolio/internal/console"
)

type TerminalOptions struct {
	Theme         Theme
	Prompt        console.Prompt
	MarkdownStyle string // dark, light, notty or auto
	Width         int
}

type termStyles struct {
	prompt    lipgloss.Style
	path      lipgloss.Style
	command   lipgloss.Style
	success   lipgloss.Style
	err       lipgloss.Style
	hint      lipgloss.Style
	highlight lipgloss.Style
	welcome   lipgloss.Style
	info      lipgloss.Style
	banner    [6]lipgloss.Style
}

func newTermStyles(t Theme) termStyles {
	s := termStyles{
		prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Prompt)).Bold(true),
		path:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Path)),
		command:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Command)),
		success:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		err:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)),
		hint:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Hint)).Italic(true),
		highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Highlight)).Bold(true),
		welcome:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.AccentOrange)).Bold(true),
		info:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.TextMuted)),
	}
	for i := range s.banner {
		s.banner[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(t.BannerLines[i]))
	}
	return s
}

// Terminal renders blocks with lipgloss and content markdown with glamour.
// Rendered content is cached per width.
type Terminal struct {
	opts   TerminalOptions
	styles termStyles
	md     *glamour.TermRenderer
	cache  map[string]string
}

func NewTerminal(opts TerminalOptions) (*Terminal, error) {
	opts.Theme = opts.Theme.WithDefaults()
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = "dark"
	}
	t := &Terminal{opts: opts, styles: newTermStyles(opts.Theme)}
	if err := t.rebuild(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Terminal) Width() int { return t.opts.Width }

func (t *Terminal) Theme() Theme { return t.opts.Theme }

// SetWidth re-wraps future output at w columns.
func (t *Terminal) SetWidth(w int) error {
	if w == t.opts.Width && t.md != nil {
		return nil
	}
	t.opts.Width = w
	return t.rebuild()
}

func (t *Terminal) rebuild() error {
	md, err := newMarkdownRenderer(t.opts.MarkdownStyle, t.opts.Width)
	if err != nil {
		return err
	}
	t.md = md
	t.cache = map[string]string{}
	return nil
}

func newMarkdownRenderer(style string, width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}

func (t *Terminal) Block(b console.Block) string {
	switch b.Kind {
	case console.BlockBanner:
		return t.banner(b.Banner)
	case console.BlockCommandLine:
		return t.CommandLine(b.Text)
	case console.BlockSuccess:
		return t.styles.success.Render(t.wrap(SanitizeTerminal(b.Text)))
	case console.BlockError:
		return t.styles.err.Render(t.wrap(SanitizeTerminal(b.Text)))
	case console.BlockHint:
		return t.styles.hint.Render(t.wrap(SanitizeTerminal(b.Text)))
	case console.BlockContent:
		return t.Markdown(b.Markdown)
	default:
		return ""
	}
}

// CommandLine renders the echoed prompt followed by the typed command.
func (t *Terminal) CommandLine(cmd string) string {
	return t.Prompt() + " " + t.styles.command.Render(SanitizeTerminal(cmd))
}

func (t *Terminal) Prompt() string {
	p := t.opts.Prompt
	return t.styles.prompt.Render(SanitizeTerminal(p.User+"@"+p.Host)) +
		":" + t.styles.path.Render(SanitizeTerminal(p.Path)) + "$"
}

// Markdown renders trusted content. On renderer failure the raw markdown
// is shown wrapped.
func (t *Terminal) Markdown(md string) string {
	if out, ok := t.cache[md]; ok {
		return out
	}
	out, err := t.md.Render(md)
	if err != nil {
		out = t.wrap(SanitizeTerminal(md))
	}
	out = strings.Trim(out, "\n")
	t.cache[md] = out
	return out
}

func (t *Terminal) banner(b console.Banner) string {
	lines := make([]string, 0, len(b.Art)+4)
	for i, l := range b.Art {
		lines = append(lines, t.styles.banner[i%len(t.styles.banner)].Render(l))
	}
	if b.Welcome != "" {
		lines = append(lines, t.styles.welcome.Render(t.wrap(b.Welcome)))
	}
	if b.Info != "" {
		lines = append(lines, t.styles.info.Render(t.wrap(b.Info)))
	}
	if b.Hint != "" {
		var sb strings.Builder
		for _, p := range splitQuoted(b.Hint) {
			if p.quoted {
				sb.WriteString(t.styles.highlight.Render(p.text))
			} else {
				sb.WriteString(t.styles.hint.Render(p.text))
			}
		}
		lines = append(lines, sb.String())
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (t *Terminal) wrap(s string) string {
	return wrapText(s, t.opts.Width)
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}
