package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termfolio/internal/console"
)

var testPrompt = console.Prompt{User: "monty", Host: "portfolio", Path: "~"}

type topics map[string]console.Content

func (t topics) Topic(key string) (console.Content, bool) {
	c, ok := t[key]
	return c, ok
}

func (t topics) Banner() console.Banner {
	return console.Banner{
		Art:     []string{"  __", " /_/"},
		Welcome: "Welcome",
		Info:    "Linux-style interactive portfolio system",
		Hint:    "Type 'help' to see available commands or 'gui' for visual mode",
	}
}

func newTestSession() *console.Session {
	return console.NewSession(console.Options{Content: topics{
		"help": {Key: "help", Title: "Help", Markdown: "### Available Commands:\n\n- help\n- about\n"},
	}})
}

func TestSanitizeTerminal(t *testing.T) {
	assert.Equal(t, "red", SanitizeTerminal("\x1b[31mred\x1b[0m"))
	assert.Equal(t, "title", SanitizeTerminal("\x1b]0;evil\x07title"))
	assert.Equal(t, "bell", SanitizeTerminal("\abell"))
	assert.Equal(t, "a b", SanitizeTerminal("a\tb"))
	assert.Equal(t, "ab", SanitizeTerminal("a\r\nb"))
	assert.Equal(t, "✓ ok", SanitizeTerminal("✓ ok"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("HTML")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, f)
	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatANSI, f)
	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestSplitQuoted(t *testing.T) {
	got := splitQuoted("Type 'help' or 'gui'.")
	require.Len(t, got, 5)
	assert.Equal(t, piece{text: "'help'", quoted: true}, got[1])
	assert.Equal(t, piece{text: "."}, got[4])
}

func TestHTMLEscapesEchoedCommand(t *testing.T) {
	s := newTestSession()
	s.Submit("echo <script>alert(1)</script>")
	out := Transcript(NewHTML(testPrompt), s.Output.Blocks())

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `<p class="success-text">&lt;script&gt;alert(1)&lt;/script&gt;</p>`)
	assert.Contains(t, out, `<span class="user-command">echo &lt;script&gt;alert(1)&lt;/script&gt;</span>`)
}

func TestHTMLCommandLineMarkup(t *testing.T) {
	h := NewHTML(testPrompt)
	got := h.Block(console.Block{Kind: console.BlockCommandLine, Text: "help"})
	assert.Equal(t, `<p class="command-line"><span class="prompt">monty@portfolio</span>:<span class="path">~</span>$ <span class="user-command">help</span></p>`, got)
}

func TestHTMLNotFound(t *testing.T) {
	s := newTestSession()
	s.Submit("foobar")
	out := Transcript(NewHTML(testPrompt), s.Output.Blocks())
	assert.Contains(t, out, `<p class="error-text">bash: foobar: command not found</p>`)
	assert.Contains(t, out, `<p class="hint-text">Type &#39;help&#39; for available commands</p>`)
}

func TestHTMLContentSanitized(t *testing.T) {
	h := NewHTML(testPrompt)
	got := h.Block(console.Block{Kind: console.BlockContent, Markdown: "# Hi\n\n<script>x()</script>\n\n[link](javascript:alert(1))"})
	assert.True(t, strings.HasPrefix(got, `<div class="section-content">`))
	assert.Contains(t, got, "<h1>Hi</h1>")
	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "javascript:")
}

func TestHTMLBannerHighlightsQuotedWords(t *testing.T) {
	s := newTestSession()
	out := NewHTML(testPrompt).Block(s.Output.Blocks()[0])
	assert.Contains(t, out, `<pre class="ascii-art">`)
	assert.Contains(t, out, `<span class="highlight">&#39;help&#39;</span>`)
	assert.Contains(t, out, `<span class="highlight">&#39;gui&#39;</span>`)
}

func TestPageWrapsBody(t *testing.T) {
	page := Page("a<b", "<p>x</p>")
	assert.Contains(t, page, "<title>a&lt;b</title>")
	assert.Contains(t, page, "<p>x</p>")
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
}

func TestTerminalStripsInjectedEscapes(t *testing.T) {
	r, err := NewTerminal(TerminalOptions{Prompt: testPrompt, MarkdownStyle: "notty", Width: 80})
	require.NoError(t, err)

	s := newTestSession()
	s.Submit("echo \x1b]0;pwned\x07hi\x1b[2J")
	out := Transcript(r, s.Output.Blocks())
	assert.NotContains(t, out, "\x1b]0;")
	assert.NotContains(t, out, "\x1b[2J")
	assert.Contains(t, ansi.Strip(out), "monty@portfolio:~$ echo hi")
}

func TestTerminalRendersContentAndNotFound(t *testing.T) {
	r, err := NewTerminal(TerminalOptions{Prompt: testPrompt, MarkdownStyle: "notty", Width: 60})
	require.NoError(t, err)

	s := newTestSession()
	s.Submit("help")
	s.Submit("foobar")
	plain := ansi.Strip(Transcript(r, s.Output.Blocks()))
	assert.Contains(t, plain, "Available Commands:")
	assert.Contains(t, plain, "bash: foobar: command not found")
	assert.Contains(t, plain, "Type 'help' for available commands")
}

func TestTerminalWrapsLongLines(t *testing.T) {
	r, err := NewTerminal(TerminalOptions{Prompt: testPrompt, MarkdownStyle: "notty", Width: 10})
	require.NoError(t, err)
	out := ansi.Strip(r.Block(console.Block{Kind: console.BlockSuccess, Text: "aaaa bbbb cccc dddddddddddddd"}))
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 10, line)
	}
}

func TestTerminalMarkdownCacheResetsOnWidth(t *testing.T) {
	r, err := NewTerminal(TerminalOptions{MarkdownStyle: "notty", Width: 40})
	require.NoError(t, err)
	md := "some words that will wrap differently at different widths for sure"
	wide := r.Markdown(md)
	require.NoError(t, r.SetWidth(20))
	narrow := r.Markdown(md)
	assert.NotEqual(t, wide, narrow)
	assert.Equal(t, 20, r.Width())
}

func TestPlainHasNoEscapes(t *testing.T) {
	p, err := NewPlain(testPrompt, 80)
	require.NoError(t, err)
	s := newTestSession()
	s.Submit("help")
	s.Submit("pwd")
	out := Transcript(p, s.Output.Blocks())
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "monty@portfolio:~$ pwd")
	assert.Contains(t, out, "/home/monty/portfolio")
	assert.Contains(t, out, "Available Commands:")
}
