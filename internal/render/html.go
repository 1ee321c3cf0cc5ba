package render

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"termfolio/internal/console"
)

// HTML renders the markup of the original browser console. All text is
// escaped; content markdown is converted by goldmark and then sanitized.
type HTML struct {
	prompt console.Prompt
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewHTML(prompt console.Prompt) *HTML {
	return &HTML{
		prompt: prompt,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

func (h *HTML) Block(b console.Block) string {
	switch b.Kind {
	case console.BlockBanner:
		return h.banner(b.Banner)
	case console.BlockCommandLine:
		return `<p class="command-line"><span class="prompt">` + html.EscapeString(h.prompt.User+"@"+h.prompt.Host) +
			`</span>:<span class="path">` + html.EscapeString(h.prompt.Path) +
			`</span>$ <span class="user-command">` + html.EscapeString(b.Text) + `</span></p>`
	case console.BlockSuccess:
		return para("success-text", html.EscapeString(b.Text))
	case console.BlockError:
		return para("error-text", html.EscapeString(b.Text))
	case console.BlockHint:
		return para("hint-text", html.EscapeString(b.Text))
	case console.BlockContent:
		return `<div class="section-content">` + h.Markdown(b.Markdown) + `</div>`
	default:
		return ""
	}
}

func (h *HTML) Markdown(md string) string {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(md), &buf); err != nil {
		return "<pre>" + html.EscapeString(md) + "</pre>"
	}
	return strings.TrimSpace(h.policy.Sanitize(buf.String()))
}

func (h *HTML) banner(b console.Banner) string {
	var sb strings.Builder
	if len(b.Art) > 0 {
		sb.WriteString(`<pre class="ascii-art">`)
		sb.WriteString(html.EscapeString(strings.Join(b.Art, "\n")))
		sb.WriteString("</pre>")
	}
	if b.Welcome != "" {
		sb.WriteString(para("welcome-text", html.EscapeString(b.Welcome)))
	}
	if b.Info != "" {
		sb.WriteString(para("info-text", html.EscapeString(b.Info)))
	}
	if b.Hint != "" {
		var hint strings.Builder
		for _, p := range splitQuoted(b.Hint) {
			if p.quoted {
				hint.WriteString(`<span class="highlight">` + html.EscapeString(p.text) + `</span>`)
			} else {
				hint.WriteString(html.EscapeString(p.text))
			}
		}
		sb.WriteString(para("hint-text", hint.String()))
	}
	return sb.String()
}

func para(class, inner string) string {
	return `<p class="` + class + `">` + inner + `</p>`
}

const pageStyle = `body{background:#1e1e1e;color:#d4d4d4;font-family:"Fira Code",monospace;padding:1rem}
.prompt{color:#4ec9b0;font-weight:bold}.path{color:#569cd6}.user-command{color:#e6e6e6}
.success-text{color:#6a9955}.error-text{color:#f44747}.hint-text{color:#808080;font-style:italic}
.highlight{color:#dcdcaa;font-weight:bold}.welcome-text{color:#ff8c00;font-weight:bold}.info-text{color:#9e9e9e}
.ascii-art{color:#ff8c00}.section-content{margin:.5rem 0 1rem}.section-content h3{color:#ce9178}
p{margin:.2rem 0}`

// Page wraps a rendered transcript in a standalone document.
func Page(title, body string) string {
	return "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>" +
		html.EscapeString(title) + "</title>\n<style>\n" + pageStyle + "\n</style>\n</head>\n<body>\n<div id=\"terminal-output\">\n" +
		body + "\n</div>\n</body>\n</html>\n"
}
