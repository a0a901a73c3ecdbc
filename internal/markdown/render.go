package markdown

import (
	"bytes"
	"html"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts normalized markdown to HTML. Single newlines become
// <br> breaks. Raw HTML is passed through untouched; callers sanitize.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
				gmhtml.WithUnsafe(),
			),
		),
	}
}

var defaultRenderer = NewRenderer()

// Render never fails: if conversion errors, the escaped source is returned
// as a single paragraph.
func (r *Renderer) Render(src string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		slog.Debug("Markdown conversion failed", "error", err)
		return "<p>" + html.EscapeString(src) + "</p>\n"
	}
	return buf.String()
}

// RenderInline renders src and drops the enclosing <p> when the result is
// exactly one paragraph. Used for table cells.
func (r *Renderer) RenderInline(src string) string {
	out := strings.TrimSpace(r.Render(src))
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") {
		inner := out[len("<p>") : len(out)-len("</p>")]
		if !strings.Contains(inner, "<p>") {
			return strings.TrimSpace(inner)
		}
	}
	return out
}

func Render(src string) string {
	return defaultRenderer.Render(src)
}

func RenderInline(src string) string {
	return defaultRenderer.RenderInline(src)
}

// SafeHTML renders src and sanitizes the result.
func SafeHTML(src string) string {
	return Sanitize(Render(src))
}
