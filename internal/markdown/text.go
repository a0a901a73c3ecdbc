package markdown

import (
	"html"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// ToText converts a sanitized HTML fragment back to markdown for terminal
// and calendar output. On a conversion error the tags are stripped instead.
func ToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return stripTags(fragment)
	}
	return strings.TrimSpace(md)
}

func stripTags(s string) string {
	s = strings.NewReplacer("<br/>", "\n", "<br>", "\n", "<br />", "\n").Replace(s)
	return strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(s, "")))
}
