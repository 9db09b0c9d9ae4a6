package markdown

import (
	"regexp"
	"strings"
)

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Applied in order, each over the output of the previous one.
var inlineRules = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`), `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), `<strong>$1</strong>`},
	{regexp.MustCompile(`__(.+?)__`), `<strong>$1</strong>`},
	{regexp.MustCompile(`\*(.+?)\*`), `<em>$1</em>`},
	{regexp.MustCompile(`_(.+?)_`), `<em>$1</em>`},
	{regexp.MustCompile("`([^`]+)`"), `<code>$1</code>`},
}

// FormatInline escapes &, < and > and then applies link, strong, emphasis
// and code substitutions.
func FormatInline(text string) string {
	out := escaper.Replace(text)
	for _, rule := range inlineRules {
		out = rule.pattern.ReplaceAllString(out, rule.repl)
	}
	return out
}
