package richtext

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// boldBoundary matches the empty positions before an opening <b> and after
// a closing </b>.
var boldBoundary = regexp2.MustCompile(`(?=<b>)|(?<=</b>)`, regexp2.None)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&gt;", ">",
	"&lt;", "<",
)

// SplitBold splits a line on inline <b>...</b> markers into alternating
// plain and bold spans. Tags are removed and &nbsp;, &gt; and &lt; are
// decoded. Parts that end up empty are dropped.
func SplitBold(line string) []Element {
	var out []Element
	for _, part := range splitParts(line) {
		bold := strings.HasPrefix(part, "<b>") || strings.HasSuffix(part, "</b>")
		text := strings.ReplaceAll(part, "<b>", "")
		text = strings.ReplaceAll(text, "</b>", "")
		text = entityReplacer.Replace(text)
		if text == "" {
			continue
		}
		out = append(out, Element{Text: text, Bold: bold})
	}
	return out
}

// splitParts cuts s at every boldBoundary match. regexp2 reports match
// positions in runes.
func splitParts(s string) []string {
	runes := []rune(s)
	var parts []string
	start := 0
	m, err := boldBoundary.FindStringMatch(s)
	for m != nil && err == nil {
		if m.Index > start {
			parts = append(parts, string(runes[start:m.Index]))
			start = m.Index
		}
		m, err = boldBoundary.FindNextMatch(m)
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}

// StripTags removes bold markers and decodes entities without splitting.
func StripTags(s string) string {
	var sb strings.Builder
	for _, e := range SplitBold(s) {
		sb.WriteString(e.Text)
	}
	return sb.String()
}
