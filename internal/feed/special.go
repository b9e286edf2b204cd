package feed

import (
	"regexp"
	"strings"
)

// SuiyokaiFallback is shown when the discussion-group digest is absent.
const SuiyokaiFallback = "データなし"

var (
	brTagRe   = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlTagRe = regexp.MustCompile(`<[^>]*>`)
)

// FlattenHTML converts the limited HTML fragment the special feed emits
// into plain text lines: <br> becomes a newline, other tags are stripped.
func FlattenHTML(s string) string {
	s = brTagRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// SuiyokaiDigest is the structured form of the discussion-group fragment:
// first line is the mission, the rest are bullet descriptions.
type SuiyokaiDigest struct {
	Mission      string
	Descriptions []string
}

// StructureSuiyokai parses the suiyokai HTML fragment into a digest.
// Returns nil when the fragment is empty or flattens to nothing.
func StructureSuiyokai(fragment string) *SuiyokaiDigest {
	if fragment == "" {
		return nil
	}

	text := FlattenHTML(fragment)
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	digest := &SuiyokaiDigest{Mission: lines[0]}
	for _, line := range lines[1:] {
		digest.Descriptions = append(digest.Descriptions, strings.TrimPrefix(line, "・"))
	}
	return digest
}
