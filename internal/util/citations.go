package util

import (
	"regexp"
	"strings"
)

var (
	reBoldCitation   = regexp.MustCompile(`\*\*\s*\[\[([^][]+)\]\]\s*\*\*`)
	reCitation       = regexp.MustCompile(`\[\[([^][]+)\]\]`)
	reRepeatCitation = regexp.MustCompile(`(\[\[[^][]+\]\])(?:[\t ]*(\[\[[^][]+\]\]))+`)
)

// NormalizeCitations rewrites the citation variants models produce into the
// canonical [[episode_id]] form: bold markers are removed, single brackets
// are doubled unless they start a markdown link, and a citation repeated
// back to back is kept once.
func NormalizeCitations(s string) string {
	s = reBoldCitation.ReplaceAllString(s, "[[$1]]")
	s = upgradeSingleBrackets(s)
	return reRepeatCitation.ReplaceAllStringFunc(s, collapseCitationRun)
}

func upgradeSingleBrackets(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '[' {
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '[' {
			end := strings.Index(s[i:], "]]")
			if end < 0 {
				b.WriteString(s[i:])
				break
			}
			b.WriteString(s[i : i+end+2])
			i += end + 2
			continue
		}

		j := i + 1
		for j < len(s) && isCitationByte(s[j]) {
			j++
		}
		// Only [id] with a plain id body and no trailing "(" of a link.
		if j == i+1 || j >= len(s) || s[j] != ']' || (j+1 < len(s) && s[j+1] == '(') {
			b.WriteByte(s[i])
			i++
			continue
		}
		b.WriteString("[[")
		b.WriteString(s[i+1 : j])
		b.WriteString("]]")
		i = j + 1
	}
	return b.String()
}

func isCitationByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == '.', c == ':':
		return true
	}
	return false
}

func collapseCitationRun(run string) string {
	ids := reCitation.FindAllString(run, -1)
	var b strings.Builder
	for i, id := range ids {
		if i > 0 && id == ids[i-1] {
			continue
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(id)
	}
	return b.String()
}

// ExtractCitations returns the distinct ids cited as [[id]] in order of
// first appearance.
func ExtractCitations(s string) []string {
	matches := reCitation.FindAllStringSubmatch(s, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		id := strings.TrimSpace(m[1])
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
