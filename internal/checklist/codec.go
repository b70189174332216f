package checklist

import (
	"strings"
)

const (
	incompleteMarker = "- [ ] "
	completeMarker   = "- [x] "
	completeMarkerUp = "- [X] "
)

type Parsed struct {
	Incomplete []string
	Complete   []string
}

// All returns incomplete texts followed by complete texts.
func (p Parsed) All() []string {
	out := make([]string, 0, len(p.Incomplete)+len(p.Complete))
	out = append(out, p.Incomplete...)
	return append(out, p.Complete...)
}

// MatchLine recognizes a checklist line. Leading whitespace is ignored; the
// text after the marker is returned untouched.
func MatchLine(line string) (text string, done bool, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(trimmed, incompleteMarker):
		text = trimmed[len(incompleteMarker):]
	case strings.HasPrefix(trimmed, completeMarker):
		text, done = trimmed[len(completeMarker):], true
	case strings.HasPrefix(trimmed, completeMarkerUp):
		text, done = trimmed[len(completeMarkerUp):], true
	default:
		return "", false, false
	}
	if strings.TrimSpace(text) == "" {
		return "", false, false
	}
	return text, done, true
}

func Parse(lines []string) Parsed {
	out := Parsed{Incomplete: make([]string, 0), Complete: make([]string, 0)}
	for _, line := range lines {
		text, done, ok := MatchLine(line)
		if !ok {
			continue
		}
		if done {
			out.Complete = append(out.Complete, text)
		} else {
			out.Incomplete = append(out.Incomplete, text)
		}
	}
	return out
}

func FormatLine(indent, text string, done bool) string {
	if done {
		return indent + completeMarker + text
	}
	return indent + incompleteMarker + text
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
