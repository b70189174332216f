package views

import "strings"

const (
	digitHeight  = 5
	digitSpacing = "  "
)

// TimerMinWidth is the narrowest panel that fits the block clock with one
// column of padding on each side.
const TimerMinWidth = 38

var digitGlyphs = [10][digitHeight]string{
	{"██████", "██  ██", "██  ██", "██  ██", "██████"},
	{"  ██  ", "  ██  ", "  ██  ", "  ██  ", "  ██  "},
	{"██████", "    ██", "██████", "██    ", "██████"},
	{"██████", "    ██", "██████", "    ██", "██████"},
	{"██  ██", "██  ██", "██████", "    ██", "    ██"},
	{"██████", "██    ", "██████", "    ██", "██████"},
	{"██████", "██    ", "██████", "██  ██", "██████"},
	{"██████", "    ██", "    ██", "    ██", "    ██"},
	{"██████", "██  ██", "██████", "██  ██", "██████"},
	{"██████", "██  ██", "██████", "    ██", "██████"},
}

var colonGlyph = [digitHeight]string{"  ", "██", "  ", "██", "  "}

// BigClock renders an "MM:SS" string as five rows of block glyphs. Characters
// other than digits and ':' are skipped.
func BigClock(clock string) []string {
	glyphs := make([][digitHeight]string, 0, len(clock))
	for _, r := range clock {
		switch {
		case r >= '0' && r <= '9':
			glyphs = append(glyphs, digitGlyphs[r-'0'])
		case r == ':':
			glyphs = append(glyphs, colonGlyph)
		}
	}
	rows := make([]string, digitHeight)
	for i := range rows {
		parts := make([]string, len(glyphs))
		for j, g := range glyphs {
			parts[j] = g[i]
		}
		rows[i] = strings.Join(parts, digitSpacing)
	}
	return rows
}
