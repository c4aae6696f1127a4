package validate

import (
	"strings"

	"translation-validator/internal/parser"
)

// Sanitize strips ASCII control characters from text runs and choice
// strings, and removes trailing blanks at the end of every line. Lines are
// delimited by the empty-name command {}, so the scan runs backwards and
// re-arms the end-of-line trim right after each line marker.
func Sanitize(ps *parser.ParsedString) {
	isEOL := true
	for i := len(ps.Fragments) - 1; i >= 0; i-- {
		isMarker := false
		switch f := ps.Fragments[i].(type) {
		case *parser.Text:
			f.Content = replaceControl(f.Content)
			if isEOL {
				f.Content = strings.TrimRight(f.Content, " ")
			}
		case *parser.ChoiceList:
			for j := range f.Choices {
				f.Choices[j] = replaceControl(f.Choices[j])
			}
		case *parser.Command:
			isMarker = f.Name == ""
		}
		isEOL = isMarker
	}
}

// replaceControl maps every ASCII control character to a single blank.
func replaceControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}
