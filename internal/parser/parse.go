package parser

import (
	"fmt"
	"regexp"
	"strconv"
)

// ParseError is a fatal parse failure. No partial result accompanies it.
type ParseError struct {
	Pos     Span
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d..%d", e.Message, e.Pos.Begin, e.Pos.End)
}

// Directive grammars, tried in strict priority order: command, gender
// declaration, choice list. The order matters; {G=n} would otherwise also
// be a plausible prefix of a choice list.
var (
	patCommand = regexp.MustCompile(`^\{(?:(\d+):)?(|\{|[A-Z][A-Z0-9_]*)(?:\.(\w+))?\}$`)
	patGender  = regexp.MustCompile(`^\{G\s*=\s*(\w+)\}$`)
	patChoice  = regexp.MustCompile(`(?s)^\{([PG])(?:\s+(\d+)(?::(\d+))?)?(\s+[^\s0-9].*?)\s*\}$`)
	patItem    = regexp.MustCompile(`(?s)^\s+(?:([^\s"]+)|"([^"]*)")`)
)

// Parse scans the input left to right into fragments. Text runs up to the
// next '{' become Text fragments; each '{...}' span is matched against the
// directive grammars. Offsets are codepoints, not bytes.
func Parse(text string) (*ParsedString, *ParseError) {
	runes := []rune(text)
	result := &ParsedString{}
	pos := 0
	for pos < len(runes) {
		open := indexRune(runes, pos, '{')
		if open < 0 {
			result.Fragments = append(result.Fragments, &Text{
				Pos:     Span{Begin: pos, End: len(runes)},
				Content: string(runes[pos:]),
			})
			break
		}
		if open > pos {
			result.Fragments = append(result.Fragments, &Text{
				Pos:     Span{Begin: pos, End: open},
				Content: string(runes[pos:open]),
			})
		}
		end := indexRune(runes, open+1, '}')
		if end < 0 {
			return nil, &ParseError{
				Pos:     Span{Begin: open, End: len(runes)},
				Message: "unterminated directive, '}' expected",
			}
		}
		span := Span{Begin: open, End: end + 1}
		raw := string(runes[open : end+1])
		frag := parseDirective(raw, span)
		if frag == nil {
			return nil, &ParseError{
				Pos:     span,
				Message: fmt.Sprintf("invalid directive: '%s'", raw),
			}
		}
		result.Fragments = append(result.Fragments, frag)
		pos = end + 1
	}
	return result, nil
}

func indexRune(runes []rune, from int, r rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// parseDirective matches one '{...}' span against the three grammars.
// Returns nil if none of them accepts it.
func parseDirective(raw string, pos Span) Fragment {
	if m := patCommand.FindStringSubmatch(raw); m != nil {
		return &Command{
			Pos:   pos,
			Index: optNum(m[1]),
			Name:  m[2],
			Case:  m[3],
		}
	}
	if m := patGender.FindStringSubmatch(raw); m != nil {
		return &GenderDecl{Pos: pos, Gender: m[1]}
	}
	if m := patChoice.FindStringSubmatch(raw); m != nil {
		choice := &ChoiceList{
			Pos:         pos,
			Name:        m[1],
			IndexRef:    optNum(m[2]),
			IndexSubRef: optNum(m[3]),
		}
		rest := m[4]
		for rest != "" {
			im := patItem.FindStringSubmatch(rest)
			if im == nil {
				return nil
			}
			if im[1] != "" {
				choice.Choices = append(choice.Choices, im[1])
			} else {
				choice.Choices = append(choice.Choices, im[2])
			}
			rest = rest[len(im[0]):]
		}
		return choice
	}
	return nil
}

func optNum(s string) int {
	if s == "" {
		return -1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
