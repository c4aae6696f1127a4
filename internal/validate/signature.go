package validate

import (
	"fmt"
	"sort"

	"translation-validator/internal/commands"
	"translation-validator/internal/parser"
)

type positionalEntry struct {
	info *commands.CommandInfo
	// declared counts how often the base places this command at this
	// position. Repeating a directive at one position is intentional in
	// some base strings, so it bumps the count instead of erroring.
	declared int
}

type nonPositionalEntry struct {
	occurrence commands.Occurrence
	declared   int
}

// Signature is the expected directive layout derived from a base string:
// which positional parameter lives at which position, and how often each
// non-positional directive appears. Built once per validation call and
// read-only afterwards.
type Signature struct {
	positional    map[int]*positionalEntry
	nonPositional map[string]*nonPositionalEntry
	npOrder       []string
}

func (s *Signature) sortedPositions() []int {
	positions := make([]int, 0, len(s.positional))
	for p := range s.positional {
		positions = append(positions, p)
	}
	sort.Ints(positions)
	return positions
}

func (s *Signature) addNonPositional(name string, occ commands.Occurrence) {
	if e, ok := s.nonPositional[name]; ok {
		e.declared++
		return
	}
	s.nonPositional[name] = &nonPositionalEntry{occurrence: occ, declared: 1}
	s.npOrder = append(s.npOrder, name)
}

// buildSignature walks a parsed base string and derives its Signature.
// Unknown commands are collected, not short-circuited, so every defect in
// the base is reported at once.
func buildSignature(dialect commands.Dialect, base *parser.ParsedString) (*Signature, []ValidationError) {
	var errs []ValidationError
	sig := &Signature{
		positional:    make(map[int]*positionalEntry),
		nonPositional: make(map[string]*nonPositionalEntry),
	}

	pos := 0
	for _, frag := range base.Fragments {
		cmd, ok := frag.(*parser.Command)
		if !ok {
			continue
		}
		info := commands.Lookup(cmd.Name, dialect)
		if info == nil {
			errs = append(errs, spanned(SeverityError, cmd.Pos,
				fmt.Sprintf("unknown directive '{%s}'", cmd.Name), ""))
			continue
		}
		if len(info.Parameters) == 0 {
			if cmd.Index >= 0 {
				errs = append(errs, spanned(SeverityError, cmd.Pos,
					fmt.Sprintf("directive '{%s}' cannot have a position reference", cmd.Name),
					fmt.Sprintf("remove '%d:'", cmd.Index)))
			}
			sig.addNonPositional(info.GetNormName(), info.Occurrence)
			continue
		}
		if cmd.Index >= 0 {
			pos = cmd.Index
		}
		if e, ok := sig.positional[pos]; ok {
			e.declared++
		} else {
			sig.positional[pos] = &positionalEntry{info: info, declared: 1}
		}
		pos++
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return sig, nil
}
