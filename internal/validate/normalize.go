package validate

import (
	"translation-validator/internal/commands"
	"translation-validator/internal/parser"
)

// Normalize rewrites a structurally valid parsed string into canonical
// form: command names become their canonical spelling, positional commands
// get explicit indices, choice lists get explicit references, and
// sub-indices equal to the default are dropped. Idempotent.
func Normalize(dialect commands.Dialect, ps *parser.ParsedString) {
	counter := 0
	posInfo := make(map[int]*commands.CommandInfo)

	for _, frag := range ps.Fragments {
		switch f := frag.(type) {
		case *parser.Command:
			info := commands.Lookup(f.Name, dialect)
			if info == nil {
				continue
			}
			if info.NormName != "" {
				f.Name = info.NormName
			}
			if len(info.Parameters) == 0 {
				continue
			}
			if f.Index >= 0 {
				counter = f.Index
			} else {
				f.Index = counter
			}
			posInfo[counter] = info
			counter++
		case *parser.ChoiceList:
			if f.IndexRef >= 0 {
				continue
			}
			if f.Name == "G" {
				f.IndexRef = counter
			} else if counter > 0 {
				f.IndexRef = counter - 1
			}
		}
	}

	// Second pass: with the full position map known, drop sub-indices
	// that only restate the referenced command's default.
	for _, frag := range ps.Fragments {
		f, ok := frag.(*parser.ChoiceList)
		if !ok || f.IndexRef < 0 || f.IndexSubRef < 0 {
			continue
		}
		info := posInfo[f.IndexRef]
		if info == nil {
			continue
		}
		def := 0
		if f.Name == "P" {
			if d, ok := info.DefaultPluralSub(); ok {
				def = d
			}
		}
		if f.IndexSubRef == def {
			f.IndexSubRef = -1
		}
	}
}
