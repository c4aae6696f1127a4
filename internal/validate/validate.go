// Package validate checks a translation's directive structure against its
// base string and produces the canonical form of valid strings.
package validate

import (
	"fmt"

	"translation-validator/internal/commands"
	"translation-validator/internal/parser"
)

// frontState tracks whether a gender declaration may still legally appear.
// A declaration must be the very first fragment of the string, and only
// one is allowed.
type frontState int

const (
	frontUnset frontState = iota
	frontGender
	frontOther
)

type foundNonPositional struct {
	count      int
	occurrence commands.Occurrence
}

type crossValidator struct {
	config *LanguageConfig
	sig    *Signature
	errs   []ValidationError

	pos          int
	front        frontState
	posFound     map[int]int
	npFound      map[string]*foundNonPositional
	npFoundOrder []string
}

// Validate checks candidate against base. With a nil base the candidate is
// checked against its own signature; this is the self-check mode used for
// base strings, and signature errors are returned verbatim. With a base
// given, signature errors collapse into a single generic diagnostic so
// that base authoring defects are never blamed on the translator.
func Validate(config *LanguageConfig, candidate, base *parser.ParsedString) []ValidationError {
	var sig *Signature
	if base != nil {
		s, errs := buildSignature(config.Dialect, base)
		if errs != nil {
			return []ValidationError{baseInvalid()}
		}
		sig = s
	} else {
		s, errs := buildSignature(config.Dialect, candidate)
		if errs != nil {
			return errs
		}
		sig = s
	}

	v := &crossValidator{
		config:   config,
		sig:      sig,
		posFound: make(map[int]int),
		npFound:  make(map[string]*foundNonPositional),
	}
	for _, frag := range candidate.Fragments {
		switch f := frag.(type) {
		case *parser.Text:
			v.front = frontOther
		case *parser.GenderDecl:
			v.checkGenderDecl(f)
		case *parser.Command:
			v.checkCommand(f)
			v.front = frontOther
		case *parser.ChoiceList:
			v.checkChoiceList(f)
			v.front = frontOther
		}
	}
	v.checkCompleteness()
	return v.errs
}

func (v *crossValidator) errorAt(sp parser.Span, message, suggestion string) {
	v.errs = append(v.errs, spanned(SeverityError, sp, message, suggestion))
}

func (v *crossValidator) warnAt(sp parser.Span, message, suggestion string) {
	v.errs = append(v.errs, spanned(SeverityWarning, sp, message, suggestion))
}

func (v *crossValidator) bumpNonPositional(name string, occ commands.Occurrence) {
	if e, ok := v.npFound[name]; ok {
		e.count++
		return
	}
	v.npFound[name] = &foundNonPositional{count: 1, occurrence: occ}
	v.npFoundOrder = append(v.npFoundOrder, name)
}

func (v *crossValidator) checkGenderDecl(f *parser.GenderDecl) {
	if !v.config.gendersEnabled() {
		v.errorAt(f.Pos, "no gender definitions allowed", "")
		return
	}
	switch v.front {
	case frontOther:
		v.warnAt(f.Pos, "gender definition must be at the front", "")
	case frontGender:
		v.warnAt(f.Pos, "duplicate gender definition", "")
	default:
		v.front = frontGender
		if !v.config.hasGender(f.Gender) {
			v.errorAt(f.Pos, fmt.Sprintf("unknown gender '%s'", f.Gender),
				"known genders: "+v.config.knownGenders())
		}
	}
}

func (v *crossValidator) checkCommand(f *parser.Command) {
	// The expected entry at this position is authoritative when its
	// canonical name matches; that way a translation's {STRING} lines up
	// with a base {STRING2} and inherits its parameter list.
	index := v.pos
	if f.Index >= 0 {
		index = f.Index
	}
	expected := v.sig.positional[index]

	var info *commands.CommandInfo
	if expected != nil && expected.info.GetNormName() == f.Name {
		info = expected.info
	} else {
		info = commands.Lookup(f.Name, v.config.Dialect)
	}
	if info == nil {
		v.errorAt(f.Pos, fmt.Sprintf("unknown directive '{%s}'", f.Name), "")
		return
	}

	if f.Case != "" {
		if !v.config.Dialect.AllowsCases() {
			v.errorAt(f.Pos, "no case selections allowed", "")
		} else if !info.AllowCase {
			v.errorAt(f.Pos,
				fmt.Sprintf("directive '{%s}' does not allow case selections", f.Name), "")
		} else if !v.config.hasCase(f.Case) {
			v.errorAt(f.Pos, fmt.Sprintf("unknown case '%s'", f.Case),
				"known cases: "+v.config.knownCases())
		}
	}

	if len(info.Parameters) == 0 {
		if f.Index >= 0 {
			v.errorAt(f.Pos,
				fmt.Sprintf("directive '{%s}' cannot have a position reference", f.Name),
				fmt.Sprintf("remove '%d:'", f.Index))
		}
		v.bumpNonPositional(info.GetNormName(), info.Occurrence)
		return
	}

	if f.Index >= 0 {
		v.pos = f.Index
	}
	if e := v.sig.positional[v.pos]; e != nil {
		// Identity also counts as a match so that a base checked against
		// itself accepts its own non-canonical spellings.
		if e.info == info || e.info.GetNormName() == f.Name {
			v.posFound[v.pos]++
		} else {
			v.errorAt(f.Pos, fmt.Sprintf("expected '{%d:%s}', found '{%s}'",
				v.pos, e.info.GetNormName(), f.Name), "")
		}
	} else {
		v.errorAt(f.Pos,
			fmt.Sprintf("there is no parameter in position %d, found '{%s}'", v.pos, f.Name), "")
	}
	v.pos++
}

func (v *crossValidator) checkChoiceList(f *parser.ChoiceList) {
	isGender := f.Name == "G"

	if isGender && !v.config.gendersEnabled() {
		v.errorAt(f.Pos, "no gender choices allowed", "")
		return
	}
	if !isGender && v.config.PluralCount < 2 {
		v.errorAt(f.Pos, "no plural choices allowed", "")
		return
	}

	if isGender {
		if want := len(v.config.Genders); len(f.Choices) != want {
			v.errorAt(f.Pos,
				fmt.Sprintf("expected %d gender choices, found %d", want, len(f.Choices)), "")
		}
	} else {
		if want := v.config.PluralCount; len(f.Choices) != want {
			v.errorAt(f.Pos,
				fmt.Sprintf("expected %d plural choices, found %d", want, len(f.Choices)), "")
		}
	}

	// A plural refers to the parameter just before it, a gender to the one
	// just after; an explicit reference overrides either.
	ref := -1
	explicit := false
	switch {
	case f.IndexRef >= 0:
		ref = f.IndexRef
		explicit = true
	case isGender:
		ref = v.pos
	case v.pos > 0:
		ref = v.pos - 1
	}

	var entry *positionalEntry
	if ref >= 0 {
		entry = v.sig.positional[ref]
	}
	if entry == nil {
		suggestion := ""
		if !explicit {
			// An explicit reference that is already wrong would not be
			// helped by adding another one.
			suggestion = "add a position reference"
		}
		v.errorAt(f.Pos,
			fmt.Sprintf("choice list references position %d, which has no parameter", ref),
			suggestion)
		return
	}

	sub := f.IndexSubRef
	if sub < 0 {
		sub = 0
		if !isGender {
			if d, ok := entry.info.DefaultPluralSub(); ok {
				sub = d
			}
		}
	}
	if sub >= len(entry.info.Parameters) {
		v.errorAt(f.Pos,
			fmt.Sprintf("choice list references position %d:%d, but '{%d:%s}' only has %d subindices",
				ref, sub, ref, entry.info.GetNormName(), len(entry.info.Parameters)), "")
		return
	}

	param := entry.info.Parameters[sub]
	if isGender && !param.AllowGender {
		v.errorAt(f.Pos,
			fmt.Sprintf("directive '{%d:%s}' does not allow genders", ref, entry.info.GetNormName()), "")
	} else if !isGender && !param.AllowPlural {
		v.errorAt(f.Pos,
			fmt.Sprintf("directive '{%d:%s}' does not allow plurals", ref, entry.info.GetNormName()), "")
	}
}

// checkCompleteness runs after the scan: required directives must have
// appeared, exact-occurrence counts must match, and directives the
// candidate introduced beyond the base are flagged.
func (v *crossValidator) checkCompleteness() {
	for _, p := range v.sig.sortedPositions() {
		e := v.sig.positional[p]
		found := v.posFound[p]
		name := e.info.GetNormName()
		if e.info.Occurrence != commands.OccurrenceAny && found == 0 {
			v.errs = append(v.errs, global(SeverityError,
				fmt.Sprintf("directive '{%d:%s}' is missing", p, name), ""))
		} else if e.info.Occurrence == commands.OccurrenceExact && found != e.declared {
			v.errs = append(v.errs, global(SeverityWarning,
				fmt.Sprintf("directive '{%d:%s}' is expected %d times, found %d times",
					p, name, e.declared, found), ""))
		}
	}

	for _, name := range v.sig.npOrder {
		e := v.sig.nonPositional[name]
		found := 0
		if fe, ok := v.npFound[name]; ok {
			found = fe.count
		}
		if e.occurrence != commands.OccurrenceAny && found == 0 {
			v.errs = append(v.errs, global(SeverityWarning,
				fmt.Sprintf("directive '{%s}' is missing", name), ""))
		} else if e.occurrence == commands.OccurrenceExact && found != e.declared {
			v.errs = append(v.errs, global(SeverityWarning,
				fmt.Sprintf("directive '{%s}' is expected %d times, found %d times",
					name, e.declared, found), ""))
		}
	}

	for _, name := range v.npFoundOrder {
		if _, ok := v.sig.nonPositional[name]; ok {
			continue
		}
		if v.npFound[name].occurrence == commands.OccurrenceAny {
			continue
		}
		v.errs = append(v.errs, global(SeverityWarning,
			fmt.Sprintf("directive '{%s}' is unexpected", name), "remove it"))
	}
}

// ValidateBase validates a base (source language) string against itself
// and, when structurally sound, returns its canonical form. Total: never
// panics on malformed input.
func ValidateBase(config LanguageConfig, base string) ValidationResult {
	parsed, perr := parser.Parse(base)
	if perr != nil {
		return ValidationResult{Errors: []ValidationError{
			spanned(SeverityError, perr.Pos, perr.Message, ""),
		}}
	}
	result := ValidationResult{Errors: Validate(&config, parsed, nil)}
	if result.Errors == nil {
		// The wire shape is an array, never null.
		result.Errors = []ValidationError{}
	}
	if !hasErrors(result.Errors) {
		Sanitize(parsed)
		Normalize(config.Dialect, parsed)
		normalized := parsed.Compile()
		result.Normalized = &normalized
	}
	return result
}

// ValidateTranslation validates a translation against its base string.
// caseSel selects which grammatical case the translation is for;
// "default" means none.
func ValidateTranslation(config LanguageConfig, base, caseSel, translation string) ValidationResult {
	baseParsed, perr := parser.Parse(base)
	if perr != nil {
		return ValidationResult{Errors: []ValidationError{baseInvalid()}}
	}
	transParsed, perr := parser.Parse(translation)
	if perr != nil {
		return ValidationResult{Errors: []ValidationError{
			spanned(SeverityError, perr.Pos, perr.Message, ""),
		}}
	}

	var errs []ValidationError
	if caseSel != "default" {
		if !config.Dialect.AllowsCases() {
			errs = append(errs, global(SeverityError, "no case selections allowed", ""))
		} else if !config.hasCase(caseSel) {
			errs = append(errs, global(SeverityError,
				fmt.Sprintf("unknown case '%s'", caseSel),
				"known cases: "+config.knownCases()))
		}
	}
	errs = append(errs, Validate(&config, transParsed, baseParsed)...)
	if errs == nil {
		errs = []ValidationError{}
	}

	result := ValidationResult{Errors: errs}
	if !hasErrors(errs) {
		Sanitize(transParsed)
		Normalize(config.Dialect, transParsed)
		normalized := transParsed.Compile()
		result.Normalized = &normalized
	}
	return result
}
