package validate

import (
	"encoding/json"
	"fmt"

	"translation-validator/internal/parser"
)

// Severity classifies a diagnostic. Errors make a translation unusable and
// suppress normalization; warnings flag issues worth fixing but the
// translation is still better than none.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return fmt.Errorf("unknown severity %q", v)
	}
	return nil
}

// ValidationError is a single diagnostic. Positions are codepoint offsets
// into the validated string; both are nil for whole-string diagnostics.
type ValidationError struct {
	Severity   Severity `json:"severity"`
	PosBegin   *int     `json:"pos_begin"`
	PosEnd     *int     `json:"pos_end"`
	Message    string   `json:"message"`
	Suggestion *string  `json:"suggestion"`
}

// ValidationResult is the outcome of one validation call. Normalized is
// set iff no error-severity diagnostic exists.
type ValidationResult struct {
	Errors     []ValidationError `json:"errors"`
	Normalized *string           `json:"normalized"`
}

// HasErrors reports whether any diagnostic has error severity.
func (r *ValidationResult) HasErrors() bool {
	return hasErrors(r.Errors)
}

func hasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

func spanned(sev Severity, sp parser.Span, message, suggestion string) ValidationError {
	begin, end := sp.Begin, sp.End
	return ValidationError{
		Severity:   sev,
		PosBegin:   &begin,
		PosEnd:     &end,
		Message:    message,
		Suggestion: optStr(suggestion),
	}
}

func global(sev Severity, message, suggestion string) ValidationError {
	return ValidationError{
		Severity:   sev,
		Message:    message,
		Suggestion: optStr(suggestion),
	}
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// baseInvalid is the single diagnostic shown to translators when the base
// string itself does not validate. Base authoring defects are never their
// problem to solve.
func baseInvalid() ValidationError {
	return global(SeverityError, "base language text is invalid",
		"this is a bug; wait until it is fixed")
}
