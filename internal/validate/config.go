package validate

import (
	"strings"

	"translation-validator/internal/commands"
)

// LanguageConfig describes the target language being validated: which
// command dialect applies and which cases, genders and plural forms the
// language has.
type LanguageConfig struct {
	Dialect     commands.Dialect
	Cases       []string
	Genders     []string
	PluralCount int
}

func (c *LanguageConfig) hasCase(name string) bool {
	for _, v := range c.Cases {
		if v == name {
			return true
		}
	}
	return false
}

func (c *LanguageConfig) hasGender(name string) bool {
	for _, v := range c.Genders {
		if v == name {
			return true
		}
	}
	return false
}

// gendersEnabled reports whether gender declarations and gender choice
// lists make sense at all: the dialect must permit them and the language
// must distinguish at least two genders.
func (c *LanguageConfig) gendersEnabled() bool {
	return c.Dialect.AllowsGenders() && len(c.Genders) >= 2
}

func (c *LanguageConfig) knownCases() string {
	return strings.Join(c.Cases, ", ")
}

func (c *LanguageConfig) knownGenders() string {
	return strings.Join(c.Genders, ", ")
}
