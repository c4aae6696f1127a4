package commands

import "fmt"

// Dialect selects which command set a string is written in.
type Dialect int

const (
	DialectNewGRF Dialect = iota
	DialectGameScript
	DialectOpenTTD
)

// ParseDialect maps the wire names used by language configs to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "newgrf":
		return DialectNewGRF, nil
	case "game-script":
		return DialectGameScript, nil
	case "openttd":
		return DialectOpenTTD, nil
	}
	return 0, fmt.Errorf("unknown dialect %q", s)
}

func (d Dialect) String() string {
	switch d {
	case DialectNewGRF:
		return "newgrf"
	case DialectGameScript:
		return "game-script"
	case DialectOpenTTD:
		return "openttd"
	}
	return "unknown"
}

// AllowsCases reports whether case selections like {STRING.gen} are legal.
func (d Dialect) AllowsCases() bool {
	return d != DialectGameScript
}

// AllowsGenders reports whether gender declarations and gender choice
// lists are legal.
func (d Dialect) AllowsGenders() bool {
	return d != DialectGameScript
}
