// Package commands holds the static registry of string commands known to
// the validator. The registry is built once at init and never mutated, so
// lookups are safe from concurrent validation calls.
package commands

// Occurrence is the policy for how often a command may appear in a
// translation relative to the base string.
type Occurrence int

const (
	// OccurrenceAny allows any number of occurrences, including zero.
	OccurrenceAny Occurrence = iota
	// OccurrenceNonZero requires at least one occurrence.
	OccurrenceNonZero
	// OccurrenceExact requires exactly as many occurrences as the base.
	OccurrenceExact
)

// Parameter describes one sub-parameter of a positional command.
type Parameter struct {
	AllowPlural bool
	AllowGender bool
}

// CommandInfo describes a single string command.
type CommandInfo struct {
	// Name as written in base strings.
	Name string
	// NormName is the canonical spelling used in translations; empty
	// means the name is already canonical.
	NormName string
	// Dialects the command is valid in.
	Dialects []Dialect
	// Parameters is empty for non-positional commands.
	Parameters []Parameter
	Occurrence Occurrence
	// AllowCase permits a case selection suffix like {STRING.gen}.
	AllowCase bool
	// DefPluralSub is the sub-parameter a plural choice list refers to
	// when no explicit sub-index is given. Negative means unset.
	DefPluralSub int
}

// GetNormName returns the canonical spelling of the command.
func (ci *CommandInfo) GetNormName() string {
	if ci.NormName != "" {
		return ci.NormName
	}
	return ci.Name
}

// DefaultPluralSub returns the default plural sub-index, if any.
func (ci *CommandInfo) DefaultPluralSub() (int, bool) {
	if ci.DefPluralSub < 0 {
		return 0, false
	}
	return ci.DefPluralSub, true
}

func (ci *CommandInfo) inDialect(d Dialect) bool {
	for _, cd := range ci.Dialects {
		if cd == d {
			return true
		}
	}
	return false
}

var (
	all = []Dialect{DialectNewGRF, DialectGameScript, DialectOpenTTD}
	ogs = []Dialect{DialectOpenTTD, DialectGameScript}
	ott = []Dialect{DialectOpenTTD}
)

// value parameter shapes shared by the table below.
var (
	numeric = []Parameter{{AllowPlural: true}}
	strRef  = []Parameter{{AllowGender: true}}
)

func strN(n int) []Parameter {
	params := make([]Parameter, 0, n+1)
	params = append(params, Parameter{AllowGender: true})
	for i := 0; i < n; i++ {
		params = append(params, Parameter{AllowPlural: true, AllowGender: true})
	}
	return params
}

// registry is the full command table. Non-positional commands have no
// parameters; the empty name is the line-break marker and "{" the escaped
// brace, both of which every dialect accepts any number of.
var registry = []CommandInfo{
	{Name: "", Dialects: all, Occurrence: OccurrenceAny, DefPluralSub: -1},
	{Name: "{", Dialects: all, Occurrence: OccurrenceAny, DefPluralSub: -1},
	{Name: "NBSP", Dialects: all, Occurrence: OccurrenceAny, DefPluralSub: -1},
	{Name: "COPYRIGHT", Dialects: all, Occurrence: OccurrenceAny, DefPluralSub: -1},

	{Name: "RED", Dialects: all, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "GREEN", Dialects: all, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "BLUE", Dialects: all, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "ORANGE", Dialects: all, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "YELLOW", Dialects: all, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "WHITE", Dialects: all, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "BLACK", Dialects: all, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "GRAY", Dialects: all, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "SILVER", Dialects: all, Occurrence: OccurrenceNonZero, DefPluralSub: -1},

	{Name: "MONO_FONT", Dialects: ott, Occurrence: OccurrenceExact, DefPluralSub: -1},
	{Name: "TRAIN", Dialects: ott, Occurrence: OccurrenceExact, DefPluralSub: -1},
	{Name: "LORRY", Dialects: ott, Occurrence: OccurrenceExact, DefPluralSub: -1},
	{Name: "BUS", Dialects: ott, Occurrence: OccurrenceExact, DefPluralSub: -1},
	{Name: "PLANE", Dialects: ott, Occurrence: OccurrenceExact, DefPluralSub: -1},
	{Name: "SHIP", Dialects: ott, Occurrence: OccurrenceExact, DefPluralSub: -1},

	{Name: "NUM", Dialects: all, Parameters: numeric, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "COMMA", Dialects: all, Parameters: numeric, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "HEX", Dialects: all, Parameters: numeric, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "BYTES", Dialects: ott, Parameters: numeric, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "VELOCITY", Dialects: ott, Parameters: numeric, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "POWER", Dialects: ott, Parameters: numeric, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "CURRENCY_SHORT", Dialects: ott, Parameters: numeric, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "CURRENCY_LONG", Dialects: ott, Parameters: numeric, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "DATE_SHORT", Dialects: ott, Parameters: []Parameter{{}}, Occurrence: OccurrenceNonZero, DefPluralSub: -1},
	{Name: "DATE_LONG", Dialects: ott, Parameters: []Parameter{{}}, Occurrence: OccurrenceNonZero, DefPluralSub: -1},

	{Name: "STRING", Dialects: all, Parameters: strRef, Occurrence: OccurrenceNonZero, AllowCase: true, DefPluralSub: -1},
	{Name: "STRING1", NormName: "STRING", Dialects: ott, Parameters: strN(1), Occurrence: OccurrenceNonZero, AllowCase: true, DefPluralSub: -1},
	{Name: "STRING2", NormName: "STRING", Dialects: ott, Parameters: strN(2), Occurrence: OccurrenceNonZero, AllowCase: true, DefPluralSub: -1},
	{Name: "STRING3", NormName: "STRING", Dialects: ott, Parameters: strN(3), Occurrence: OccurrenceNonZero, AllowCase: true, DefPluralSub: -1},
	{Name: "STRING4", NormName: "STRING", Dialects: ott, Parameters: strN(4), Occurrence: OccurrenceNonZero, AllowCase: true, DefPluralSub: -1},
	{Name: "RAW_STRING", Dialects: ogs, Parameters: strRef, Occurrence: OccurrenceNonZero, DefPluralSub: -1},

	{Name: "CARGO_TINY", Dialects: ott, Parameters: []Parameter{{}, {AllowPlural: true}}, Occurrence: OccurrenceNonZero, DefPluralSub: 1},
	{Name: "CARGO_SHORT", Dialects: ott, Parameters: []Parameter{{}, {AllowPlural: true}}, Occurrence: OccurrenceNonZero, DefPluralSub: 1},
	{Name: "CARGO_LONG", Dialects: ott, Parameters: []Parameter{{AllowGender: true}, {AllowPlural: true}}, Occurrence: OccurrenceNonZero, DefPluralSub: 1},
}

var byName map[string][]*CommandInfo

func init() {
	byName = make(map[string][]*CommandInfo, len(registry))
	for i := range registry {
		ci := &registry[i]
		byName[ci.Name] = append(byName[ci.Name], ci)
	}
}

// Lookup finds the command with the given name that is valid in the given
// dialect. Returns nil if no such command exists.
func Lookup(name string, d Dialect) *CommandInfo {
	for _, ci := range byName[name] {
		if ci.inDialect(d) {
			return ci
		}
	}
	return nil
}
