package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseOne parses an input that must consist of exactly one fragment.
func parseOne(t *testing.T, input string) Fragment {
	t.Helper()
	ps, perr := Parse(input)
	require.Nil(t, perr, "input %q", input)
	require.Len(t, ps.Fragments, 1, "input %q", input)
	return ps.Fragments[0]
}

func TestParseCommand(t *testing.T) {
	span := func(end int) Span { return Span{Begin: 0, End: end} }

	tests := []struct {
		input string
		want  *Command
	}{
		{"{}", &Command{Pos: span(2), Index: -1, Name: ""}},
		{"{{}", &Command{Pos: span(3), Index: -1, Name: "{"}},
		{"{NUM}", &Command{Pos: span(5), Index: -1, Name: "NUM"}},
		{"{1:RED}", &Command{Pos: span(7), Index: 1, Name: "RED"}},
		{"{RAW_STRING}", &Command{Pos: span(12), Index: -1, Name: "RAW_STRING"}},
		{"{STRING.gen}", &Command{Pos: span(12), Index: -1, Name: "STRING", Case: "gen"}},
		{"{1:STRING.gen}", &Command{Pos: span(14), Index: 1, Name: "STRING", Case: "gen"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseOne(t, tt.input), "input %q", tt.input)
	}
}

func TestParseGenderDecl(t *testing.T) {
	want := &GenderDecl{Pos: Span{Begin: 0, End: 5}, Gender: "n"}
	assert.Equal(t, want, parseOne(t, "{G=n}"))

	spaced := parseOne(t, "{G = n}").(*GenderDecl)
	assert.Equal(t, "n", spaced.Gender)
}

func TestParseChoiceList(t *testing.T) {
	tests := []struct {
		input   string
		ref     int
		subRef  int
		choices []string
	}{
		{"{P a b}", -1, -1, []string{"a", "b"}},
		{"{P\na\tb}", -1, -1, []string{"a", "b"}},
		{`{P "" b}`, -1, -1, []string{"", "b"}},
		{`{P "a b" "c"}`, -1, -1, []string{"a b", "c"}},
		{"{P 1 a b}", 1, -1, []string{"a", "b"}},
		{"{P\t1\na\rb\n}", 1, -1, []string{"a", "b"}},
		{`{P 1 "" b}`, 1, -1, []string{"", "b"}},
		{"{P 1:2 a b}", 1, 2, []string{"a", "b"}},
		{`{P 1:2 "" "" b}`, 1, 2, []string{"", "", "b"}},
		{`{P 1:2 a ""}`, 1, 2, []string{"a", ""}},
		{"{P a b c}", -1, -1, []string{"a", "b", "c"}},
		{"{G 0 m f n}", 0, -1, []string{"m", "f", "n"}},
	}
	for _, tt := range tests {
		frag, ok := parseOne(t, tt.input).(*ChoiceList)
		require.True(t, ok, "input %q", tt.input)
		assert.Equal(t, tt.ref, frag.IndexRef, "input %q", tt.input)
		assert.Equal(t, tt.subRef, frag.IndexSubRef, "input %q", tt.input)
		assert.Equal(t, tt.choices, frag.Choices, "input %q", tt.input)
	}
}

func TestParseInvalidDirective(t *testing.T) {
	inputs := []string{
		"{1}",
		"{1:1}",
		"{1:1 NUM}",
		"{NUM=a}",
		`{P " a}`,
		"{P 1.a a b}",
		"{P 1:a a b}",
		"{lower}",
	}
	for _, input := range inputs {
		ps, perr := Parse(input)
		require.NotNil(t, perr, "input %q", input)
		assert.Nil(t, ps, "input %q", input)
		assert.Equal(t, "invalid directive: '"+input+"'", perr.Message)
		assert.Equal(t, Span{Begin: 0, End: len([]rune(input))}, perr.Pos)
	}
}

func TestParseUnterminated(t *testing.T) {
	ps, perr := Parse("{G=n}{ORANGE OpenTTD")
	require.NotNil(t, perr)
	assert.Nil(t, ps)
	assert.Equal(t, "unterminated directive, '}' expected", perr.Message)
	assert.Equal(t, Span{Begin: 5, End: 20}, perr.Pos)
}

func TestParseEmpty(t *testing.T) {
	ps, perr := Parse("")
	require.Nil(t, perr)
	assert.Empty(t, ps.Fragments)
}

func TestParseMixed(t *testing.T) {
	ps, perr := Parse("{G=n}{ORANGE}OpenTTD {STRING}")
	require.Nil(t, perr)
	require.Len(t, ps.Fragments, 4)

	assert.Equal(t, &GenderDecl{Pos: Span{Begin: 0, End: 5}, Gender: "n"}, ps.Fragments[0])
	assert.Equal(t, &Command{Pos: Span{Begin: 5, End: 13}, Index: -1, Name: "ORANGE"}, ps.Fragments[1])
	assert.Equal(t, &Text{Pos: Span{Begin: 13, End: 21}, Content: "OpenTTD "}, ps.Fragments[2])
	assert.Equal(t, &Command{Pos: Span{Begin: 21, End: 29}, Index: -1, Name: "STRING"}, ps.Fragments[3])
}

func TestParseSpansAreCodepoints(t *testing.T) {
	ps, perr := Parse("Привет {NUM}!")
	require.Nil(t, perr)
	require.Len(t, ps.Fragments, 3)

	assert.Equal(t, Span{Begin: 0, End: 7}, ps.Fragments[0].Span())
	assert.Equal(t, Span{Begin: 7, End: 12}, ps.Fragments[1].Span())
	assert.Equal(t, Span{Begin: 12, End: 13}, ps.Fragments[2].Span())
}

func TestCompileRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"{}",
		"{{}",
		"{G=n}{ORANGE}OpenTTD {0:STRING.gen}",
		"{NUM} of {COMMA}",
		`{P 1:2 "a b" c}`,
		`{P "" b}`,
		"{G 0 m f}",
	}
	for _, input := range inputs {
		ps, perr := Parse(input)
		require.Nil(t, perr, "input %q", input)
		assert.Equal(t, input, ps.Compile(), "input %q", input)
	}
}

func TestCompileQuotesChoices(t *testing.T) {
	choice := &ChoiceList{
		Name:        "P",
		IndexRef:    -1,
		IndexSubRef: -1,
		Choices:     []string{"", " b"},
	}
	ps := &ParsedString{Fragments: []Fragment{choice}}
	assert.Equal(t, `{P "" " b"}`, ps.Compile())
}

func TestCompileCommand(t *testing.T) {
	ps := &ParsedString{Fragments: []Fragment{
		&Command{Index: 1, Name: "STRING", Case: "gen"},
	}}
	assert.Equal(t, "{1:STRING.gen}", ps.Compile())
}
