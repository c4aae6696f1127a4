package validate

import (
	"testing"

	"translation-validator/internal/commands"
	"translation-validator/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) *parser.ParsedString {
	t.Helper()
	ps, perr := parser.Parse(input)
	require.Nil(t, perr, "input %q", input)
	return ps
}

func TestSignatureEmpty(t *testing.T) {
	sig, errs := buildSignature(commands.DialectOpenTTD, mustParse(t, ""))
	require.Nil(t, errs)
	assert.Empty(t, sig.positional)
	assert.Empty(t, sig.nonPositional)
}

func TestSignaturePositions(t *testing.T) {
	base := mustParse(t,
		"{P a b}{RED}{NUM}{NBSP}{MONO_FONT}{5:STRING.foo}{RED}{2:STRING3.bar}{RAW_STRING}{G c d}")
	sig, errs := buildSignature(commands.DialectOpenTTD, base)
	require.Nil(t, errs)

	require.Len(t, sig.positional, 4)
	assert.Equal(t, "NUM", sig.positional[0].info.Name)
	assert.Equal(t, "STRING", sig.positional[5].info.Name)
	assert.Equal(t, "STRING3", sig.positional[2].info.Name)
	assert.Equal(t, "RAW_STRING", sig.positional[3].info.Name)

	require.Len(t, sig.nonPositional, 3)
	assert.Equal(t, &nonPositionalEntry{occurrence: commands.OccurrenceNonZero, declared: 2},
		sig.nonPositional["RED"])
	assert.Equal(t, &nonPositionalEntry{occurrence: commands.OccurrenceAny, declared: 1},
		sig.nonPositional["NBSP"])
	assert.Equal(t, &nonPositionalEntry{occurrence: commands.OccurrenceExact, declared: 1},
		sig.nonPositional["MONO_FONT"])
	assert.Equal(t, []string{"RED", "NBSP", "MONO_FONT"}, sig.npOrder)
}

func TestSignatureRepeatedPositionCounts(t *testing.T) {
	sig, errs := buildSignature(commands.DialectOpenTTD, mustParse(t, "{NUM}{0:NUM}"))
	require.Nil(t, errs)
	require.Len(t, sig.positional, 1)
	assert.Equal(t, "NUM", sig.positional[0].info.Name)
	assert.Equal(t, 2, sig.positional[0].declared)
}

func TestSignatureUnknownByDialect(t *testing.T) {
	base := mustParse(t, "{RAW_STRING}")

	sig, errs := buildSignature(commands.DialectOpenTTD, base)
	require.Nil(t, errs)
	assert.Len(t, sig.positional, 1)

	sig, errs = buildSignature(commands.DialectNewGRF, base)
	assert.Nil(t, sig)
	require.Len(t, errs, 1)
	assert.Equal(t, SeverityError, errs[0].Severity)
	assert.Equal(t, "unknown directive '{RAW_STRING}'", errs[0].Message)
	assert.Equal(t, 0, *errs[0].PosBegin)
	assert.Equal(t, 12, *errs[0].PosEnd)
}

func TestSignatureCollectsAllErrors(t *testing.T) {
	sig, errs := buildSignature(commands.DialectOpenTTD, mustParse(t, "{FOO}{NUM}{BAR}"))
	assert.Nil(t, sig)
	require.Len(t, errs, 2)
	assert.Equal(t, "unknown directive '{FOO}'", errs[0].Message)
	assert.Equal(t, "unknown directive '{BAR}'", errs[1].Message)
}

func TestSignatureNonPositionalWithIndex(t *testing.T) {
	sig, errs := buildSignature(commands.DialectOpenTTD, mustParse(t, "{1:RED}"))
	assert.Nil(t, sig)
	require.Len(t, errs, 1)
	assert.Equal(t, "directive '{RED}' cannot have a position reference", errs[0].Message)
	require.NotNil(t, errs[0].Suggestion)
	assert.Equal(t, "remove '1:'", *errs[0].Suggestion)
}
