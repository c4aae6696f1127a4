package validate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorWireShape(t *testing.T) {
	begin, end := 3, 8
	suggestion := "remove it"
	e := ValidationError{
		Severity:   SeverityWarning,
		PosBegin:   &begin,
		PosEnd:     &end,
		Message:    "directive '{BLUE}' is unexpected",
		Suggestion: &suggestion,
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"severity":"warning","pos_begin":3,"pos_end":8,"message":"directive '{BLUE}' is unexpected","suggestion":"remove it"}`,
		string(data))
}

func TestValidationErrorWireShapeGlobal(t *testing.T) {
	data, err := json.Marshal(baseInvalid())
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"severity":"error","pos_begin":null,"pos_end":null,"message":"base language text is invalid","suggestion":"this is a bug; wait until it is fixed"}`,
		string(data))
}

func TestValidationResultWireShape(t *testing.T) {
	normalizedText := "{0:NUM}"
	r := ValidationResult{Errors: []ValidationError{}, Normalized: &normalizedText}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":[],"normalized":"{0:NUM}"}`, string(data))

	var decoded ValidationResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r, decoded)
}

func TestSeverityRoundTrip(t *testing.T) {
	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"error"`), &s))
	assert.Equal(t, SeverityError, s)
	require.NoError(t, json.Unmarshal([]byte(`"warning"`), &s))
	assert.Equal(t, SeverityWarning, s)
	assert.Error(t, json.Unmarshal([]byte(`"fatal"`), &s))
}

func TestHasErrors(t *testing.T) {
	r := ValidationResult{Errors: []ValidationError{global(SeverityWarning, "w", "")}}
	assert.False(t, r.HasErrors())
	r.Errors = append(r.Errors, global(SeverityError, "e", ""))
	assert.True(t, r.HasErrors())
}
