package contact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(string(f))
		require.NoError(t, err)
		require.Equal(t, f, got)
	}

	_, err := ParseField("subject")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestDraftWithLeavesOtherFields(t *testing.T) {
	d := Draft{Name: "Jane", Email: "jane@x.com", Message: "Hello"}

	next, err := d.With(FieldEmail, "jane@y.com")
	require.NoError(t, err)
	require.Equal(t, Draft{Name: "Jane", Email: "jane@y.com", Message: "Hello"}, next)
	require.Equal(t, "jane@x.com", d.Email)
	require.Equal(t, "jane@y.com", next.Value(FieldEmail))
}

func TestGateReportsFieldsByInputName(t *testing.T) {
	gate, err := NewGate()
	require.NoError(t, err)

	err = gate.Check(Draft{Email: "not-an-address"})
	var incomplete IncompleteError
	require.ErrorAs(t, err, &incomplete)
	require.Len(t, incomplete, 3)
	require.Contains(t, incomplete, FieldName)
	require.Contains(t, incomplete, FieldEmail)
	require.Contains(t, incomplete, FieldMessage)
	require.Contains(t, incomplete[FieldName], "required")

	require.NoError(t, gate.Check(Draft{Name: "Jane", Email: "jane@x.com", Message: "Hello"}))
}
