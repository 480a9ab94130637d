package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 12.23, RoundWithTwoDecimalPlace(12.233333))
	assert.Equal(t, -14.1, RoundWithTwoDecimalPlace(-14.1))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}

func TestPrettyJson(t *testing.T) {
	out, err := PrettyJson(map[string]int{"dropped_rows": 2})
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"dropped_rows\": 2")

	out, err = PrettyJson([]byte(`{"id":"abc123"}`))
	require.NoError(t, err)
	assert.Contains(t, out, "\"id\": \"abc123\"")

	_, err = PrettyJson([]byte(`{`))
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 6)
	assert.Regexp(t, `^[A-Za-z0-9]{6}$`, id)
}
