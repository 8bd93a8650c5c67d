package dataset

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolQNormalize(t *testing.T) {
	src := sourceOf(
		`{"question": "is the sky blue", "passage": "The sky appears blue due to Rayleigh scattering.", "answer": true}`,
		`{"question": "do fish fly", "passage": "Most fish live underwater.", "answer": false}`,
	)

	records, count, err := BoolQ{}.Normalize(context.Background(), src, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	boolq, ok := records.([]BoolQRecord)
	require.True(t, ok)
	require.Len(t, boolq, 2)

	assert.Equal(t, "is the sky blue", boolq[0].Question)
	assert.True(t, boolq[0].Answer)
	assert.False(t, boolq[1].Answer)
}

func TestBoolQAnswerStaysBoolean(t *testing.T) {
	src := sourceOf(`{"question": "q", "passage": "p", "answer": true}`)

	records, _, err := BoolQ{}.Normalize(context.Background(), src, 1)
	require.NoError(t, err)

	data, err := json.Marshal(records)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"answer":true`)
}
