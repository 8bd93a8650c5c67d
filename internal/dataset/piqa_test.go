package dataset

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIQANormalize(t *testing.T) {
	src := sourceOf(
		`{"goal": "Open a jar", "sol1": "Twist the lid", "sol2": "Push the lid", "label": 0}`,
		`{"goal": "Dry wet shoes", "sol1": "Freeze them", "sol2": "Stuff them with newspaper", "label": 1}`,
		`{"goal": "Clean a pan", "sol1": "Use soap", "sol2": "Use sand", "label": 0}`,
	)

	records, count, err := PIQA{}.Normalize(context.Background(), src, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	piqa, ok := records.([]PIQARecord)
	require.True(t, ok)
	require.Len(t, piqa, 3)

	assert.Equal(t, "Open a jar", piqa[0].Goal)
	assert.Equal(t, "Twist the lid", piqa[0].Sol1)
	assert.Equal(t, "Push the lid", piqa[0].Sol2)
	for _, record := range piqa {
		assert.Contains(t, []string{"0", "1"}, record.Label)
	}
}

func TestPIQALabelRoundTrip(t *testing.T) {
	for _, label := range []int{0, 1, 7} {
		src := sourceOf(`{"goal": "g", "sol1": "a", "sol2": "b", "label": ` + strconv.Itoa(label) + `}`)

		records, count, err := PIQA{}.Normalize(context.Background(), src, 1)
		require.NoError(t, err)
		require.Equal(t, 1, count)

		piqa := records.([]PIQARecord)
		parsed, err := strconv.Atoi(piqa[0].Label)
		require.NoError(t, err)
		// Out-of-range labels pass through unvalidated
		assert.Equal(t, label, parsed)
	}
}

func TestPIQADecodeError(t *testing.T) {
	src := sourceOf(`{"goal": 42}`)

	_, _, err := PIQA{}.Normalize(context.Background(), src, 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "piqa")
}
