package dataset

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHellaSwagNormalize(t *testing.T) {
	src := sourceOf(
		`{"ctx": "A man is standing on a ladder.", "endings": ["He paints the wall.", "He flies away.", "He sings.", "He melts."], "label": 0}`,
		`{"ctx": "A dog runs into the lake.", "endings": ["It swims.", "It reads.", "It drives.", "It types."], "label": 3}`,
	)

	records, count, err := HellaSwag{}.Normalize(context.Background(), src, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	swag, ok := records.([]HellaSwagRecord)
	require.True(t, ok)
	require.Len(t, swag, 2)

	// The raw "ctx" field comes out as "context"
	assert.Equal(t, "A man is standing on a ladder.", swag[0].Context)
	assert.Len(t, swag[0].Endings, 4)
	assert.Equal(t, "He paints the wall.", swag[0].Endings[0])
	assert.Equal(t, "0", swag[0].Label)
	assert.Equal(t, "3", swag[1].Label)
}

func TestHellaSwagLabelRoundTrip(t *testing.T) {
	for label := 0; label < 4; label++ {
		src := sourceOf(`{"ctx": "c", "endings": ["a", "b", "c", "d"], "label": ` + strconv.Itoa(label) + `}`)

		records, _, err := HellaSwag{}.Normalize(context.Background(), src, 1)
		require.NoError(t, err)

		swag := records.([]HellaSwagRecord)
		parsed, err := strconv.Atoi(swag[0].Label)
		require.NoError(t, err)
		assert.Equal(t, label, parsed)
	}
}

func TestHellaSwagTruncation(t *testing.T) {
	src := sourceOf(
		`{"ctx": "one", "endings": [], "label": 0}`,
		`{"ctx": "two", "endings": [], "label": 1}`,
		`{"ctx": "three", "endings": [], "label": 2}`,
	)

	records, count, err := HellaSwag{}.Normalize(context.Background(), src, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	swag := records.([]HellaSwagRecord)
	// Input order is preserved
	assert.Equal(t, "one", swag[0].Context)
	assert.Equal(t, "two", swag[1].Context)
}
