package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/benchkit/benchkit/internal/hub"
)

// HellaSwagRecord is the flattened form written to hellaswag.json. The raw
// "ctx" field is renamed to "context"; the label stays a string ("0".."3").
type HellaSwagRecord struct {
	Context string   `json:"context"`
	Endings []string `json:"endings"`
	Label   string   `json:"label"`
}

type hellaSwagRow struct {
	Ctx     string   `json:"ctx"`
	Endings []string `json:"endings"`
	Label   int      `json:"label"`
}

// HellaSwag is commonsense sentence completion as a four-way choice
type HellaSwag struct{}

func (HellaSwag) Name() string {
	return "hellaswag"
}

func (HellaSwag) Description() string {
	return "Commonsense sentence completion (4-way choice)"
}

func (HellaSwag) Remote() hub.RowsRef {
	return hub.RowsRef{Dataset: "hellaswag", Split: "validation"}
}

func (HellaSwag) Normalize(ctx context.Context, src RowSource, limit int) (interface{}, int, error) {
	records := []HellaSwagRecord{}
	for visited := 0; visited < limit; visited++ {
		raw, ok, err := src.Next(ctx)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			break
		}

		var row hellaSwagRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, 0, fmt.Errorf("hellaswag: failed to decode row: %w", err)
		}

		records = append(records, HellaSwagRecord{
			Context: row.Ctx,
			Endings: row.Endings,
			Label:   strconv.Itoa(row.Label),
		})
	}

	return records, len(records), nil
}
