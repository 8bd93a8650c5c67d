package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/benchkit/benchkit/internal/hub"
)

// PIQARecord is the flattened form written to piqa.json. The label stays a
// string ("0" or "1") even though it is an option index, matching the
// layout downstream harnesses expect.
type PIQARecord struct {
	Goal  string `json:"goal"`
	Sol1  string `json:"sol1"`
	Sol2  string `json:"sol2"`
	Label string `json:"label"`
}

type piqaRow struct {
	Goal  string `json:"goal"`
	Sol1  string `json:"sol1"`
	Sol2  string `json:"sol2"`
	Label int    `json:"label"`
}

// PIQA is physical commonsense reasoning as a two-way choice
type PIQA struct{}

func (PIQA) Name() string {
	return "piqa"
}

func (PIQA) Description() string {
	return "Physical commonsense reasoning (A/B choice)"
}

func (PIQA) Remote() hub.RowsRef {
	return hub.RowsRef{Dataset: "piqa", Split: "validation"}
}

func (PIQA) Normalize(ctx context.Context, src RowSource, limit int) (interface{}, int, error) {
	records := []PIQARecord{}
	for visited := 0; visited < limit; visited++ {
		raw, ok, err := src.Next(ctx)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			break
		}

		var row piqaRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, 0, fmt.Errorf("piqa: failed to decode row: %w", err)
		}

		records = append(records, PIQARecord{
			Goal:  row.Goal,
			Sol1:  row.Sol1,
			Sol2:  row.Sol2,
			Label: strconv.Itoa(row.Label),
		})
	}

	return records, len(records), nil
}
