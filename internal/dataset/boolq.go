package dataset

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/benchkit/benchkit/internal/hub"
)

// BoolQRecord is the flattened form written to boolq.json. The answer is
// kept as a native boolean.
type BoolQRecord struct {
	Question string `json:"question"`
	Passage  string `json:"passage"`
	Answer   bool   `json:"answer"`
}

// BoolQ is yes/no question answering over a supporting passage
type BoolQ struct{}

func (BoolQ) Name() string {
	return "boolq"
}

func (BoolQ) Description() string {
	return "Yes/No question answering"
}

func (BoolQ) Remote() hub.RowsRef {
	return hub.RowsRef{Dataset: "google/boolq", Split: "validation"}
}

func (BoolQ) Normalize(ctx context.Context, src RowSource, limit int) (interface{}, int, error) {
	records := []BoolQRecord{}
	for visited := 0; visited < limit; visited++ {
		raw, ok, err := src.Next(ctx)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			break
		}

		var record BoolQRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, 0, fmt.Errorf("boolq: failed to decode row: %w", err)
		}

		records = append(records, record)
	}

	return records, len(records), nil
}
