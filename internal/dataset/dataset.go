// Package dataset normalizes public benchmark datasets into the flat JSON
// layout consumed by downstream prompt evaluation harnesses.
package dataset

import (
	"context"
	"encoding/json"

	"github.com/benchkit/benchkit/internal/hub"
)

// RowSource yields raw dataset rows one at a time. The second return value
// is false once the source is exhausted.
type RowSource interface {
	Next(ctx context.Context) (json.RawMessage, bool, error)
}

// Dataset describes one benchmark and how to normalize its rows.
//
// Normalize consumes rows from src in order and stops after visiting limit
// rows or when the source runs dry, whichever comes first. It returns the
// normalized records ready for serialization plus the emitted count; the
// count can be below limit when a dataset drops malformed rows.
type Dataset interface {
	Name() string
	Description() string
	Remote() hub.RowsRef
	Normalize(ctx context.Context, src RowSource, limit int) (records interface{}, count int, err error)
}

// All returns the supported benchmarks in their canonical fetch order
func All() []Dataset {
	return []Dataset{
		PIQA{},
		HellaSwag{},
		BoolQ{},
		GSM8K{},
	}
}

// ByName looks up a benchmark by its canonical name
func ByName(name string) (Dataset, bool) {
	for _, ds := range All() {
		if ds.Name() == name {
			return ds, true
		}
	}
	return nil, false
}

// Names returns the canonical names of all supported benchmarks
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, ds := range all {
		names[i] = ds.Name()
	}
	return names
}
