package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/benchkit/benchkit/internal/hub"
)

// GSM8K solutions end with "#### <number>"
const answerMarker = "####"

// GSM8KRecord is the flattened form written to gsm8k.json. The answer is
// the parsed final number; the solution keeps the full raw worked answer
// for reference during evaluation.
type GSM8KRecord struct {
	Question string  `json:"question"`
	Answer   float64 `json:"answer"`
	Solution string  `json:"solution"`
}

type gsm8kRow struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GSM8K is grade-school math word problems with worked solutions
type GSM8K struct{}

func (GSM8K) Name() string {
	return "gsm8k"
}

func (GSM8K) Description() string {
	return "Grade school math word problems"
}

func (GSM8K) Remote() hub.RowsRef {
	return hub.RowsRef{Dataset: "gsm8k", Config: "main", Split: "test"}
}

// Normalize drops rows whose answer text has no "####" marker. Dropped rows
// still count as visited, so the output can hold fewer than limit records
// even when the split has plenty left.
func (GSM8K) Normalize(ctx context.Context, src RowSource, limit int) (interface{}, int, error) {
	records := []GSM8KRecord{}
	for visited := 0; visited < limit; visited++ {
		raw, ok, err := src.Next(ctx)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			break
		}

		var row gsm8kRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, 0, fmt.Errorf("gsm8k: failed to decode row: %w", err)
		}

		answer, ok, err := parseFinalAnswer(row.Answer)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			continue
		}

		records = append(records, GSM8KRecord{
			Question: row.Question,
			Answer:   answer,
			Solution: row.Answer,
		})
	}

	return records, len(records), nil
}

// parseFinalAnswer extracts the number after the last "####" marker,
// trimming whitespace and thousands separators. ok is false when the
// marker is missing.
func parseFinalAnswer(solution string) (answer float64, ok bool, err error) {
	idx := strings.LastIndex(solution, answerMarker)
	if idx < 0 {
		return 0, false, nil
	}

	tail := strings.TrimSpace(solution[idx+len(answerMarker):])
	tail = strings.ReplaceAll(tail, ",", "")

	answer, err = strconv.ParseFloat(tail, 64)
	if err != nil {
		return 0, false, fmt.Errorf("gsm8k: failed to parse final answer %q: %w", tail, err)
	}

	return answer, true, nil
}
