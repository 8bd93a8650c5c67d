package hub

import (
	"context"
	"encoding/json"
)

// RowIterator walks one dataset split row by row, fetching pages from the
// datasets-server lazily as the consumer advances.
type RowIterator struct {
	client   *Client
	ref      RowsRef
	pageSize int

	offset  int
	total   int
	started bool
	page    []json.RawMessage
	pos     int
}

// Iterate returns a lazy row iterator over the given split
func (c *Client) Iterate(ref RowsRef) *RowIterator {
	return &RowIterator{
		client:   c,
		ref:      ref,
		pageSize: defaultPageSize,
	}
}

// Next returns the next raw row. The second return value is false once the
// split is exhausted; any fetch error is returned as-is.
func (it *RowIterator) Next(ctx context.Context) (json.RawMessage, bool, error) {
	if it.pos >= len(it.page) {
		if it.started && it.offset >= it.total {
			return nil, false, nil
		}

		page, err := it.client.Rows(ctx, it.ref, it.offset, it.pageSize)
		if err != nil {
			return nil, false, err
		}

		it.started = true
		it.total = page.Total
		if len(page.Rows) == 0 {
			return nil, false, nil
		}

		it.page = page.Rows
		it.pos = 0
	}

	row := it.page[it.pos]
	it.pos++
	it.offset++
	return row, true, nil
}
