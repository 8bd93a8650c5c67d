package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/benchkit/benchkit/internal/testhelper"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:       baseURL,
		Timeout:       5 * time.Second,
		MaxRetries:    2,
		RetryDelay:    time.Millisecond,
		PageCacheSize: 8,
	}
}

func rowsPayload(total int, rows ...string) string {
	type wireRow struct {
		RowIdx int             `json:"row_idx"`
		Row    json.RawMessage `json:"row"`
	}
	payload := struct {
		Rows         []wireRow `json:"rows"`
		NumRowsTotal int       `json:"num_rows_total"`
	}{NumRowsTotal: total}
	for i, r := range rows {
		payload.Rows = append(payload.Rows, wireRow{RowIdx: i, Row: json.RawMessage(r)})
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestClientRows(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rows", r.URL.Path)
		assert.Equal(t, "gsm8k", r.URL.Query().Get("dataset"))
		assert.Equal(t, "main", r.URL.Query().Get("config"))
		assert.Equal(t, "test", r.URL.Query().Get("split"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))

		fmt.Fprint(w, rowsPayload(2, `{"question": "Q1"}`, `{"question": "Q2"}`))
	}))
	defer ts.Close()

	client, err := NewClient(testConfig(ts.URL))
	require.NoError(t, err)

	ref := RowsRef{Dataset: "gsm8k", Config: "main", Split: "test"}
	page, err := client.Rows(context.Background(), ref, 0, 100)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Rows, 2)
	assert.JSONEq(t, `{"question": "Q1"}`, string(page.Rows[0]))
}

func TestClientRowsCachesPages(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, rowsPayload(1, `{"goal": "g"}`))
	}))
	defer ts.Close()

	client, err := NewClient(testConfig(ts.URL))
	require.NoError(t, err)

	ref := RowsRef{Dataset: "piqa", Split: "validation"}
	for i := 0; i < 3; i++ {
		_, err := client.Rows(context.Background(), ref, 0, 100)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), hits.Load())
}

func TestClientRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, rowsPayload(1, `{"goal": "g"}`))
	}))
	defer ts.Close()

	client, err := NewClient(testConfig(ts.URL))
	require.NoError(t, err)

	page, err := client.Rows(context.Background(), RowsRef{Dataset: "piqa", Split: "validation"}, 0, 100)
	require.NoError(t, err)
	assert.Len(t, page.Rows, 1)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "dataset not found"}`)
	}))
	defer ts.Close()

	client, err := NewClient(testConfig(ts.URL))
	require.NoError(t, err)

	_, err = client.Rows(context.Background(), RowsRef{Dataset: "nope", Split: "validation"}, 0, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset not found")
	assert.Equal(t, int32(1), hits.Load())
}

func TestRowsRefString(t *testing.T) {
	assert.Equal(t, "gsm8k/main:test", RowsRef{Dataset: "gsm8k", Config: "main", Split: "test"}.String())
	assert.Equal(t, "piqa:validation", RowsRef{Dataset: "piqa", Split: "validation"}.String())
}
