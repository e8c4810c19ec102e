package runner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogscraper/internal/config"
	"catalogscraper/internal/crawler"
	"catalogscraper/internal/store"
)

// catalogHandler serves a two-product list and per-permalink detail records,
// with selectable failures.
type catalogHandler struct {
	requests   atomic.Int64
	detailFail map[string]int // permalink -> status code
}

func (h *catalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.requests.Add(1)

	if r.URL.Path == "/api/v1/catalogue/products" {
		if r.URL.Query().Get("page") == "0" {
			fmt.Fprint(w, `{"data":{"products":[
				{"id":1,"title":"Sofa","permalink":"sofa","available":true,"lineOfProduct":"RENT"},
				{"id":2,"title":"Bed","permalink":"bed","available":true,"lineOfProduct":"RENT"}
			]}}`)
		} else {
			fmt.Fprint(w, `{"data":{"products":[]}}`)
		}
		return
	}

	permalink := strings.TrimPrefix(r.URL.Path, "/api/v1/catalogue/products/")
	if code, ok := h.detailFail[permalink]; ok {
		w.WriteHeader(code)
		return
	}

	id := map[string]int{"sofa": 1, "bed": 2}[permalink]
	fmt.Fprintf(w, `{"data":{"id":%d,"description":"desc of %s"}}`, id, permalink)
}

func newTestRunner(t *testing.T, serverURL string) (*Runner, *store.DailyStore) {
	t.Helper()

	s, err := store.NewDailyStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		BaseURL:      serverURL,
		RequestDelay: time.Millisecond,
	}
	return &Runner{Client: crawler.NewClient(cfg), Store: s}, s
}

func TestRunCycle_PersistsAllProducts(t *testing.T) {
	h := &catalogHandler{}
	server := httptest.NewServer(h)
	defer server.Close()

	r, s := newTestRunner(t, server.URL)

	require.NoError(t, r.RunCycle(context.Background()))

	f, err := s.Open(time.Now())
	require.NoError(t, err)
	require.Len(t, f, 2)
	assert.Equal(t, "desc of sofa", f["1"].Description)
	assert.Equal(t, "desc of bed", f["2"].Description)
}

func TestRunCycle_SkipsFailedItem(t *testing.T) {
	h := &catalogHandler{detailFail: map[string]int{"bed": http.StatusInternalServerError}}
	server := httptest.NewServer(h)
	defer server.Close()

	r, s := newTestRunner(t, server.URL)

	// One bad product must not abort the cycle.
	require.NoError(t, r.RunCycle(context.Background()))

	f, err := s.Open(time.Now())
	require.NoError(t, err)
	require.Len(t, f, 1)
	assert.Contains(t, f, "1")
}

func TestRunCycle_ListFailureAbortsCycle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	r, s := newTestRunner(t, server.URL)

	err := r.RunCycle(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, crawler.ErrTransport)

	f, err := s.Open(time.Now())
	require.NoError(t, err)
	assert.Empty(t, f)
}

func TestRunCycle_CorruptDailyFileSuppressesDay(t *testing.T) {
	h := &catalogHandler{}
	server := httptest.NewServer(h)
	defer server.Close()

	r, s := newTestRunner(t, server.URL)

	require.NoError(t, os.WriteFile(s.Path(time.Now()), []byte("{broken"), 0o644))

	err := r.RunCycle(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrCorruptStore)

	// The next cycle for the same day is skipped entirely; nothing is fetched
	// and the corrupt file is left as-is for manual repair.
	before := h.requests.Load()
	require.NoError(t, r.RunCycle(context.Background()))
	assert.Equal(t, before, h.requests.Load())

	data, err := os.ReadFile(s.Path(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))
}

func TestRunCycle_SecondCycleOverwritesInPlace(t *testing.T) {
	h := &catalogHandler{}
	server := httptest.NewServer(h)
	defer server.Close()

	r, s := newTestRunner(t, server.URL)

	require.NoError(t, r.RunCycle(context.Background()))
	require.NoError(t, r.RunCycle(context.Background()))

	// Same identifiers observed twice: last write wins, no duplicates.
	f, err := s.Open(time.Now())
	require.NoError(t, err)
	assert.Len(t, f, 2)
}

func TestRunCycle_CancelledBetweenItems(t *testing.T) {
	h := &catalogHandler{}
	server := httptest.NewServer(h)
	defer server.Close()

	r, _ := newTestRunner(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.RunCycle(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
