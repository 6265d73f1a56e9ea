package elasticsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-events/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

// fakeES answers like a single-node cluster; the product header is required by the client.
func fakeES(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*EventIndex, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/" {
			_, _ = w.Write([]byte(`{"version":{"number":"8.19.0"},"tagline":"You Know, for Search"}`))
			return
		}
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()
		handle(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := es.NewClient(es.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewEventIndex(client, "events"), &reqs
}

func TestIndexEvent(t *testing.T) {
	idx, reqs := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	err := idx.IndexEvent(context.Background(), &entity.Event{ID: "e1", Name: "Hackathon", Date: "2026-11-02", UpdatedAt: time.Now()})
	require.NoError(t, err)

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/events/_doc/e1", got.path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.body), &doc))
	assert.Equal(t, "Hackathon", doc["name"])
}

func TestRemoveEventIgnoresMissing(t *testing.T) {
	idx, _ := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	assert.NoError(t, idx.RemoveEvent(context.Background(), "gone"))
}

func TestSearchEvents(t *testing.T) {
	idx, reqs := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"e2"},{"_id":"e1"}]}}`))
	})

	ids, err := idx.SearchEvents(context.Background(), "robot", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"e2", "e1"}, ids)
	assert.True(t, strings.HasSuffix((*reqs)[0].path, "/events/_search"))
	assert.Contains(t, (*reqs)[0].body, `"multi_match"`)
}

func TestSearchEventsMissingIndex(t *testing.T) {
	idx, _ := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"}}`))
	})

	ids, err := idx.SearchEvents(context.Background(), "robot", 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
