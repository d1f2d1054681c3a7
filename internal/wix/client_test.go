package wix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryDiveLogs(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/items/query", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "site-1", r.Header.Get("wix-site-id"))

		var q queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		assert.Equal(t, "DiveLogs", q.DataCollectionID)
		assert.Equal(t, "u1", q.Query.Filter["userId"])
		assert.Equal(t, 5, q.Query.Paging.Limit)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"dataItems": [
				{"id": "a", "data": {"userId": "u1", "discipline": "CWT", "targetDepth": 40, "reachedDepth": 38, "notes": "clean"}},
				{"id": "b", "data": {"userId": "u1", "discipline": "FIM", "targetDepth": 35, "reachedDepth": 35, "squeeze": true}}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "site-1")
	c.baseURL = srv.URL

	dives, err := c.QueryDiveLogs(context.Background(), "u1", 5)
	require.NoError(t, err)
	require.Len(t, dives, 2)
	assert.Equal(t, "CWT", dives[0].Discipline)
	assert.Equal(t, 38.0, dives[0].ReachedDepth)
	assert.True(t, dives[1].Squeeze)
}

func TestQueryDiveLogs_ErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad-key", "site-1")
	c.baseURL = srv.URL

	_, err := c.QueryDiveLogs(context.Background(), "u1", 5)
	assert.ErrorContains(t, err, "unexpected status")
}
