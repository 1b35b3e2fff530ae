package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const searchPayload = `{
  "results": {
    "count": 57,
    "jobs": [
      {
        "title": "Platform Engineer",
        "slug": "platform-engineer",
        "has_description": true,
        "seniority": "senior",
        "created_at": 1755859200,
        "searchable_locations": ["Berlin", "Remote"],
        "organization": {
          "slug": "acme",
          "name": "Acme",
          "logo_url": "https://cdn.example/acme.png",
          "industryTags": ["fintech"],
          "headCount": 120,
          "stage": "series_b"
        }
      }
    ]
  }
}`

func TestSearchSendsExpectedRequest(t *testing.T) {
	t.Parallel()

	var (
		gotBody    map[string]any
		gotMethod  string
		gotHeaders http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeaders = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL}, zap.NewNop())
	_, err := c.Search(context.Background(), "Data Science", 4)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, float64(12), gotBody["hitsPerPage"])
	assert.Equal(t, float64(4), gotBody["page"])
	assert.Equal(t, "", gotBody["query"])

	filters, ok := gotBody["filters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Data Science"}, filters["job_functions"])
}

func TestSearchDecodesPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL}, zap.NewNop())
	page, err := c.Search(context.Background(), "IT", 0)
	require.NoError(t, err)

	assert.Equal(t, 57, page.Count)
	require.Len(t, page.Jobs, 1)

	job := page.Jobs[0]
	assert.Equal(t, "Platform Engineer", job.Title)
	assert.Equal(t, "platform-engineer", job.Slug)
	assert.True(t, job.HasDescription)
	assert.Equal(t, int64(1755859200), job.CreatedAt)
	assert.Equal(t, []string{"Berlin", "Remote"}, job.SearchableLocations)
	require.NotNil(t, job.Organization)
	assert.Equal(t, "acme", job.Organization.Slug)
	assert.Equal(t, 120, job.Organization.HeadCount)
	assert.Equal(t, []string{"fintech"}, job.Organization.IndustryTags)
}

func TestSearchNonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL}, zap.NewNop())
	_, err := c.Search(context.Background(), "IT", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
}

func TestSearchEmptyBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL}, zap.NewNop())
	_, err := c.Search(context.Background(), "IT", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty search response")
}

func TestSearchMalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": {`))
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL}, zap.NewNop())
	_, err := c.Search(context.Background(), "IT", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode search response")
}

func TestSearchMissingResultsPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": true}`))
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL}, zap.NewNop())
	page, err := c.Search(context.Background(), "IT", 0)
	require.NoError(t, err)

	// A well-formed body without the results path decodes to a zero page,
	// which the walker treats as the end of pagination.
	assert.Equal(t, 0, page.Count)
	assert.Empty(t, page.Jobs)
}

func TestSearchConfigDefaults(t *testing.T) {
	t.Parallel()

	c := New(Config{Endpoint: "https://example.invalid"}, zap.NewNop())
	assert.Equal(t, 12, c.cfg.HitsPerPage)
	assert.Positive(t, c.cfg.Timeout)
}
