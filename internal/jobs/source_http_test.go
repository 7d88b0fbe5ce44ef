package jobs

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(`{"items": [{"title": "Engineer", "company": "Corp"}]}`))
	}))
	defer server.Close()

	source := NewHTTPSource("api", server.URL, "s3cret")

	records, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Engineer", records[0]["title"])
}

func TestHTTPSourceGzip(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(`[{"title": "Engineer"}]`))
		_ = gz.Close()
	}))
	defer server.Close()

	source := NewHTTPSource("api", server.URL, "")
	// The default transport would transparently decompress and strip the
	// header; disable that to exercise the explicit gzip path.
	source.HTTPClient.Transport = &http.Transport{DisableCompression: true}

	records, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Engineer", records[0]["title"])
}

func TestHTTPSourceBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewHTTPSource("api", server.URL, "").Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
}

func TestDecodeRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want int
	}{
		{name: "bare array", data: `[{"title": "A"}, {"title": "B"}]`, want: 2},
		{name: "items wrapper", data: `{"items": [{"title": "A"}]}`, want: 1},
		{name: "jobs wrapper", data: `{"jobs": [{"title": "A"}]}`, want: 1},
		{name: "empty array", data: `[]`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			records, err := decodeRecords([]byte(tt.data))
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}

	_, err := decodeRecords([]byte(`"just a string"`))
	assert.Error(t, err)
}
