package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSources(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "sources.yaml", `
sources:
  - id: local
    type: file
    path: ./jobs.json
  - id: api
    type: http
    url: https://api.test/jobs
  - id: feed
    type: rss
    url: https://jobs.test/feed.xml
  - id: listing
    type: html
    url: https://jobs.test/listing
    selectors:
      item: div.job
      title: h2
      link: a
`)

	sources, err := LoadSources(path)
	require.NoError(t, err)
	require.Len(t, sources, 4)

	assert.Equal(t, "local", sources[0].ID())
	assert.IsType(t, &FileSource{}, sources[0])
	assert.IsType(t, &HTTPSource{}, sources[1])
	assert.IsType(t, &RSSSource{}, sources[2])
	assert.IsType(t, &HTMLSource{}, sources[3])
}

func TestLoadSourcesBadSpec(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "sources.yaml", `
sources:
  - id: broken
    type: file
`)

	_, err := LoadSources(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestBuildSourceValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec SourceSpec
	}{
		{name: "missing id", spec: SourceSpec{Type: "file", Path: "x.json"}},
		{name: "file without path", spec: SourceSpec{ID: "a", Type: "file"}},
		{name: "http without url", spec: SourceSpec{ID: "a", Type: "http"}},
		{name: "rss without url", spec: SourceSpec{ID: "a", Type: "rss"}},
		{name: "html without selectors", spec: SourceSpec{ID: "a", Type: "html", URL: "https://x.test"}},
		{name: "unknown type", spec: SourceSpec{ID: "a", Type: "ftp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := BuildSource(tt.spec)
			assert.Error(t, err)
		})
	}
}
