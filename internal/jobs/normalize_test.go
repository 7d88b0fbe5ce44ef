package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAliasKeys(t *testing.T) {
	t.Parallel()

	record := Raw{
		"job_title":     "  Backend   Engineer ",
		"employer":      "Startup Inc",
		"job_location":  "Remote, US",
		"link":          "https://x.test/jobs/9",
		"summary":       "Build backend systems",
		"extra_ignored": 42,
	}

	posting, err := Normalize(record, "boards")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", posting.Title)
	assert.Equal(t, "Startup Inc", posting.Company)
	assert.Equal(t, "Remote, US", posting.Location)
	assert.Equal(t, "https://x.test/jobs/9", posting.URL)
	assert.Equal(t, "Build backend systems", posting.Description)
	assert.Equal(t, "boards", posting.SourceID)
	assert.NotEmpty(t, posting.Fingerprint)
}

func TestNormalizePreservesDisplayCasing(t *testing.T) {
	t.Parallel()

	posting, err := Normalize(Raw{"title": "Senior GO Engineer", "company": "ACME"}, "src")
	require.NoError(t, err)

	assert.Equal(t, "Senior GO Engineer", posting.Title)
	assert.Equal(t, "ACME", posting.Company)
}

func TestNormalizeRecordSourceWins(t *testing.T) {
	t.Parallel()

	posting, err := Normalize(Raw{"title": "Engineer", "source": "linkedin"}, "file")
	require.NoError(t, err)
	assert.Equal(t, "linkedin", posting.SourceID)

	posting, err = Normalize(Raw{"title": "Engineer"}, "file")
	require.NoError(t, err)
	assert.Equal(t, "file", posting.SourceID)
}

func TestNormalizeMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record Raw
	}{
		{name: "nil record", record: nil},
		{name: "no identity fields", record: Raw{"description": "something", "salary_min": 100.0}},
		{name: "only whitespace", record: Raw{"title": "   ", "company": "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Normalize(tt.record, "src")
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestNormalizeSeniority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record Raw
		want   string
	}{
		{name: "explicit field", record: Raw{"title": "Engineer", "seniority": "Mid"}, want: "mid"},
		{name: "inferred senior", record: Raw{"title": "Senior Backend Engineer", "company": "X"}, want: "senior"},
		{name: "inferred jr", record: Raw{"title": "Jr. Developer", "company": "X"}, want: "junior"},
		{name: "no signal", record: Raw{"title": "Backend Engineer", "company": "X"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			posting, err := Normalize(tt.record, "src")
			require.NoError(t, err)
			assert.Equal(t, tt.want, posting.Seniority)
		})
	}
}

func TestNormalizeRemote(t *testing.T) {
	t.Parallel()

	posting, err := Normalize(Raw{"title": "Engineer", "remote": true}, "src")
	require.NoError(t, err)
	require.NotNil(t, posting.Remote)
	assert.True(t, *posting.Remote)

	posting, err = Normalize(Raw{"title": "Engineer", "remote": false, "location": "Remote"}, "src")
	require.NoError(t, err)
	require.NotNil(t, posting.Remote)
	assert.False(t, *posting.Remote, "explicit remote flag wins over location inference")

	posting, err = Normalize(Raw{"title": "Engineer", "location": "Remote, US"}, "src")
	require.NoError(t, err)
	require.NotNil(t, posting.Remote)
	assert.True(t, *posting.Remote)

	posting, err = Normalize(Raw{"title": "Engineer", "location": "Berlin"}, "src")
	require.NoError(t, err)
	assert.Nil(t, posting.Remote, "no signal means unknown")
}
