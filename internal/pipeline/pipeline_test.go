package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColaberryIntern/JobFlow/internal/jobs"
	"github.com/ColaberryIntern/JobFlow/internal/matching"
	"github.com/ColaberryIntern/JobFlow/internal/profile"
)

type memSource struct {
	id      string
	records []jobs.Raw
	err     error
}

func (s *memSource) ID() string { return s.id }

func (s *memSource) Fetch(_ context.Context) ([]jobs.Raw, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		Name:             "Jordan Reyes",
		Email:            "jordan@example.test",
		DesiredTitle:     "Backend Engineer",
		Skills:           []string{"go", "docker"},
		DesiredLocations: []string{"Berlin"},
	}
}

func testSources() []jobs.Source {
	return []jobs.Source{
		&memSource{id: "boards", records: []jobs.Raw{
			{
				"title":       "Backend Engineer",
				"company":     "Acme Inc",
				"location":    "Berlin",
				"url":         "https://jobs.acme.test/1",
				"description": "go and docker all day",
			},
			{
				"title":       "Data Analyst",
				"company":     "Beta LLC",
				"location":    "Lisbon",
				"url":         "https://jobs.beta.test/7",
				"description": "excel dashboards",
			},
		}},
		&memSource{id: "mirror", records: []jobs.Raw{
			// Duplicate of the Acme job with different casing.
			{
				"title":    "BACKEND ENGINEER",
				"company":  "acme inc",
				"location": "berlin",
				"url":      "https://jobs.acme.test/1",
			},
		}},
		&memSource{id: "broken", err: errors.New("connection refused")},
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	result, err := Run(context.Background(), testProfile(), testSources(), "cand-1", Options{MatchJobs: true}, nil)
	require.NoError(t, err)

	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "Jordan Reyes", result.Candidate.Name)

	assert.Len(t, result.Jobs, 2, "duplicate collapsed")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "broken", result.Errors[0].Source)

	require.Len(t, result.Matches, 2)
	// Ranked by score descending: the Acme job matches everything.
	assert.Equal(t, "Backend Engineer", result.Matches[0].JobTitle)
	assert.Equal(t, 100.0, result.Matches[0].OverallScore)
	assert.Equal(t, matching.DecisionStrongFit, result.Matches[0].Decision)
	assert.Greater(t, result.Matches[0].OverallScore, result.Matches[1].OverallScore)

	assert.Equal(t, Counts{Jobs: 2, Errors: 1, Matches: 2}, result.Counts)
}

func TestRunSkipMatch(t *testing.T) {
	t.Parallel()

	result, err := Run(context.Background(), testProfile(), testSources(), "cand-1", Options{}, nil)
	require.NoError(t, err)

	assert.Len(t, result.Jobs, 2)
	assert.NotNil(t, result.Matches)
	assert.Empty(t, result.Matches)
	assert.Equal(t, 0, result.Counts.Matches)
}

func TestRunDeterministic(t *testing.T) {
	t.Parallel()

	opts := Options{MatchJobs: true}

	first, err := Run(context.Background(), testProfile(), testSources(), "cand-1", opts, nil)
	require.NoError(t, err)
	second, err := Run(context.Background(), testProfile(), testSources(), "cand-1", opts, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunNoSources(t *testing.T) {
	t.Parallel()

	result, err := Run(context.Background(), testProfile(), nil, "cand-1", Options{MatchJobs: true}, nil)
	require.NoError(t, err)

	assert.Equal(t, "ok", result.Status)
	assert.NotNil(t, result.Jobs)
	assert.Empty(t, result.Jobs)
	assert.Equal(t, Counts{}, result.Counts)
}

func TestRankTieBreaksOnTitle(t *testing.T) {
	t.Parallel()

	sources := []jobs.Source{
		&memSource{id: "boards", records: []jobs.Raw{
			{"title": "Zeta Analyst", "company": "X", "location": "Lisbon", "url": "https://x.test/z"},
			{"title": "Alpha Analyst", "company": "X", "location": "Lisbon", "url": "https://x.test/a"},
		}},
	}

	result, err := Run(context.Background(), testProfile(), sources, "cand-1", Options{MatchJobs: true}, nil)
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)

	assert.Equal(t, result.Matches[0].OverallScore, result.Matches[1].OverallScore)
	assert.Equal(t, "Alpha Analyst", result.Matches[0].JobTitle)
	assert.Equal(t, "Zeta Analyst", result.Matches[1].JobTitle)
}

func TestRunCustomMatcher(t *testing.T) {
	t.Parallel()

	p := testProfile()
	p.Seniority = "senior"

	sources := []jobs.Source{
		&memSource{id: "boards", records: []jobs.Raw{
			{"title": "Principal Engineer", "company": "X", "location": "Berlin", "seniority": "principal", "url": "https://x.test/1"},
		}},
	}

	strict, err := Run(context.Background(), p, sources, "cand-1", Options{MatchJobs: true}, nil)
	require.NoError(t, err)

	lenient, err := Run(context.Background(), p, sources, "cand-1", Options{
		MatchJobs: true,
		Matcher:   matching.NewMatcher(map[string][]string{"senior": {"principal"}}),
	}, nil)
	require.NoError(t, err)

	require.Len(t, strict.Matches, 1)
	require.Len(t, lenient.Matches, 1)
	assert.Equal(t, 0.0, strict.Matches[0].DimensionScores["seniority"])
	assert.Equal(t, 50.0, lenient.Matches[0].DimensionScores["seniority"])
}
