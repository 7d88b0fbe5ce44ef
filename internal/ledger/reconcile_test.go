package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColaberryIntern/JobFlow/internal/matching"
)

func matchFor(fingerprint, title string, score float64) *matching.MatchResult {
	return &matching.MatchResult{
		JobFingerprint:  fingerprint,
		OverallScore:    score,
		Decision:        matching.DecisionFor(score),
		JobTitle:        title,
		JobCompany:      "Acme Inc",
		JobLocation:     "Berlin",
		JobURL:          "https://jobs.acme.test/" + fingerprint,
		Source:          "boards",
		MatchedKeywords: []string{"go"},
		MissingKeywords: []string{"rust"},
	}
}

func TestReconcileFreshQueue(t *testing.T) {
	t.Parallel()

	matches := []*matching.MatchResult{
		matchFor("fp-a", "Engineer", 85),
		matchFor("fp-b", "Analyst", 62),
	}

	entries := Reconcile(nil, matches)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "fp-a", entries[0].Fingerprint)
	assert.Equal(t, 85.0, entries[0].Score)
	assert.Equal(t, "strong_fit", entries[0].Decision)
	assert.Equal(t, DefaultStatus, entries[0].Status)
	assert.Empty(t, entries[0].Notes)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "possible_fit", entries[1].Decision)
}

func TestReconcilePreservesUserFields(t *testing.T) {
	t.Parallel()

	previous := []QueueEntry{
		{
			Fingerprint: "fp-a",
			Rank:        1,
			Score:       70,
			Status:      "interview",
			Notes:       "phone screen done",
		},
	}

	entries := Reconcile(previous, []*matching.MatchResult{matchFor("fp-a", "Engineer", 91)})
	require.Len(t, entries, 1)

	assert.Equal(t, "interview", entries[0].Status)
	assert.Equal(t, "phone screen done", entries[0].Notes)
	// Everything else comes from the fresh result.
	assert.Equal(t, 91.0, entries[0].Score)
	assert.Equal(t, "strong_fit", entries[0].Decision)
	assert.Equal(t, "Acme Inc", entries[0].Company)
}

func TestReconcileRetainsAbsentEntries(t *testing.T) {
	t.Parallel()

	previous := []QueueEntry{
		{Fingerprint: "fp-a", Rank: 1, Score: 88, JobTitle: "Old Engineer", Status: "applied", Notes: "sent CV"},
		{Fingerprint: "fp-b", Rank: 2, Score: 65, JobTitle: "Old Analyst", Status: "queued"},
	}
	matches := []*matching.MatchResult{
		matchFor("fp-b", "Analyst", 72),
		matchFor("fp-c", "Designer", 55),
	}

	entries := Reconcile(previous, matches)
	require.Len(t, entries, 3)

	// New-run matches first, in rank order.
	assert.Equal(t, "fp-b", entries[0].Fingerprint)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 72.0, entries[0].Score)

	assert.Equal(t, "fp-c", entries[1].Fingerprint)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, DefaultStatus, entries[1].Status)

	// fp-a vanished from the new run but is kept untouched.
	assert.Equal(t, "fp-a", entries[2].Fingerprint)
	assert.Equal(t, "Old Engineer", entries[2].JobTitle)
	assert.Equal(t, "applied", entries[2].Status)
	assert.Equal(t, "sent CV", entries[2].Notes)
	assert.Equal(t, 88.0, entries[2].Score)
}

func TestReconcileIdempotent(t *testing.T) {
	t.Parallel()

	previous := []QueueEntry{
		{Fingerprint: "fp-a", Rank: 3, Score: 50, Status: "rejected", Notes: "not a fit"},
	}
	matches := []*matching.MatchResult{
		matchFor("fp-a", "Engineer", 81),
		matchFor("fp-b", "Analyst", 44),
	}

	once := Reconcile(previous, matches)
	twice := Reconcile(once, matches)

	assert.Equal(t, once, twice)
}
