// Package ledger owns the persistent per-candidate application queue: the
// merge of fresh match results into previously persisted entries and the
// CSV file the user edits between runs.
package ledger

// DefaultStatus is assigned to entries on their first appearance.
const DefaultStatus = "queued"

// QueueEntry is one row of the application-tracking ledger, keyed by job
// fingerprint. Status and Notes belong to the user: reconciliation copies
// them verbatim and recomputes everything else.
type QueueEntry struct {
	Fingerprint     string
	Rank            int
	Score           float64
	Decision        string
	Company         string
	JobTitle        string
	Location        string
	ApplyURL        string
	Source          string
	Status          string
	Notes           string
	MatchedKeywords []string
	MissingKeywords []string
}
