// Package pipeline orchestrates one candidate's discovery run: aggregate
// postings from all sources, score each against the candidate query and
// rank the results. It performs no I/O beyond what the sources do; reading
// profiles and persisting queues belong to the callers in cmd and batch.
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ColaberryIntern/JobFlow/internal/jobs"
	"github.com/ColaberryIntern/JobFlow/internal/matching"
	"github.com/ColaberryIntern/JobFlow/internal/profile"
)

// Counts summarizes a run for reporting.
type Counts struct {
	Jobs    int `json:"jobs"`
	Errors  int `json:"errors"`
	Matches int `json:"matches"`
}

// RunError is the serializable form of a per-source failure.
type RunError struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// Result is the full outcome of a discovery run, consumed by the export
// and reporting layers.
type Result struct {
	Status    string                   `json:"status"`
	Candidate profile.Summary          `json:"candidate"`
	Query     *matching.CandidateQuery `json:"query"`
	Jobs      []*jobs.Posting          `json:"jobs"`
	Matches   []*matching.MatchResult  `json:"matches"`
	Errors    []RunError               `json:"errors"`
	Counts    Counts                   `json:"counts"`
}

// Options tunes a run.
type Options struct {
	// MatchJobs disables scoring when false; the result then carries
	// aggregated jobs only.
	MatchJobs bool
	// Matcher overrides the default matcher (custom adjacency table).
	Matcher *matching.Matcher
}

// Run executes the discovery pipeline for one candidate. Aggregation
// completes before matching starts; matching completes before the caller
// may reconcile. Per-source failures are collected in the result; only a
// scoring-logic defect aborts the run.
func Run(ctx context.Context, p *profile.Profile, sources []jobs.Source, candidateID string, opts Options, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	query := profile.BuildQuery(p)

	postings, srcErrs := jobs.Aggregate(ctx, sources, logger)

	result := &Result{
		Status:    "ok",
		Candidate: p.Summary(),
		Query:     query,
		Jobs:      postings.Items,
		Matches:   []*matching.MatchResult{},
		Errors:    make([]RunError, 0, len(srcErrs)),
	}
	if result.Jobs == nil {
		result.Jobs = []*jobs.Posting{}
	}
	for _, srcErr := range srcErrs {
		result.Errors = append(result.Errors, RunError{Source: srcErr.Source, Error: srcErr.Message()})
	}

	if opts.MatchJobs {
		matcher := opts.Matcher
		if matcher == nil {
			matcher = matching.NewMatcher(nil)
		}

		for _, posting := range postings.Items {
			match, err := matcher.Score(query, posting, candidateID)
			if err != nil {
				// A validation failure means the scoring logic itself is
				// broken; nothing downstream may trust this run.
				return nil, fmt.Errorf("scoring %s: %w", posting.Fingerprint, err)
			}
			result.Matches = append(result.Matches, match)
		}

		rank(result.Matches)
	}

	result.Counts = Counts{
		Jobs:    len(result.Jobs),
		Errors:  len(result.Errors),
		Matches: len(result.Matches),
	}

	logger.Info("discovery run finished",
		zap.String("candidate", candidateID),
		zap.Int("jobs", result.Counts.Jobs),
		zap.Int("matches", result.Counts.Matches),
		zap.Int("errors", result.Counts.Errors),
	)

	return result, nil
}

// rank orders matches by score descending with deterministic tie-breaking
// on job title, then fingerprint.
func rank(matches []*matching.MatchResult) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].OverallScore != matches[j].OverallScore {
			return matches[i].OverallScore > matches[j].OverallScore
		}
		if matches[i].JobTitle != matches[j].JobTitle {
			return matches[i].JobTitle < matches[j].JobTitle
		}
		return matches[i].JobFingerprint < matches[j].JobFingerprint
	})
}
