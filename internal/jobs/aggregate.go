package jobs

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrMalformedRecord marks a raw record that cannot be normalized. It is
// skipped and counted, never fatal.
var ErrMalformedRecord = errors.New("malformed job record")

// Source is anything that can deliver raw job records. Concrete
// implementations live in the source_*.go files.
type Source interface {
	ID() string
	Fetch(ctx context.Context) ([]Raw, error)
}

// SourceError attributes a fetch or per-record failure to the source it
// came from. Aggregation collects these instead of aborting.
type SourceError struct {
	Source string `json:"source"`
	Err    error  `json:"-"`
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Message is the serializable form of the underlying error.
func (e *SourceError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Aggregate fetches from every source in order, normalizes and deduplicates
// by fingerprint. The first posting seen for a fingerprint wins; output
// order is order of first encounter. A failing source contributes zero
// postings and one SourceError, other sources still contribute.
func Aggregate(ctx context.Context, sources []Source, logger *zap.Logger) (*Postings, []*SourceError) {
	if logger == nil {
		logger = zap.NewNop()
	}

	postings := &Postings{}
	seen := make(map[string]struct{})
	var errs []*SourceError

	for _, source := range sources {
		records, err := source.Fetch(ctx)
		if err != nil {
			logger.Warn("source fetch failed",
				zap.String("source", source.ID()),
				zap.Error(err),
			)
			errs = append(errs, &SourceError{Source: source.ID(), Err: fmt.Errorf("fetch: %w", err)})
			continue
		}

		fetched := 0
		for _, record := range records {
			posting, err := Normalize(record, source.ID())
			if err != nil {
				errs = append(errs, &SourceError{Source: source.ID(), Err: err})
				continue
			}

			if _, dup := seen[posting.Fingerprint]; dup {
				continue
			}
			seen[posting.Fingerprint] = struct{}{}
			postings.Items = append(postings.Items, posting)
			fetched++
		}

		logger.Debug("source aggregated",
			zap.String("source", source.ID()),
			zap.Int("records", len(records)),
			zap.Int("unique", fetched),
		)
	}

	logger.Info("aggregation finished",
		zap.Int("sources", len(sources)),
		zap.Int("jobs", postings.Len()),
		zap.Int("errors", len(errs)),
	)

	return postings, errs
}
