package ledger

import "github.com/ColaberryIntern/JobFlow/internal/matching"

// Reconcile merges a fresh ranked match list into the previous queue.
//
// New-run matches come first in rank order; an existing entry for the same
// fingerprint contributes only its Status and Notes, everything else is
// recomputed from the fresh result. Previous entries whose fingerprint is
// absent from the new run are appended unchanged, in their prior relative
// order — the ledger never forgets a job it has tracked. Running Reconcile
// again with the same matches against its own output is a no-op.
func Reconcile(previous []QueueEntry, matches []*matching.MatchResult) []QueueEntry {
	prior := make(map[string]*QueueEntry, len(previous))
	for i := range previous {
		prior[previous[i].Fingerprint] = &previous[i]
	}

	result := make([]QueueEntry, 0, len(matches)+len(previous))
	seen := make(map[string]struct{}, len(matches))

	for rank, match := range matches {
		entry := entryFromMatch(match, rank+1)
		if old, ok := prior[match.JobFingerprint]; ok {
			entry.Status = old.Status
			entry.Notes = old.Notes
		}
		result = append(result, entry)
		seen[match.JobFingerprint] = struct{}{}
	}

	for _, old := range previous {
		if _, ok := seen[old.Fingerprint]; ok {
			continue
		}
		result = append(result, old)
	}

	return result
}

func entryFromMatch(match *matching.MatchResult, rank int) QueueEntry {
	return QueueEntry{
		Fingerprint:     match.JobFingerprint,
		Rank:            rank,
		Score:           match.OverallScore,
		Decision:        string(match.Decision),
		Company:         match.JobCompany,
		JobTitle:        match.JobTitle,
		Location:        match.JobLocation,
		ApplyURL:        match.JobURL,
		Source:          match.Source,
		Status:          DefaultStatus,
		Notes:           "",
		MatchedKeywords: append([]string(nil), match.MatchedKeywords...),
		MissingKeywords: append([]string(nil), match.MissingKeywords...),
	}
}
