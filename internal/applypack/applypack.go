// Package applypack turns a discovery result into a submission-ready
// application packet: the top matches with everything a reviewer needs,
// plus a pre-submission checklist. Output is deterministic; no timestamps.
package applypack

import (
	"sort"

	"github.com/ColaberryIntern/JobFlow/internal/matching"
	"github.com/ColaberryIntern/JobFlow/internal/pipeline"
	"github.com/ColaberryIntern/JobFlow/internal/profile"
)

// DefaultTopN caps the applications included in a pack.
const DefaultTopN = 25

// Application is one ranked entry of the pack.
type Application struct {
	Rank            int      `json:"rank"`
	JobTitle        string   `json:"job_title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	ApplyURL        string   `json:"apply_url"`
	Source          string   `json:"source"`
	Score           float64  `json:"score"`
	Decision        string   `json:"decision"`
	Reasons         []string `json:"reasons"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	JobFingerprint  string   `json:"job_fingerprint"`
	// Notes is reserved for human annotation.
	Notes string `json:"notes"`
}

// Checklist carries autofill data for pre-submission review.
type Checklist struct {
	HasEmail          bool   `json:"has_email"`
	HasPhone          bool   `json:"has_phone"`
	HasResume         bool   `json:"has_resume"`
	WorkAuthorization string `json:"work_authorization"`
	SponsorshipNeeded *bool  `json:"sponsorship_needed"`
	NeedsManualReview bool   `json:"needs_manual_review"`
}

// Pack is the full application packet.
type Pack struct {
	Candidate    profile.Summary `json:"candidate"`
	TopN         int             `json:"top_n"`
	Applications []Application   `json:"applications"`
	Checklist    Checklist       `json:"checklist"`
}

// Build assembles a pack from a discovery result. Scored matches are used
// when present; otherwise it falls back to the unscored job list sorted by
// title. topN <= 0 selects DefaultTopN.
func Build(result *pipeline.Result, p *profile.Profile, topN int) *Pack {
	if topN <= 0 {
		topN = DefaultTopN
	}

	var applications []Application
	switch {
	case len(result.Matches) > 0:
		applications = fromMatches(result.Matches, topN)
	case len(result.Jobs) > 0:
		applications = fromJobs(result, topN)
	default:
		applications = []Application{}
	}

	needsReview := false
	for _, app := range applications {
		if app.Decision != string(matching.DecisionStrongFit) {
			needsReview = true
			break
		}
	}

	return &Pack{
		Candidate:    result.Candidate,
		TopN:         len(applications),
		Applications: applications,
		Checklist: Checklist{
			HasEmail:          result.Candidate.Email != "",
			HasPhone:          result.Candidate.Phone != "",
			HasResume:         p != nil && p.ResumePath != "",
			WorkAuthorization: workAuth(p),
			SponsorshipNeeded: sponsorship(p),
			NeedsManualReview: needsReview,
		},
	}
}

func fromMatches(matches []*matching.MatchResult, topN int) []Application {
	sorted := append([]*matching.MatchResult(nil), matches...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].OverallScore != sorted[j].OverallScore {
			return sorted[i].OverallScore > sorted[j].OverallScore
		}
		return sorted[i].JobTitle < sorted[j].JobTitle
	})

	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	applications := make([]Application, 0, len(sorted))
	for i, match := range sorted {
		applications = append(applications, Application{
			Rank:            i + 1,
			JobTitle:        match.JobTitle,
			Company:         match.JobCompany,
			Location:        match.JobLocation,
			ApplyURL:        match.JobURL,
			Source:          match.Source,
			Score:           match.OverallScore,
			Decision:        string(match.Decision),
			Reasons:         append([]string(nil), match.Reasons...),
			MatchedKeywords: append([]string(nil), match.MatchedKeywords...),
			MissingKeywords: append([]string(nil), match.MissingKeywords...),
			JobFingerprint:  match.JobFingerprint,
		})
	}

	return applications
}

// fromJobs is the unscored fallback: jobs sorted by title, zero scores.
func fromJobs(result *pipeline.Result, topN int) []Application {
	sorted := make([]int, 0, len(result.Jobs))
	for i := range result.Jobs {
		sorted = append(sorted, i)
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		return result.Jobs[sorted[a]].Title < result.Jobs[sorted[b]].Title
	})

	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	applications := make([]Application, 0, len(sorted))
	for i, idx := range sorted {
		job := result.Jobs[idx]
		applications = append(applications, Application{
			Rank:            i + 1,
			JobTitle:        job.Title,
			Company:         job.Company,
			Location:        job.Location,
			ApplyURL:        job.URL,
			Source:          job.SourceID,
			Reasons:         []string{},
			MatchedKeywords: []string{},
			MissingKeywords: []string{},
			JobFingerprint:  job.Fingerprint,
		})
	}

	return applications
}

func workAuth(p *profile.Profile) string {
	if p == nil {
		return ""
	}
	return p.WorkAuthorization
}

func sponsorship(p *profile.Profile) *bool {
	if p == nil {
		return nil
	}
	return p.SponsorshipNeeded
}
