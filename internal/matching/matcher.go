package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/ColaberryIntern/JobFlow/internal/jobs"
)

// Fixed dimension weights.
const (
	weightSkills    = 0.45
	weightTitle     = 0.25
	weightLocation  = 0.15
	weightSeniority = 0.15
)

// reasonThreshold is the dimension score at or above which a reason line is
// emitted. Low-scoring dimensions stay silent.
const reasonThreshold = 70.0

// topMatchedKeywords caps the matched-keywords reason line.
const topMatchedKeywords = 5

// DefaultAdjacency is the built-in seniority adjacency chain. Pairs listed
// here score 50 instead of 0 on a seniority mismatch. The table is
// symmetric; callers may replace it via NewMatcher.
var DefaultAdjacency = map[string][]string{
	"entry":     {"junior"},
	"junior":    {"entry", "mid"},
	"mid":       {"junior", "senior"},
	"senior":    {"mid", "staff", "lead"},
	"staff":     {"senior", "principal"},
	"lead":      {"senior", "principal"},
	"principal": {"staff", "lead", "director"},
	"director":  {"principal"},
}

// Matcher scores a job posting against a candidate query. It is stateless
// and safe to share; Score is a pure function of its inputs and the
// adjacency table.
type Matcher struct {
	adjacency map[string][]string
}

// NewMatcher builds a matcher with the given seniority adjacency table,
// falling back to DefaultAdjacency when nil.
func NewMatcher(adjacency map[string][]string) *Matcher {
	if adjacency == nil {
		adjacency = DefaultAdjacency
	}
	return &Matcher{adjacency: adjacency}
}

// Score computes the four dimension scores, the weighted overall score and
// the decision for one (query, job) pair. Identical inputs always produce
// an identical result. A returned error is a scoring-logic defect and must
// be treated as fatal.
func (m *Matcher) Score(query *CandidateQuery, job *jobs.Posting, candidateID string) (*MatchResult, error) {
	skills, matched, missing := m.scoreSkills(query, job)
	title := m.scoreTitle(query, job)
	location := m.scoreLocation(query, job)
	seniority := m.scoreSeniority(query, job)

	overall := round1(weightSkills*skills +
		weightTitle*title +
		weightLocation*location +
		weightSeniority*seniority)
	overall = clamp(overall, 0, 100)

	result := MatchResult{
		CandidateID:    candidateID,
		JobFingerprint: job.Fingerprint,
		OverallScore:   overall,
		Decision:       DecisionFor(overall),
		DimensionScores: map[string]float64{
			DimensionSkills:    skills,
			DimensionTitle:     title,
			DimensionLocation:  location,
			DimensionSeniority: seniority,
		},
		MatchedKeywords: matched,
		MissingKeywords: missing,
		JobTitle:        job.Title,
		JobCompany:      job.Company,
		JobLocation:     job.Location,
		JobURL:          job.URL,
		Source:          job.SourceID,
	}
	result.Reasons = buildReasons(&result)

	return NewMatchResult(result)
}

// scoreSkills measures keyword coverage of the job text. Matched keywords
// keep their query order; a multi-token keyword matches only when all of
// its tokens appear.
func (m *Matcher) scoreSkills(query *CandidateQuery, job *jobs.Posting) (score float64, matched, missing []string) {
	jobTokens := tokenSet(job.Title + " " + job.Description)

	matched = []string{}
	missing = []string{}
	for _, keyword := range query.Keywords {
		if containsAll(jobTokens, tokenize(keyword)) {
			matched = append(matched, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}

	denom := len(query.Keywords)
	if denom < 1 {
		denom = 1
	}

	score = round1(100 * float64(len(matched)) / float64(denom))
	return clamp(score, 0, 100), matched, missing
}

// scoreTitle takes the best similarity between the job title and any of the
// candidate's preferred titles. Exact case-insensitive match is 100, no
// shared tokens is 0, partial overlap scales by the token overlap ratio.
func (m *Matcher) scoreTitle(query *CandidateQuery, job *jobs.Posting) float64 {
	jobNorm := strings.Join(tokenize(job.Title), " ")
	jobTokens := tokenSet(job.Title)

	best := 0.0
	for _, title := range query.Titles {
		if strings.Join(tokenize(title), " ") == jobNorm && jobNorm != "" {
			best = 1
			break
		}
		if sim := jaccard(tokenSet(title), jobTokens); sim > best {
			best = sim
		}
	}

	return round1(best * 100)
}

// scoreLocation is all-or-nothing: remote agreement or any location entry
// matching the job location (substring, case-insensitive) scores 100.
func (m *Matcher) scoreLocation(query *CandidateQuery, job *jobs.Posting) float64 {
	if query.RemoteOK && job.IsRemote() {
		return 100
	}

	jobLoc := strings.ToLower(strings.TrimSpace(job.Location))
	if jobLoc == "" {
		return 0
	}

	for _, location := range query.Locations {
		loc := strings.ToLower(strings.TrimSpace(location))
		if loc == "" {
			continue
		}
		if strings.Contains(jobLoc, loc) || strings.Contains(loc, jobLoc) {
			return 100
		}
	}

	return 0
}

// scoreSeniority is neutral when either side is unspecified, full on exact
// match, half credit for adjacent levels, zero otherwise.
func (m *Matcher) scoreSeniority(query *CandidateQuery, job *jobs.Posting) float64 {
	want := strings.ToLower(strings.TrimSpace(query.Seniority))
	have := strings.ToLower(strings.TrimSpace(job.Seniority))

	if want == "" || have == "" {
		return 100
	}
	if want == have {
		return 100
	}
	for _, adjacent := range m.adjacency[want] {
		if adjacent == have {
			return 50
		}
	}
	return 0
}

// buildReasons emits one line per dimension scoring at or above the reason
// threshold, plus a line with the top matched keywords. Silence, not a
// negative statement, for low dimensions.
func buildReasons(r *MatchResult) []string {
	reasons := []string{}

	if s := r.DimensionScores[DimensionSkills]; s >= reasonThreshold {
		reasons = append(reasons, fmt.Sprintf("Strong skills overlap: %.0f%%", s))
	}
	if s := r.DimensionScores[DimensionTitle]; s >= reasonThreshold {
		reasons = append(reasons, fmt.Sprintf("Close title match: %.0f%%", s))
	}
	if s := r.DimensionScores[DimensionLocation]; s >= reasonThreshold {
		reasons = append(reasons, "Location works for this candidate")
	}
	if s := r.DimensionScores[DimensionSeniority]; s >= reasonThreshold {
		reasons = append(reasons, "Seniority level aligns")
	}

	if len(r.MatchedKeywords) > 0 {
		top := r.MatchedKeywords
		if len(top) > topMatchedKeywords {
			top = top[:topMatchedKeywords]
		}
		reasons = append(reasons, fmt.Sprintf("Matched keywords: %s", strings.Join(top, ", ")))
	}

	return reasons
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
