package matching

import "fmt"

// Decision is the categorical fit label derived from the overall score.
type Decision string

const (
	DecisionStrongFit   Decision = "strong_fit"
	DecisionPossibleFit Decision = "possible_fit"
	DecisionWeakFit     Decision = "weak_fit"
	DecisionReject      Decision = "reject"
)

// Threshold table. DecisionFor is the single authority; a MatchResult whose
// decision disagrees with it cannot be constructed.
const (
	strongFitThreshold   = 80.0
	possibleFitThreshold = 60.0
	weakFitThreshold     = 40.0
)

// The four dimension names used in DimensionScores.
const (
	DimensionSkills    = "skills"
	DimensionTitle     = "title"
	DimensionLocation  = "location"
	DimensionSeniority = "seniority"
)

// DecisionFor maps an overall score to its decision.
func DecisionFor(score float64) Decision {
	switch {
	case score >= strongFitThreshold:
		return DecisionStrongFit
	case score >= possibleFitThreshold:
		return DecisionPossibleFit
	case score >= weakFitThreshold:
		return DecisionWeakFit
	default:
		return DecisionReject
	}
}

// ParseDecision converts a raw string to a Decision, rejecting unknown values.
func ParseDecision(s string) (Decision, error) {
	d := Decision(s)
	switch d {
	case DecisionStrongFit, DecisionPossibleFit, DecisionWeakFit, DecisionReject:
		return d, nil
	}
	return "", fmt.Errorf("unknown decision %q", s)
}

// ValidationError reports a scoring-logic defect: a result that violates
// score bounds or disagrees with the threshold table. It is fatal by policy.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid match result: %s", e.Reason)
}

// MatchResult is the scored outcome of one (candidate, job) pair. Immutable
// once constructed; NewMatchResult refuses to build an invalid instance.
type MatchResult struct {
	CandidateID     string             `json:"candidate_id"`
	JobFingerprint  string             `json:"job_fingerprint"`
	OverallScore    float64            `json:"overall_score"`
	Decision        Decision           `json:"decision"`
	DimensionScores map[string]float64 `json:"dimension_scores"`
	Reasons         []string           `json:"reasons"`
	MatchedKeywords []string           `json:"matched_keywords"`
	MissingKeywords []string           `json:"missing_keywords"`

	// Denormalized job fields for downstream presentation.
	JobTitle    string `json:"job_title"`
	JobCompany  string `json:"job_company"`
	JobLocation string `json:"job_location"`
	JobURL      string `json:"job_url"`
	Source      string `json:"source"`
}

// NewMatchResult validates score bounds and decision consistency before the
// result is allowed to exist.
func NewMatchResult(r MatchResult) (*MatchResult, error) {
	if r.OverallScore < 0 || r.OverallScore > 100 {
		return nil, &ValidationError{Reason: fmt.Sprintf("overall score %v out of [0,100]", r.OverallScore)}
	}

	for name, score := range r.DimensionScores {
		if score < 0 || score > 100 {
			return nil, &ValidationError{Reason: fmt.Sprintf("dimension %s score %v out of [0,100]", name, score)}
		}
	}

	if _, err := ParseDecision(string(r.Decision)); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	if want := DecisionFor(r.OverallScore); r.Decision != want {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("decision %s inconsistent with score %v (want %s)", r.Decision, r.OverallScore, want),
		}
	}

	return &r, nil
}
