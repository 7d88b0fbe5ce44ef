package matching

// CandidateQuery is the search intent built from a candidate profile by an
// external query builder. The matcher treats it as read-only.
type CandidateQuery struct {
	// Titles are acceptable job titles, most-preferred first.
	Titles []string `json:"titles"`
	// Keywords keep their first-appearance order; matched-keyword
	// reporting depends on it.
	Keywords       []string `json:"keywords"`
	Locations      []string `json:"locations"`
	RemoteOK       bool     `json:"remote_ok"`
	Seniority      string   `json:"seniority,omitempty"`
	EmploymentType string   `json:"employment_type,omitempty"`
}
