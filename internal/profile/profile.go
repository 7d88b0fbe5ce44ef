// Package profile holds the candidate profile consumed by the discovery
// pipeline and the builder that turns it into a search query. Resume and
// spreadsheet parsing happen upstream; this package only reads the already
// structured profile.json.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ColaberryIntern/JobFlow/internal/matching"
)

// FileName is the profile file expected inside a candidate folder.
const FileName = "profile.json"

// Profile is a structured candidate profile. Skills is the preferred,
// ordered representation; SkillsYears is accepted for compatibility with
// older intake exports and is used only when Skills is empty.
type Profile struct {
	Name              string         `json:"name,omitempty"`
	FirstName         string         `json:"first_name,omitempty"`
	LastName          string         `json:"last_name,omitempty"`
	Email             string         `json:"email,omitempty"`
	Phone             string         `json:"phone,omitempty"`
	Location          string         `json:"location,omitempty"`
	DesiredTitle      string         `json:"desired_title,omitempty"`
	AlternateTitles   []string       `json:"alternate_titles,omitempty"`
	Skills            []string       `json:"skills,omitempty"`
	SkillsYears       map[string]int `json:"skills_years,omitempty"`
	DesiredLocations  []string       `json:"desired_locations,omitempty"`
	RemoteOK          bool           `json:"remote_ok,omitempty"`
	Seniority         string         `json:"seniority,omitempty"`
	EmploymentType    string         `json:"employment_type,omitempty"`
	WorkAuthorization string         `json:"work_authorization,omitempty"`
	SponsorshipNeeded *bool          `json:"sponsorship_needed,omitempty"`
	ResumePath        string         `json:"resume_path,omitempty"`
}

// Load reads a profile.json.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	return &p, nil
}

// FullName returns the display name, preferring the explicit name field.
func (p *Profile) FullName() string {
	if p.Name != "" {
		return p.Name
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ID identifies the candidate for results and ledgers: email, then name,
// then the provided fallback (usually the folder name).
func (p *Profile) ID(fallback string) string {
	if p.Email != "" {
		return p.Email
	}
	if name := p.FullName(); name != "" {
		return name
	}
	return fallback
}

// Summary is the safe subset of the profile embedded in results and apply
// packs.
type Summary struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Location      string   `json:"location"`
	DesiredTitles []string `json:"desired_titles"`
	Skills        []string `json:"skills"`
}

func (p *Profile) Summary() Summary {
	return Summary{
		Name:          p.FullName(),
		Email:         p.Email,
		Phone:         p.Phone,
		Location:      p.Location,
		DesiredTitles: titlesOf(p),
		Skills:        skillsOf(p),
	}
}

// BuildQuery turns a profile into the candidate query consumed by the
// matcher. Title order is preference order; keyword order follows the
// skill list so matched-keyword reporting stays stable.
func BuildQuery(p *Profile) *matching.CandidateQuery {
	keywords := make([]string, 0, len(p.Skills))
	seen := make(map[string]struct{})
	for _, skill := range skillsOf(p) {
		// Semicolons separate keyword lists downstream in the queue CSV,
		// so a skill entry carrying them is split into several keywords.
		for _, part := range strings.Split(skill, ";") {
			kw := strings.ToLower(strings.TrimSpace(part))
			if kw == "" {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
	}

	return &matching.CandidateQuery{
		Titles:         titlesOf(p),
		Keywords:       keywords,
		Locations:      append([]string(nil), p.DesiredLocations...),
		RemoteOK:       p.RemoteOK,
		Seniority:      strings.ToLower(strings.TrimSpace(p.Seniority)),
		EmploymentType: p.EmploymentType,
	}
}

func titlesOf(p *Profile) []string {
	titles := make([]string, 0, 1+len(p.AlternateTitles))
	seen := make(map[string]struct{})
	for _, title := range append([]string{p.DesiredTitle}, p.AlternateTitles...) {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}

// skillsOf prefers the ordered skill list. The legacy skills_years map has
// no order, so its keys are sorted to keep query building deterministic.
func skillsOf(p *Profile) []string {
	if len(p.Skills) > 0 {
		return append([]string(nil), p.Skills...)
	}

	skills := make([]string, 0, len(p.SkillsYears))
	for skill := range p.SkillsYears {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}
