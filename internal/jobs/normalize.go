package jobs

import (
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Raw is a loosely-typed job record as delivered by a source. Key names vary
// between sources; normalization resolves them through ordered alias lists
// so the ambiguity never leaks past this file. A nil Raw marks an entry the
// source could not shape into a mapping at all.
type Raw map[string]any

// Alias lists are tried in order; the first non-empty value wins.
var (
	titleKeys     = []string{"title", "job_title", "name", "position"}
	companyKeys   = []string{"company", "employer", "company_name", "employer_name"}
	locationKeys  = []string{"location", "job_location", "area", "city"}
	urlKeys       = []string{"url", "link", "apply_url", "job_url", "alternate_url"}
	descKeys      = []string{"description", "summary", "snippet", "details"}
	sourceKeys    = []string{"source", "source_id"}
	seniorityKeys = []string{"seniority", "level", "experience_level"}
)

// seniorityTokens maps title tokens to canonical seniority levels, used when
// the record carries no explicit seniority field.
var seniorityTokens = map[string]string{
	"intern":    "intern",
	"entry":     "entry",
	"graduate":  "entry",
	"junior":    "junior",
	"jr":        "junior",
	"mid":       "mid",
	"senior":    "senior",
	"sr":        "senior",
	"staff":     "staff",
	"lead":      "lead",
	"principal": "principal",
	"director":  "director",
}

// rawFields is the typed intermediate the alias-resolved values decode into.
type rawFields struct {
	Title       string `mapstructure:"title"`
	Company     string `mapstructure:"company"`
	Location    string `mapstructure:"location"`
	URL         string `mapstructure:"url"`
	Description string `mapstructure:"description"`
	Source      string `mapstructure:"source"`
	Seniority   string `mapstructure:"seniority"`
	Remote      *bool  `mapstructure:"remote"`
}

// Normalize shapes a raw record into a Posting attributed to sourceID.
// Missing fields resolve to empty strings; a record with no identifiable
// title, company or URL is malformed and returns ErrMalformedRecord.
func Normalize(record Raw, sourceID string) (*Posting, error) {
	if record == nil {
		return nil, ErrMalformedRecord
	}

	resolved := map[string]any{
		"title":       pickString(record, titleKeys),
		"company":     pickString(record, companyKeys),
		"location":    pickString(record, locationKeys),
		"url":         pickString(record, urlKeys),
		"description": pickString(record, descKeys),
		"source":      pickString(record, sourceKeys),
		"seniority":   pickString(record, seniorityKeys),
	}
	if remote, ok := pickBool(record, "remote"); ok {
		resolved["remote"] = remote
	}

	var fields rawFields
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &fields,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(resolved); err != nil {
		return nil, ErrMalformedRecord
	}

	if fields.Title == "" && fields.Company == "" && fields.URL == "" {
		return nil, ErrMalformedRecord
	}

	posting := &Posting{
		Title:       fields.Title,
		Company:     fields.Company,
		Location:    fields.Location,
		URL:         fields.URL,
		Description: fields.Description,
		SourceID:    fields.Source,
		Seniority:   strings.ToLower(fields.Seniority),
		Remote:      fields.Remote,
	}

	if posting.SourceID == "" {
		posting.SourceID = sourceID
	}
	if posting.Seniority == "" {
		posting.Seniority = inferSeniority(posting.Title)
	}
	if posting.Remote == nil {
		posting.Remote = inferRemote(posting.Location, posting.Title)
	}

	posting.Fingerprint = FingerprintOf(posting.Title, posting.Company, posting.Location, posting.URL)

	return posting, nil
}

// pickString returns the first alias with a usable value, trimmed and with
// internal whitespace collapsed.
func pickString(record Raw, keys []string) string {
	for _, key := range keys {
		v, ok := record[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if cleaned := collapseSpace(s); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

func pickBool(record Raw, key string) (bool, bool) {
	v, ok := record[key]
	if !ok {
		return false, false
	}
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		if lower == "true" || lower == "yes" {
			return true, true
		}
		if lower == "false" || lower == "no" {
			return false, true
		}
	}
	return false, false
}

func inferSeniority(title string) string {
	for _, token := range strings.Fields(strings.ToLower(title)) {
		token = strings.Trim(token, ".,()-/")
		if level, ok := seniorityTokens[token]; ok {
			return level
		}
	}
	return ""
}

// inferRemote returns a pointer only when there is an affirmative signal;
// absence of the word "remote" is not evidence of an on-site role.
func inferRemote(location, title string) *bool {
	loc := strings.ToLower(location)
	if strings.Contains(loc, "remote") || strings.Contains(strings.ToLower(title), "remote") {
		yes := true
		return &yes
	}
	return nil
}
