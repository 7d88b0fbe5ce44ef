package jobs

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// fingerprintSep joins the identity tuple. It cannot survive normalization,
// so field content can never shift the tuple boundaries.
const fingerprintSep = "\x1f"

// Posting is a normalized job posting. It is constructed once during
// aggregation and never mutated afterwards.
type Posting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Description string `json:"description"`
	SourceID    string `json:"source_id"`
	Seniority   string `json:"seniority,omitempty"`
	// Remote is nil when the source gave no signal either way.
	Remote      *bool  `json:"remote,omitempty"`
	Fingerprint string `json:"fingerprint"`
}

// Postings is an ordered, fingerprint-unique collection of postings.
type Postings struct {
	Items []*Posting
}

func (p *Postings) Len() int {
	return len(p.Items)
}

func (p *Postings) FindByFingerprint(fp string) *Posting {
	for _, posting := range p.Items {
		if posting.Fingerprint == fp {
			return posting
		}
	}
	return nil
}

// IsRemote reports whether the posting is known to be remote. Unknown
// counts as not remote.
func (p *Posting) IsRemote() bool {
	return p.Remote != nil && *p.Remote
}

// FingerprintOf derives the identity hash of a posting from its normalized
// title, company, location and URL. Case and whitespace differences in the
// raw input never change the result.
func FingerprintOf(title, company, location, url string) string {
	tuple := strings.Join([]string{
		foldForCompare(title),
		foldForCompare(company),
		foldForCompare(location),
		foldForCompare(url),
	}, fingerprintSep)

	sum := sha256.Sum256([]byte(tuple))
	return hex.EncodeToString(sum[:])
}

// foldForCompare lowercases and collapses whitespace. Used for identity
// only; display fields keep their original casing.
func foldForCompare(s string) string {
	return strings.ToLower(collapseSpace(s))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
