package jobs

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLSelectors configures how postings are located on a listing page.
// Item selects one posting container; the rest are resolved within it.
type HTMLSelectors struct {
	Item     string `yaml:"item"`
	Title    string `yaml:"title"`
	Company  string `yaml:"company"`
	Location string `yaml:"location"`
	Link     string `yaml:"link"`
}

// HTMLSource scrapes job postings from a listing page using configurable
// CSS selectors.
type HTMLSource struct {
	id        string
	url       string
	selectors HTMLSelectors

	HTTPClient *http.Client
}

func NewHTMLSource(id, url string, selectors HTMLSelectors) *HTMLSource {
	return &HTMLSource{
		id:        id,
		url:       url,
		selectors: selectors,
		HTTPClient: &http.Client{
			Timeout: httpSourceTimeout,
		},
	}
}

func (s *HTMLSource) ID() string { return s.id }

func (s *HTMLSource) Fetch(ctx context.Context) ([]Raw, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing listing page: %w", err)
	}

	var records []Raw
	doc.Find(s.selectors.Item).Each(func(_ int, item *goquery.Selection) {
		records = append(records, s.itemToRecord(item))
	})

	return records, nil
}

func (s *HTMLSource) itemToRecord(item *goquery.Selection) Raw {
	record := Raw{
		"title":    selectText(item, s.selectors.Title),
		"company":  selectText(item, s.selectors.Company),
		"location": selectText(item, s.selectors.Location),
	}

	linkSel := item
	if s.selectors.Link != "" {
		linkSel = item.Find(s.selectors.Link).First()
	}
	if href, ok := linkSel.Attr("href"); ok {
		record["url"] = href
	}

	return record
}

func selectText(item *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(item.Find(selector).First().Text())
}
