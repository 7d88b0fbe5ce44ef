package jobs

import (
	"context"
	"strings"

	"github.com/mmcdole/gofeed"
)

// RSSSource reads job postings from an RSS or Atom feed. Feed items carry
// less structure than API records, so the mapping is best-effort: the item
// author or a custom "company" element supplies the company, categories are
// folded into the description.
type RSSSource struct {
	id     string
	url    string
	parser *gofeed.Parser
}

func NewRSSSource(id, url string) *RSSSource {
	return &RSSSource{
		id:     id,
		url:    url,
		parser: gofeed.NewParser(),
	}
}

func (s *RSSSource) ID() string { return s.id }

func (s *RSSSource) Fetch(ctx context.Context) ([]Raw, error) {
	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, err
	}

	records := make([]Raw, 0, len(feed.Items))
	for _, item := range feed.Items {
		records = append(records, itemToRecord(item, feed.Title))
	}

	return records, nil
}

func itemToRecord(item *gofeed.Item, feedTitle string) Raw {
	record := Raw{
		"title": item.Title,
		"url":   item.Link,
	}

	company := ""
	if item.Author != nil {
		company = item.Author.Name
	}
	if v, ok := item.Custom["company"]; ok && v != "" {
		company = v
	}
	if company == "" {
		company = feedTitle
	}
	record["company"] = company

	if v, ok := item.Custom["location"]; ok {
		record["location"] = v
	}

	description := item.Description
	if len(item.Categories) > 0 {
		description = strings.TrimSpace(description + "\n" + strings.Join(item.Categories, " "))
	}
	record["description"] = description

	return record
}
