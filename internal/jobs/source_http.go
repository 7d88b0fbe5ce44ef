package jobs

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	httpSourceTimeout = 10 * time.Second
	contentType       = "application/json"
	acceptEncoding    = "gzip"
)

// HTTPSource fetches raw job records from a JSON endpoint. The endpoint
// returns either a bare array or an object with an "items" or "jobs" array.
type HTTPSource struct {
	id    string
	url   string
	token string

	HTTPClient *http.Client
	UserAgent  string
}

func NewHTTPSource(id, url, token string) *HTTPSource {
	return &HTTPSource{
		id:    id,
		url:   url,
		token: token,
		HTTPClient: &http.Client{
			Timeout: httpSourceTimeout,
		},
	}
}

func (s *HTTPSource) ID() string { return s.id }

func (s *HTTPSource) Fetch(ctx context.Context) ([]Raw, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept-Encoding", acceptEncoding)
	if s.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.token))
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	return decodeRecords(data)
}

func decodeRecords(data []byte) ([]Raw, error) {
	var entries []any
	if err := json.Unmarshal(data, &entries); err != nil {
		var wrapper struct {
			Items []any `json:"items"`
			Jobs  []any `json:"jobs"`
		}
		if werr := json.Unmarshal(data, &wrapper); werr != nil {
			return nil, fmt.Errorf("parsing response: %w", err)
		}
		entries = wrapper.Items
		if entries == nil {
			entries = wrapper.Jobs
		}
	}

	records := make([]Raw, 0, len(entries))
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			records = append(records, nil)
			continue
		}
		records = append(records, Raw(m))
	}

	return records, nil
}
