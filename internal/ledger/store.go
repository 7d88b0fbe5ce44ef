package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
)

// keywordSep joins keyword lists inside a single CSV cell. Keywords are
// normalized tokens and can never contain it.
const keywordSep = ";"

var csvHeader = []string{
	"job_fingerprint", "rank", "score", "decision",
	"company", "job_title", "location", "apply_url", "source",
	"status", "notes", "matched_keywords", "missing_keywords",
}

// Load reads the queue CSV at path. A missing file is an empty queue, not
// an error: the first run of a candidate has no ledger yet.
func Load(path string) ([]QueueEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(csvHeader)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing queue file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if !slices.Equal(rows[0], csvHeader) {
		return nil, fmt.Errorf("queue file %s: unexpected header %q", path, strings.Join(rows[0], ","))
	}

	entries := make([]QueueEntry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		entry, err := entryFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("queue file %s row %d: %w", path, i+2, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Save rewrites the whole queue file. There is no in-place row mutation;
// the merge already happened in memory.
func Save(path string, entries []QueueEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := writer.Write(rowFromEntry(entry)); err != nil {
			return err
		}
	}
	writer.Flush()

	return writer.Error()
}

func rowFromEntry(e QueueEntry) []string {
	return []string{
		e.Fingerprint,
		strconv.Itoa(e.Rank),
		strconv.FormatFloat(e.Score, 'f', 1, 64),
		e.Decision,
		e.Company,
		e.JobTitle,
		e.Location,
		e.ApplyURL,
		e.Source,
		e.Status,
		e.Notes,
		strings.Join(e.MatchedKeywords, keywordSep),
		strings.Join(e.MissingKeywords, keywordSep),
	}
}

func entryFromRow(row []string) (QueueEntry, error) {
	rank, err := strconv.Atoi(row[1])
	if err != nil {
		return QueueEntry{}, fmt.Errorf("rank: %w", err)
	}

	score, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return QueueEntry{}, fmt.Errorf("score: %w", err)
	}

	return QueueEntry{
		Fingerprint:     row[0],
		Rank:            rank,
		Score:           score,
		Decision:        row[3],
		Company:         row[4],
		JobTitle:        row[5],
		Location:        row[6],
		ApplyURL:        row[7],
		Source:          row[8],
		Status:          row[9],
		Notes:           row[10],
		MatchedKeywords: splitKeywords(row[11]),
		MissingKeywords: splitKeywords(row[12]),
	}, nil
}

func splitKeywords(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, keywordSep)
}
