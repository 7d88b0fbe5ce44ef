// Package batch processes many candidate folders in one invocation:
// per-candidate discovery and reconciliation, an aggregated summary CSV and
// an errors report. One candidate failing never stops the batch.
package batch

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/ColaberryIntern/JobFlow/internal/jobs"
	"github.com/ColaberryIntern/JobFlow/internal/ledger"
	"github.com/ColaberryIntern/JobFlow/internal/pipeline"
	"github.com/ColaberryIntern/JobFlow/internal/profile"
)

// Options tunes a batch run.
type Options struct {
	MatchJobs bool
	Pipeline  pipeline.Options
}

// Result reports what a batch run produced.
type Result struct {
	Processed   int    `json:"processed"`
	Succeeded   int    `json:"succeeded"`
	Failed      int    `json:"failed"`
	SummaryPath string `json:"summary_path"`
	ErrorsPath  string `json:"errors_path"`
	ResultsDir  string `json:"results_dir"`
}

type summaryRow struct {
	candidateID string
	folder      string
	numJobs     int
	numMatches  int
	topScore    string
	numErrors   int
	status      string
}

type errorEntry struct {
	Folder string `json:"folder"`
	Error  string `json:"error"`
}

// DiscoverCandidateFolders returns the immediate subdirectories of dir that
// contain a profile.json, sorted by path. A missing or non-directory dir
// yields an empty list.
func DiscoverCandidateFolders(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var folders []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(filepath.Join(folder, profile.FileName)); err == nil {
			folders = append(folders, folder)
		}
	}

	sort.Strings(folders)
	return folders
}

// Run processes every candidate folder under candidatesDir. Each candidate
// gets results.json and a reconciled queue.csv under
// outDir/results/<slug>/; the batch writes summary.csv and errors.json at
// outDir regardless of how many candidates were found.
func Run(ctx context.Context, candidatesDir string, sources []jobs.Source, outDir string, opts Options, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	resultsDir := filepath.Join(outDir, "results")
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return nil, err
	}

	summaryPath := filepath.Join(outDir, "summary.csv")
	errorsPath := filepath.Join(outDir, "errors.json")

	folders := DiscoverCandidateFolders(candidatesDir)

	var rows []summaryRow
	errs := []errorEntry{}
	succeeded, failed := 0, 0

	for _, folder := range folders {
		folderName := filepath.Base(folder)

		row, err := runCandidate(ctx, folder, sources, resultsDir, opts, logger)
		if err != nil {
			logger.Warn("candidate failed",
				zap.String("folder", folderName),
				zap.Error(err),
			)
			errs = append(errs, errorEntry{Folder: folderName, Error: err.Error()})
			rows = append(rows, summaryRow{
				candidateID: folderName,
				folder:      folderName,
				status:      "failed",
			})
			failed++
			continue
		}

		rows = append(rows, row)
		succeeded++
	}

	if err := writeSummary(summaryPath, rows); err != nil {
		return nil, err
	}
	if err := writeErrors(errorsPath, errs); err != nil {
		return nil, err
	}

	logger.Info("batch finished",
		zap.Int("processed", len(folders)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
	)

	return &Result{
		Processed:   len(folders),
		Succeeded:   succeeded,
		Failed:      failed,
		SummaryPath: summaryPath,
		ErrorsPath:  errorsPath,
		ResultsDir:  resultsDir,
	}, nil
}

func runCandidate(ctx context.Context, folder string, sources []jobs.Source, resultsDir string, opts Options, logger *zap.Logger) (summaryRow, error) {
	folderName := filepath.Base(folder)

	p, err := profile.Load(filepath.Join(folder, profile.FileName))
	if err != nil {
		return summaryRow{}, err
	}

	candidateID := p.ID(folderName)

	pipelineOpts := opts.Pipeline
	pipelineOpts.MatchJobs = opts.MatchJobs
	result, err := pipeline.Run(ctx, p, sources, candidateID, pipelineOpts, logger)
	if err != nil {
		return summaryRow{}, err
	}

	candidateDir := filepath.Join(resultsDir, SafeSlug(candidateID))
	if err := os.MkdirAll(candidateDir, 0o755); err != nil {
		return summaryRow{}, err
	}

	if err := writeJSON(filepath.Join(candidateDir, "results.json"), result); err != nil {
		return summaryRow{}, err
	}

	queuePath := filepath.Join(candidateDir, "queue.csv")
	previous, err := ledger.Load(queuePath)
	if err != nil {
		return summaryRow{}, err
	}
	if err := ledger.Save(queuePath, ledger.Reconcile(previous, result.Matches)); err != nil {
		return summaryRow{}, err
	}

	topScore := ""
	if len(result.Matches) > 0 {
		topScore = strconv.FormatFloat(result.Matches[0].OverallScore, 'f', 1, 64)
	}

	return summaryRow{
		candidateID: candidateID,
		folder:      folderName,
		numJobs:     result.Counts.Jobs,
		numMatches:  result.Counts.Matches,
		topScore:    topScore,
		numErrors:   result.Counts.Errors,
		status:      "success",
	}, nil
}

func writeSummary(path string, rows []summaryRow) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"candidate_id", "folder", "num_jobs", "num_matches", "top_score", "num_errors", "status"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.candidateID,
			row.folder,
			strconv.Itoa(row.numJobs),
			strconv.Itoa(row.numMatches),
			row.topScore,
			strconv.Itoa(row.numErrors),
			row.status,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()

	return writer.Error()
}

func writeErrors(path string, errs []errorEntry) error {
	return writeJSON(path, errs)
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
