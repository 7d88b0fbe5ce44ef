package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ColaberryIntern/JobFlow/internal/applypack"
	"github.com/ColaberryIntern/JobFlow/internal/jobs"
	"github.com/ColaberryIntern/JobFlow/internal/ledger"
	"github.com/ColaberryIntern/JobFlow/internal/logger"
	"github.com/ColaberryIntern/JobFlow/internal/matching"
	"github.com/ColaberryIntern/JobFlow/internal/pipeline"
	"github.com/ColaberryIntern/JobFlow/internal/profile"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run discovery for a single candidate folder and reconcile its queue",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("candidate", "c", "", "candidate folder containing profile.json")
	runCmd.Flags().StringP("out", "o", "out", "output directory for results, queue and apply pack")
	runCmd.Flags().StringP("sources", "s", "", "sources definition file. Default is taken from the config.")
	runCmd.Flags().Bool("skip-match", false, "aggregate only, do not score jobs")

	runCmd.MarkFlagRequired("candidate")

	viper.BindPFlag("output", runCmd.Flags().Lookup("out"))
}

func run(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting jobflow", zap.String("version", version))

	sourcesFile := sourcesPath(cmd, config)
	if sourcesFile == "" {
		zlog.Fatal("a sources definition file is required",
			zap.String("hint", "set the 'sources' key in the config or pass --sources"),
		)
	}

	sources, err := jobs.LoadSources(sourcesFile)
	if err != nil {
		zlog.Fatal("loading sources", zap.Error(err))
	}
	zlog.Info("loaded sources", zap.Int("count", len(sources)))

	candidateDir, _ := cmd.Flags().GetString("candidate")
	p, err := profile.Load(filepath.Join(candidateDir, profile.FileName))
	if err != nil {
		zlog.Fatal("loading candidate profile", zap.Error(err))
	}

	candidateID := p.ID(filepath.Base(candidateDir))
	runLog := logger.WithRunFields(zlog, candidateID, "")

	skipMatch, _ := cmd.Flags().GetBool("skip-match")
	result, err := pipeline.Run(ctx, p, sources, candidateID, pipeline.Options{
		MatchJobs: !skipMatch,
		Matcher:   matching.NewMatcher(config.AdjacencyTable()),
	}, runLog)
	if err != nil {
		runLog.Fatal("discovery run failed", zap.Error(err))
	}

	outDir := config.Output
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		runLog.Fatal("creating output directory", zap.Error(err))
	}

	if err := writeJSONFile(filepath.Join(outDir, "results.json"), result); err != nil {
		runLog.Fatal("writing results", zap.Error(err))
	}

	queuePath := filepath.Join(outDir, "queue.csv")
	previous, err := ledger.Load(queuePath)
	if err != nil {
		runLog.Fatal("loading application queue", zap.Error(err))
	}

	entries := ledger.Reconcile(previous, result.Matches)
	if err := ledger.Save(queuePath, entries); err != nil {
		runLog.Fatal("saving application queue", zap.Error(err))
	}
	runLog.Info("application queue reconciled",
		zap.String("path", queuePath),
		zap.Int("previous", len(previous)),
		zap.Int("entries", len(entries)),
	)

	pack := applypack.Build(result, p, config.TopN)
	if err := writeJSONFile(filepath.Join(outDir, "apply_pack.json"), pack); err != nil {
		runLog.Fatal("writing apply pack", zap.Error(err))
	}

	runLog.Info("run finished",
		zap.Int("jobs", result.Counts.Jobs),
		zap.Int("matches", result.Counts.Matches),
		zap.Int("errors", result.Counts.Errors),
		zap.String("output", outDir),
	)
}

func writeJSONFile(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return nil
}
