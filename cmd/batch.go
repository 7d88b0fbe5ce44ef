package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ColaberryIntern/JobFlow/internal/batch"
	"github.com/ColaberryIntern/JobFlow/internal/jobs"
	"github.com/ColaberryIntern/JobFlow/internal/logger"
	"github.com/ColaberryIntern/JobFlow/internal/matching"
	"github.com/ColaberryIntern/JobFlow/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run discovery for every candidate folder under a directory",
	Run: func(cmd *cobra.Command, _ []string) {
		runBatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("candidates", "candidates", "directory containing candidate folders")
	batchCmd.Flags().StringP("out", "o", "out", "output directory for batch results")
	batchCmd.Flags().StringP("sources", "s", "", "sources definition file. Default is taken from the config.")
	batchCmd.Flags().Bool("skip-match", false, "aggregate only, do not score jobs")
}

func runBatch(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting jobflow batch", zap.String("version", version))

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

	candidatesDir, _ := cmd.Flags().GetString("candidates")
	outDir, _ := cmd.Flags().GetString("out")
	skipMatch, _ := cmd.Flags().GetBool("skip-match")

	result, err := batch.Run(ctx, candidatesDir, sources, outDir, batch.Options{
		MatchJobs: !skipMatch,
		Pipeline: pipeline.Options{
			Matcher: matching.NewMatcher(config.AdjacencyTable()),
		},
	}, zlog)
	if err != nil {
		zlog.Fatal("batch run failed", zap.Error(err))
	}

	zlog.Info("batch finished",
		zap.Int("processed", result.Processed),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
		zap.String("summary", result.SummaryPath),
		zap.String("errors", result.ErrorsPath),
	)
}
