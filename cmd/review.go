package cmd

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ColaberryIntern/JobFlow/internal/ledger"
	"github.com/ColaberryIntern/JobFlow/internal/logger"
)

const (
	promptBack        = "back"
	promptSaveExit    = "Save and exit"
	promptDiscardExit = "Exit without saving"
	promptKeepStatus  = "keep current"
)

// statusSuggestions are offered in the review prompt. Status is free-form
// in the ledger; these are just the common values.
var statusSuggestions = []string{
	"queued", "applied", "interview", "offer", "rejected", "skipped",
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Interactively update status and notes in an application queue",
	Run: func(cmd *cobra.Command, _ []string) {
		review(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().StringP("queue", "q", "", "queue file to review. Default is <output>/queue.csv.")
}

func review(cmd *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	queuePath, _ := cmd.Flags().GetString("queue")
	if queuePath == "" {
		out := config.Output
		if out == "" {
			out = "out"
		}
		queuePath = filepath.Join(out, "queue.csv")
	}

	entries, err := ledger.Load(queuePath)
	if err != nil {
		zlog.Fatal("loading application queue", zap.Error(err))
	}
	if len(entries) == 0 {
		zlog.Info("exiting", zap.String("reason", "queue is empty"), zap.String("path", queuePath))
		return
	}

	dirty := false
	for {
		items := make([]string, 0, len(entries)+2)
		for _, entry := range entries {
			items = append(items, fmt.Sprintf("%d. %s / %s [%s]",
				entry.Rank, entry.JobTitle, entry.Company, entry.Status,
			))
		}
		items = append(items, promptSaveExit, promptDiscardExit)

		entryPrompt := promptui.Select{
			Label: "Choose an entry and press ENTER",
			Items: items,
			Size:  12,
		}

		idx, selected, err := entryPrompt.Run()
		if err != nil {
			zlog.Fatal("exiting", zap.Error(err))
		}

		switch selected {
		case promptSaveExit:
			if dirty {
				if err := ledger.Save(queuePath, entries); err != nil {
					zlog.Fatal("saving application queue", zap.Error(err))
				}
				zlog.Info("application queue saved", zap.String("path", queuePath))
			}
			return
		case promptDiscardExit:
			zlog.Info("exiting", zap.String("reason", "changes discarded"))
			return
		default:
			if editEntry(&entries[idx]) {
				dirty = true
			}
		}
	}
}

// editEntry prompts for a new status and notes. Returns true when the
// entry changed.
func editEntry(entry *ledger.QueueEntry) bool {
	statusPrompt := promptui.Select{
		Label: fmt.Sprintf("Status for %q (current: %s)", entry.JobTitle, entry.Status),
		Items: append(append([]string{promptKeepStatus}, statusSuggestions...), promptBack),
	}

	_, status, err := statusPrompt.Run()
	if err != nil || status == promptBack {
		return false
	}

	changed := false
	if status != promptKeepStatus && status != entry.Status {
		entry.Status = status
		changed = true
	}

	notesPrompt := promptui.Prompt{
		Label:     "Notes",
		Default:   entry.Notes,
		AllowEdit: true,
	}

	notes, err := notesPrompt.Run()
	if err == nil && notes != entry.Notes {
		entry.Notes = notes
		changed = true
	}

	return changed
}
