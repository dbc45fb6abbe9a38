package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dkrenn/tempus/internal/adapters/history"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed sessions",
	Long:  `Show the log of completed countdowns and pomodoro intervals, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, err := history.NewSQLiteStore(appConfig.HistoryPath())
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()

		if historyClear {
			if err := store.Clear(ctx); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Println("History cleared.")
			return nil
		}

		records, err := store.List(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No completed sessions yet.")
			return nil
		}

		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetHeader([]string{"COMPLETED", "MODE", "LABEL", "DURATION", "BRANCH", "COMMIT"})
		tw.SetBorder(false)
		tw.SetRowLine(false)
		tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		tw.SetAlignment(tablewriter.ALIGN_LEFT)
		tw.SetAutoWrapText(false)

		for _, rec := range records {
			tw.Append([]string{
				rec.CompletedAt.Local().Format("2006-01-02 15:04"),
				rec.Mode,
				rec.Label,
				rec.Duration.String(),
				rec.Branch,
				rec.Commit,
			})
		}
		tw.Render()
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum number of sessions to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded sessions")
}
