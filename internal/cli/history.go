package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asamgx/crunchsetup/internal/history"
)

var (
	historyLimit  int
	historyDetail bool
	historyClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View operation history",
	Long: `View recent crunchsetup operations.

Shows a log of install and SSH key runs with their outcome.
Entries from the same wizard session share a run ID (shown with --detail).`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of entries to show")
	historyCmd.Flags().BoolVar(&historyDetail, "detail", false, "show detailed information")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all history entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyClear {
		if err := history.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		printInfo("History cleared.")
		return nil
	}

	entries, err := history.Read(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	fmt.Printf("Recent operations (showing %d):\n\n", len(entries))

	for _, entry := range entries {
		line := entry.Format(historyDetail)
		if entry.Summary == "failed" {
			printStyled(line, styleError)
			fmt.Println()
			continue
		}
		fmt.Println(line)
	}

	return nil
}
