package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ramws/internal/adapters/tui/views"
	"ramws/internal/application/commands"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent refresh and syncback runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := GetWorkspace()
		if err != nil {
			return err
		}

		result, err := commands.NewHistoryCommand(ws, historyLimit).Execute(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result.Runs)
		}
		fmt.Print(views.RenderHistory(result.Runs, time.Now()))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", commands.DefaultHistoryLimit, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
