package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ramws/internal/adapters/tui/views"
	"ramws/internal/application/commands"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace location, capacity and pending changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := GetWorkspace()
		if err != nil {
			return err
		}

		result, err := commands.NewStatusCommand(ws).Execute(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result.Snapshot)
		}
		fmt.Print(views.RenderStatus(result.Snapshot))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
