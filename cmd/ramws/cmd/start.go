package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ramws/internal/application/commands"
)

var (
	startNoninteractive bool
	startSourcesOnly    bool
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Create the workspace and populate it from disk",
	Long: `Create the workspace root if needed, create build directories and mirror
every source from the project on disk. Running start on an existing
workspace re-syncs it from disk, overwriting unsynced edits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := GetWorkspace()
		if err != nil {
			return err
		}

		result, err := commands.NewStartCommand(ws, startSourcesOnly).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	startCmd.Flags().BoolVar(&startNoninteractive, "noninteractive", false, "never prompt")
	startCmd.Flags().BoolVar(&startSourcesOnly, "refresh-sources-only", false, "skip creating build directories")
	rootCmd.AddCommand(startCmd)
}
