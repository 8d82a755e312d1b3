package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ramws/internal/adapters/tui"
	"ramws/internal/application/commands"
)

var (
	destroyForce          bool
	destroyNoninteractive bool
)

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Delete the workspace",
	Long: `Delete the workspace root. The project on disk is never touched.

Warning: changes not synced back are lost. Without --force, ramws asks for
confirmation when the workspace holds unsynced changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := GetWorkspace()
		if err != nil {
			return err
		}

		destroy := commands.NewDestroyCommand(ws, tui.NewStdPrompt(), destroyForce, destroyNoninteractive)
		result, err := destroy.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	destroyCmd.Flags().BoolVar(&destroyForce, "force", false, "skip the unsynced-changes check")
	destroyCmd.Flags().BoolVar(&destroyNoninteractive, "noninteractive", false, "never prompt")
	rootCmd.AddCommand(destroyCmd)
}
