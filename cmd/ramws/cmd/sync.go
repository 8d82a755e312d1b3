package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ramws/internal/application"
	"ramws/internal/application/commands"
	"ramws/internal/domain"
)

var (
	syncBack           bool
	syncFrom           bool
	syncOnly           []string
	syncRoles          []string
	syncNoninteractive bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync between the workspace and the project on disk",
	Long: `Sync between the workspace and the project on disk.

By default changes go back to disk (--back) through a staging directory
under the project root. --from pulls the disk state into the workspace,
overwriting unsynced edits.

Paths default to every source. --only picks explicit paths; --role picks
sources and/or build directories by kind.

Examples:
  ramws sync
  ramws sync --from
  ramws sync --only src --only docs
  ramws sync --back --role cache`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := GetWorkspace()
		if err != nil {
			return err
		}

		roles := make([]domain.Role, 0, len(syncRoles))
		for _, r := range syncRoles {
			role, err := domain.ParseRole(r)
			if err != nil {
				return err
			}
			roles = append(roles, role)
		}
		mappings := application.SelectMappings(ws.Config(), syncOnly, roles)

		ctx := context.Background()
		if syncFrom {
			result, err := commands.NewRefreshCommand(ws, mappings).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		}

		result, err := commands.NewSyncbackCommand(ws, mappings, syncNoninteractive).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncBack, "back", false, "sync workspace changes back to disk (default)")
	syncCmd.Flags().BoolVar(&syncFrom, "from", false, "refresh the workspace from disk")
	syncCmd.Flags().StringSliceVar(&syncOnly, "only", nil, "sync only these project-relative paths")
	syncCmd.Flags().StringSliceVar(&syncRoles, "role", nil, "select paths by role: source, cache, scratch")
	syncCmd.Flags().BoolVar(&syncNoninteractive, "noninteractive", false, "never prompt")
	syncCmd.MarkFlagsMutuallyExclusive("back", "from")
	rootCmd.AddCommand(syncCmd)
}
