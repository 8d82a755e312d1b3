package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ramws/internal/application/commands"
)

var (
	initForce    bool
	initTemplate string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .ramws.yml at the project root",
	Long: `Write a default .ramws.yml at the project root.

The project root is the nearest ancestor holding a .git directory, or the
current directory when there is none. The default config mirrors the whole
project minus .git, build, target and node_modules.

Examples:
  ramws init
  ramws init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}

		result, err := commands.NewInitCommand(root, initForce, initTemplate).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config")
	initCmd.Flags().StringVar(&initTemplate, "template", "", "template name hint (not applied)")
	rootCmd.AddCommand(initCmd)
}
