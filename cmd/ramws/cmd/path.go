package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var pathCopy bool

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the workspace root",
	Long: `Print the workspace root, e.g. for cd "$(ramws path)".

With --copy the path is also placed on the system clipboard.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := GetWorkspace()
		if err != nil {
			return err
		}

		root := ws.Root()
		fmt.Println(root)
		if pathCopy {
			if err := clipboard.WriteAll(root); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			logger.Info("copied to clipboard", "path", root)
		}
		return nil
	},
}

func init() {
	pathCmd.Flags().BoolVar(&pathCopy, "copy", false, "copy the path to the clipboard")
	rootCmd.AddCommand(pathCmd)
}
