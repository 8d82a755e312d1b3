package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ramws/internal/adapters/shell"
	"ramws/internal/adapters/tui"
	"ramws/internal/application/commands"
)

var (
	shellBinary         string
	shellNoPrompt       bool
	shellNoninteractive bool
)

var shellCmd = &cobra.Command{
	Use:   "shell [command...]",
	Short: "Open a shell inside the workspace",
	Long: `Provision the workspace, then start a shell in it. With a command, run
it through the shell and exit. When the shell exits the on_exit policy runs:
never leaves changes in place, auto syncs back, ask prompts when changes
are pending. ramws exits with the shell's status.

Examples:
  ramws shell
  ramws shell --no-prompt
  ramws shell make test`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := GetWorkspace()
		if err != nil {
			return err
		}

		// Interrupts belong to the shell; the handler resets in the child.
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGQUIT)
		defer signal.Stop(sigs)

		shellCommand := commands.NewShellCommand(ws, shell.NewRunner(), tui.NewStdPrompt(), os.Getenv)
		shellCommand.Shell = shellBinary
		shellCommand.NoPrompt = shellNoPrompt
		shellCommand.Command = args
		shellCommand.Noninteractive = shellNoninteractive

		result, err := shellCommand.Execute(context.Background())
		if result != nil && result.Exit != nil {
			logger.Info(result.Exit.Message)
		}
		if err != nil {
			return err
		}
		if result.ExitCode != 0 {
			closeJournal()
			os.Exit(result.ExitCode)
		}
		return nil
	},
}

func init() {
	shellCmd.Flags().StringVar(&shellBinary, "shell", "", "shell binary (default $SHELL, then /bin/bash)")
	shellCmd.Flags().BoolVar(&shellNoPrompt, "no-prompt", false, "leave PS1 untouched")
	shellCmd.Flags().BoolVar(&shellNoninteractive, "noninteractive", false, "never prompt; sync back without asking")
	shellCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(shellCmd)
}
