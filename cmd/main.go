package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "Passata"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags overrideFlags

	root := &cobra.Command{
		Use:           "passata",
		Short:         "Pomodoro work/rest interval timer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd, &flags)
			if err != nil {
				return err
			}
			return runGUI(settings)
		},
	}
	bindOverrideFlags(root, &flags)

	root.AddCommand(newTUICmd(&flags))
	root.AddCommand(newConfigCmd(&flags))
	return root
}

func newTUICmd(flags *overrideFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}
			return runTUI(settings)
		},
	}
}
