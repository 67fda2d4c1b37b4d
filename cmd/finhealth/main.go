package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finhealth %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "finhealth",
		Short:         "Personal financial health calculator",
		Long:          "Net worth and ratios, takaful coverage, protection needs gap and retirement fund projection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	a.bindFlags(rootCmd)

	rootCmd.AddCommand(netWorthCmd(a))
	rootCmd.AddCommand(coverageCmd(a))
	rootCmd.AddCommand(needsCmd(a))
	rootCmd.AddCommand(retireCmd(a))
	rootCmd.AddCommand(planCmd(a))
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(snapshotCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(tuiCmd(a))
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
