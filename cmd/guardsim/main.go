package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevel   string
	targetFile string

	rootCmd = &cobra.Command{
		Use:   "guardsim",
		Short: "Simulate and audit the boot-time stack guard",
		Long: `guardsim runs the boot sequence against simulated target RAM and audits
the stack guard layout of every supported target.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr(envLogLevel, "info"), "log level (trace, debug, info, warn, error). Default: $"+envLogLevel)
	rootCmd.PersistentFlags().StringVarP(&targetFile, "targets", "t", "", "target table to use instead of the built-in one")

	rootCmd.AddCommand(targetsCmd, checkCmd, runCmd, assertCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
