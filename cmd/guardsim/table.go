package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"omibyte.io/stackguard/audit"
	"omibyte.io/stackguard/targets"
)

var (
	targetsCmd = &cobra.Command{
		Use:   "targets",
		Short: "List the supported targets and their guard layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTargets()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-8s %-14s %8s %7s %7s %10s\n", "SERIES", "CPU", "STACK", "BUDGET", "MARGIN", "SENTINEL")
			for _, t := range table.Sorted() {
				fmt.Fprintf(out, "%-8s %-14s %#8x %7d %7d %#10x\n", t.Series, t.Cpu, t.StackSize, t.BudgetWords, t.SafetyMargin, t.Sentinel)
			}
			return nil
		},
	}

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Verify every target's guard budget matches its reserved stack",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTargets()
			if err != nil {
				return err
			}

			if err := audit.Targets(table); err != nil {
				log.Error().Err(err).Msg("target table check failed")
				return err
			}
			log.Info().Int("targets", len(table)).Msg("all guard layouts match their reserved stack")
			return nil
		},
	}
)

func loadTargets() (targets.Targets, error) {
	if targetFile == "" {
		return targets.All(), nil
	}

	raw, err := os.ReadFile(targetFile)
	if err != nil {
		return nil, err
	}
	table, err := targets.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", targetFile, err)
	}
	log.Debug().Str("file", targetFile).Int("targets", len(table)).Msg("loaded target table")
	return table, nil
}
