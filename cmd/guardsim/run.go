package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"omibyte.io/stackguard/audit"
	"omibyte.io/stackguard/fault"
)

var (
	runOpts = struct {
		chip    string
		usage   int
		timeout time.Duration
	}{}

	assertOpts = struct {
		chip    string
		file    string
		line    int
		timeout time.Duration
	}{}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Simulate a full boot and scan the guard region afterwards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return simulate(cmd, runOpts.chip, runOpts.usage, runOpts.timeout, nil)
		},
	}

	assertCmd = &cobra.Command{
		Use:   "assert",
		Short: "Simulate a boot whose entry routine fails an assertion",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := &fault.Location{File: assertOpts.file, Line: assertOpts.line}
			return simulate(cmd, assertOpts.chip, 0, assertOpts.timeout, loc)
		},
	}
)

func init() {
	runCmd.Flags().StringVarP(&runOpts.chip, "chip", "c", "atsamd21g18a", "chip or series to simulate")
	runCmd.Flags().IntVarP(&runOpts.usage, "usage", "u", 0, "words of stack the entry routine consumes")
	runCmd.Flags().DurationVar(&runOpts.timeout, "timeout", 5*time.Second, "time allowed for the sequence to halt")

	assertCmd.Flags().StringVarP(&assertOpts.chip, "chip", "c", "atsamd21g18a", "chip or series to simulate")
	assertCmd.Flags().StringVar(&assertOpts.file, "file", "driver.c", "source file reported by the failed assertion")
	assertCmd.Flags().IntVar(&assertOpts.line, "line", 42, "source line reported by the failed assertion")
	assertCmd.Flags().DurationVar(&assertOpts.timeout, "timeout", 5*time.Second, "time allowed for the sequence to halt")
}

func simulate(cmd *cobra.Command, chip string, usage int, timeout time.Duration, fail *fault.Location) error {
	table, err := loadTargets()
	if err != nil {
		return err
	}
	target, err := table.Find(chip)
	if err != nil {
		return fmt.Errorf("%s: %w", chip, err)
	}
	if err := target.Validate(); err != nil {
		log.Error().Err(err).Str("series", target.Series).Msg("guard layout does not match the reserved stack")
		return fmt.Errorf("%s: %w", target.Series, err)
	}

	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result, err := audit.Simulate(ctx, audit.Simulation{
		Config:      target.GuardConfig(),
		Usage:       usage,
		Fail:        fail,
		Diagnostics: cmd.OutOrStdout(),
	})
	for _, t := range result.Transitions {
		log.Debug().Stringer("from", t.From).Stringer("to", t.To).Msg("transition")
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("series", target.Series).
		Str("base", fmt.Sprintf("%#x", result.Region.Base)).
		Int("words", result.Region.Words).
		Stringer("final", result.Final).
		Msg("boot sequence halted")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "guard base:   %#x\n", result.Region.Base)
	fmt.Fprintf(out, "guard bottom: %#x\n", result.Region.Bottom())
	fmt.Fprintf(out, "words:        %d\n", result.Region.Words)
	fmt.Fprintf(out, "headroom:     %d\n", result.Report.Headroom)
	fmt.Fprintf(out, "used:         %d\n", result.Report.Used)
	fmt.Fprintf(out, "overflowed:   %v\n", result.Report.Overflowed)
	fmt.Fprintf(out, "final state:  %v\n", result.Final)

	if result.NeighbourCorrupted {
		log.Error().Msg("stack growth overwrote static data below the reserved stack")
	}
	return nil
}
