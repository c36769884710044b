// sysmon — Minimal cross-platform system monitor.
// Author: vesaa | License: MIT | https://github.com/vesaa/sysmon
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vesaa/sysmon/internal/config"
	"github.com/vesaa/sysmon/internal/logging"
	"github.com/vesaa/sysmon/internal/monitor"
	"github.com/vesaa/sysmon/internal/sampler"
)

const version = "v0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Error().Err(err).Msg("sysmon failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sysmon",
		Short: "Minimal cross-platform system monitor",
		Long: `sysmon samples CPU, memory, disk I/O and network I/O and prints a short report.

Without flags it takes one sample over --interval seconds and exits.
--live redraws the report in place; --log prints one line per update.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true, // main logs the error
		RunE:          runMonitor,
	}

	root.Flags().Bool("live", false, "Live mode: update the report in place")
	root.Flags().Bool("log", false, "Log mode: print a new line every update")
	root.Flags().Int("interval", 1, "Update interval in seconds (sampling window in one-shot mode)")
	root.Flags().Int("count", 0, "Stop live/log mode after N updates (0 = until interrupted)")
	root.Flags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
	root.MarkFlagsMutuallyExclusive("live", "log")

	// ── version subcommand ────────────────────────────────────────────────────
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print sysmon version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sysmon %s\n", version)
		},
	}
	root.AddCommand(versionCmd)

	return root
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config values.
	live, _ := cmd.Flags().GetBool("live")
	logMode, _ := cmd.Flags().GetBool("log")
	if err := cfg.ApplyModeFlags(live, logMode); err != nil {
		return err
	}
	if cmd.Flags().Changed("interval") {
		cfg.IntervalSeconds, _ = cmd.Flags().GetInt("interval")
	}
	if cmd.Flags().Changed("count") {
		cfg.Count, _ = cmd.Flags().GetInt("count")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logging.SetDebugMode()
	} else if !logging.SetLevel(cfg.LogLevel) {
		logging.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level; keeping info")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if e := logging.Debug(); e.Enabled() {
		e.Str("host", sampler.DescribeHost(ctx)).
			Str("mode", string(cfg.Mode)).
			Int("interval_seconds", cfg.IntervalSeconds).
			Msg("starting")
	}

	err = monitor.Run(ctx, monitor.OptionsFrom(cfg), sampler.New(sampler.NewHostSource()), cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		return nil // interrupted by the operator
	}
	return err
}
