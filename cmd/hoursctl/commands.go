package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"goldlinks/internal/hours"

	"github.com/spf13/cobra"
)

type options struct {
	asJSON bool
	at     string
	zone   string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "hoursctl",
		Short:        "Parse store hours and check open/closed status",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of text")

	parseCmd := &cobra.Command{
		Use:   "parse <hours text>",
		Short: "Parse an hours line into a weekly schedule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.OutOrStdout(), strings.Join(args, " "), opts)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status <hours text>",
		Short: "Report whether a schedule is open at an instant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout(), strings.Join(args, " "), opts, time.Now)
		},
	}
	statusCmd.Flags().StringVar(&opts.at, "at", "", "RFC3339 instant (default now)")
	statusCmd.Flags().StringVar(&opts.zone, "tz", "", "IANA timezone the hours are expressed in (default: the offset of --at, or local time without --at)")

	root.AddCommand(parseCmd, statusCmd)
	return root
}

func runParse(out io.Writer, text string, opts *options) error {
	week := hours.ParseText(text)

	if opts.asJSON {
		return writeJSON(out, struct {
			Records []hours.Record     `json:"records"`
			Summary []hours.DaySummary `json:"summary"`
		}{week.Records(), hours.Summary(week)})
	}

	for _, line := range hours.Summary(week) {
		fmt.Fprintln(out, line.Text)
	}
	return nil
}

func runStatus(out io.Writer, text string, opts *options, now func() time.Time) error {
	at := now()
	if opts.at != "" {
		parsed, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return fmt.Errorf("invalid --at %q: %w", opts.at, err)
		}
		at = parsed
	}
	if opts.zone != "" {
		if _, err := time.LoadLocation(opts.zone); err != nil {
			return fmt.Errorf("invalid --tz %q: %w", opts.zone, err)
		}
	}

	week := hours.ParseText(text)
	local := hours.InZone(at, opts.zone)
	result := hours.Status(week, local)
	next, hasNext := hours.NextOpening(week, local)

	if opts.asJSON {
		payload := struct {
			hours.StatusResult
			At          time.Time      `json:"at"`
			NextOpening *hours.Opening `json:"next_opening,omitempty"`
		}{StatusResult: result, At: local}
		if !result.IsOpen && hasNext {
			payload.NextOpening = &next
		}
		return writeJSON(out, payload)
	}

	state := "Closed"
	if result.IsOpen {
		state = "Open"
	}
	fmt.Fprintf(out, "%s (%s)\n", state, result.NextChange)
	if !result.IsOpen && hasNext {
		fmt.Fprintf(out, "Next opening: %s at %s\n", next.DayName, hours.FormatMinutes(next.Interval.Open))
	}
	return nil
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
