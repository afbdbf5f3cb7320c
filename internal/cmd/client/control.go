package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chenxiaowo/ktrace/internal/trace"
)

// NewTraceCommand constructs the `trace` command group and subcommands.
func NewTraceCommand(baseURL BaseURLFunc) *cobra.Command {
	traceCmd := &cobra.Command{Use: "trace", Short: "Trace session operations"}

	traceCmd.AddCommand(
		newTraceStartCommand(baseURL),
		newTraceStopCommand(baseURL),
		newTraceRewindCommand(baseURL),
		newTraceStatusCommand(baseURL),
		newTraceDumpCommand(baseURL),
	)

	return traceCmd
}

// newTraceStartCommand constructs the `trace start` subcommand.
func newTraceStartCommand(baseURL BaseURLFunc) *cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a trace session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			groups, _ := cmd.Flags().GetStringSlice("group")
			body := map[string]any{"action": "start"}
			if len(groups) > 0 {
				body["groups"] = groups
			}
			if err := postJSON(cmd.Context(), baseURL()+"/v1/trace/control", body, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
	startCmd.Flags().StringSliceP("group", "g", nil,
		"Group to enable (repeatable; default all): "+strings.Join(trace.GroupNames(), "|"))
	return startCmd
}

// newTraceStopCommand constructs the `trace stop` subcommand.
func newTraceStopCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the trace session and freeze the readable size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body := map[string]any{"action": "stop"}
			if err := postJSON(cmd.Context(), baseURL()+"/v1/trace/control", body, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
}

// newTraceRewindCommand constructs the `trace rewind` subcommand.
func newTraceRewindCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "rewind",
		Short: "Discard recorded events and reset the write cursor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body := map[string]any{"action": "rewind"}
			if err := postJSON(cmd.Context(), baseURL()+"/v1/trace/control", body, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
}

// newTraceStatusCommand constructs the `trace status` subcommand.
func newTraceStatusCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the trace session snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out map[string]any
			if err := getJSON(cmd.Context(), baseURL()+"/v1/trace/status", &out); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
