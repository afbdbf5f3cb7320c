package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the ktrace client.
// It registers the trace command group.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "ktrace",
		Short: "ktrace client commands",
	}
	root.AddCommand(NewTraceCommand(baseURL))
	return root
}
