package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [root]",
		Short: "List files and finding counts",
		Long:  listLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Count(context.Background(), auditArgsFromConfig(args))
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
