package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"unwrapaudit.dev/pkg/unwrapaudit/internal/domain"
	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

// errNoReportsDir is returned when view is invoked without a configured
// reports directory.
var errNoReportsDir = errors.New("no reports directory configured; pass --output or set it in " + configFileName)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously saved audit report",
		Long:  "View a previously saved audit report from the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			if reportsPath == "" {
				return errNoReportsDir
			}

			return workflow.View(context.Background(), domain.ViewArgs{Reports: reportsPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
