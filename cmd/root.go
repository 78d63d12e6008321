// Package cmd provides the root command and CLI setup for unwrapaudit.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"unwrapaudit.dev/pkg/unwrapaudit/internal/adapter"
	"unwrapaudit.dev/pkg/unwrapaudit/internal/controller"
	"unwrapaudit.dev/pkg/unwrapaudit/internal/domain"
	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var ui controller.UI
var workflow domain.Workflow

// reportsOutputDirFlag is a root-level flag shared by commands that
// read/write reports.
var reportsOutputDirFlag string

// verboseFlag lowers the log level to debug when set.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	ui = controller.NewUI(os.Stdout, controller.IsTTY(os.Stdout))
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui)
}

const rootLongDescription = `unwrapaudit walks a Rust source tree and reports every .unwrap() call
that appears outside test code, so risky unwraps can be triaged before
they panic in production.

The scan skips build output directories (target/), disabled files, and
code inside #[cfg(test)] / #[test] blocks. Matching is lexical: string
literals and multi-line comments are not understood, so the report is a
best-effort audit, not a sound analysis.`

const listLongDescription = `List scanned files and the number of findings per file.

The scan root defaults to the configured value (crates) and may be given
as a positional argument.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unwrapaudit [root]",
		Short: "Audit Rust sources for non-test .unwrap() calls",
		Long:  rootLongDescription,
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(verboseFlagName))
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Audit(context.Background(), auditArgsFromConfig(args))
		},
	}
}

// auditArgsFromConfig builds the workflow arguments from config plus the
// optional positional scan root.
func auditArgsFromConfig(args []string) domain.AuditArgs {
	rootArg := ""
	if len(args) > 0 {
		rootArg = args[0]
	}

	return domain.AuditArgs{
		Options: scanOptionsFromConfig(rootArg),
		Threads: viper.GetInt(scanParallelKey),
		Reports: m.Path(viper.GetString(outputFlagName)),
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"directory for persisting audit reports (empty: print only)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), verboseFlagName)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values
// feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
