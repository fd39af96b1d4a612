package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command, the core reconciliation run.
func (a *App) NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Reconcile CMS sponsors against the reference table and directory",
		Long: `Validate fetches all sponsor entries from the CMS, diffs their titles
against the reference table, looks up every referenced slug in the profile
directory (in batches of 50), and reports the outcome.

Outputs a console report (or --format json/yaml) and writes
sponsor-validation-<date>.csv into the working directory.

Exit status is 0 when the sponsor list and the reference table match,
1 otherwise.`,
		Args: cobra.NoArgs,
		RunE: a.runValidate,
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sponsorcheck %s (commit %s, built %s)\n",
				a.version, a.commit, a.date)
		},
	}
}
