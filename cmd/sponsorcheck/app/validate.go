package app

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/sponsorcheck/internal/cms"
	"github.com/agentstation/sponsorcheck/internal/cmd/output"
	"github.com/agentstation/sponsorcheck/internal/directory"
	"github.com/agentstation/sponsorcheck/internal/reference"
	"github.com/agentstation/sponsorcheck/pkg/errors"
	"github.com/agentstation/sponsorcheck/pkg/reconcile"
	"github.com/agentstation/sponsorcheck/pkg/report"
)

// runValidate executes the reconciliation pipeline: config check, sponsor
// fetch, batched directory lookup, join, report, CSV export.
func (a *App) runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := a.config.ValidateRequired(); err != nil {
		return err
	}

	format, err := resolveFormat(a.config.Format)
	if err != nil {
		return err
	}

	table, err := reference.Load()
	if err != nil {
		return err
	}

	cmsClient := cms.New(
		a.config.ProjectID,
		a.config.Dataset,
		a.config.Token,
		a.config.Perspective,
		cms.WithLogger(a.logger),
	)
	sponsors, err := cmsClient.FetchSponsors(ctx)
	if err != nil {
		// Fatal: no report without the sponsor source.
		return err
	}

	slugs := reference.Slugs(table)
	dirClient := directory.New(a.config.DirectoryEndpoint, directory.WithLogger(a.logger))
	profiles := dirClient.FetchProfiles(ctx, slugs)

	// Fill in tag names the profiles query did not resolve inline.
	details := dirClient.FetchTagDetails(ctx, directory.UnnamedTagIDs(profiles))
	directory.ResolveTagNames(profiles, details)

	result := reconcile.New(sponsors.Titles(), table, profiles)

	if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	// The CSV export is best-effort; the console report already went out.
	if path, err := report.WriteCSV(result, workingDir(), time.Now()); err != nil {
		a.logger.Warn().Err(err).Msg("csv export failed")
	} else {
		a.logger.Info().Str("path", path).Msg("wrote csv export")
	}

	if !result.Valid() {
		return errors.ErrDiscrepancies
	}
	return nil
}

// resolveFormat validates an explicit --format value and falls back to
// terminal detection when none was given: the console report on a TTY, JSON
// for pipes and redirects.
func resolveFormat(explicit string) (output.Format, error) {
	format, err := output.ParseFormat(explicit)
	if err != nil {
		return "", err
	}
	if format == "" {
		format = output.DetectFormat("")
	}
	return format, nil
}

// workingDir returns the directory the CSV export lands in.
func workingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
