// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skinkit/skinkit/internal/issue"
	"github.com/skinkit/skinkit/internal/survey"
	"github.com/skinkit/skinkit/pkg/theme"
)

var errNoSurveyStore = errors.New("no survey_store configured")

func newSurveyCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	surveyCmd := &cobra.Command{
		Use:   "survey",
		Short: "Manage survey theme assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// store opens the configured survey store or explains how to set one.
	store := func(cmd *cobra.Command) (*survey.FileStore, error) {
		s, err := app.newSession(cmd.Context(), rootFlags)
		if err != nil {
			return nil, err
		}
		if s.surveys == nil {
			return nil, issue.NewErrorContext().
				WithOperation("open survey store").
				WithSuggestion("Run 'skinkit config set survey_store <file.yaml>'").
				WithIssue(issue.SurveyStoreFailedId).
				Wrap(errNoSurveyStore).
				BuildError()
		}
		return s.surveys, nil
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List survey theme assignments",
		Args:  cobra.NoArgs,
	}
	listCmd.RunE = withDiagnostics(app, rootFlags, func(cmd *cobra.Command, _ []string) error {
		fs, err := store(cmd)
		if err != nil {
			return err
		}
		assignments, err := fs.List()
		if err != nil {
			return surveyStoreError(err, fs.Path())
		}
		for _, a := range assignments {
			fmt.Fprintf(app.stdout, "%s  %s\n", labelStyle.Render(a.SurveyID), PackageStyle.Render(a.Theme))
		}
		return nil
	})

	assignCmd := &cobra.Command{
		Use:   "assign <survey-id> <theme>",
		Short: "Assign a theme to a survey",
		Args:  cobra.ExactArgs(2),
	}
	assignCmd.RunE = withDiagnostics(app, rootFlags, func(cmd *cobra.Command, args []string) error {
		fs, err := store(cmd)
		if err != nil {
			return err
		}
		name := theme.FilterName(args[1])
		if err := fs.Assign(args[0], name); err != nil {
			return surveyStoreError(err, fs.Path())
		}
		fmt.Fprintf(app.stdout, "%s survey %s uses %s\n", SuccessStyle.Render("✓"), args[0], PackageStyle.Render(name))
		return nil
	})

	unassignCmd := &cobra.Command{
		Use:   "unassign <survey-id>",
		Short: "Remove a survey's theme assignment",
		Args:  cobra.ExactArgs(1),
	}
	unassignCmd.RunE = withDiagnostics(app, rootFlags, func(cmd *cobra.Command, args []string) error {
		fs, err := store(cmd)
		if err != nil {
			return err
		}
		if err := fs.Assign(args[0], ""); err != nil {
			return surveyStoreError(err, fs.Path())
		}
		return nil
	})

	surveyCmd.AddCommand(listCmd, assignCmd, unassignCmd)
	return surveyCmd
}

func surveyStoreError(err error, path string) error {
	if errors.Is(err, survey.ErrInvalidSurveyID) {
		return err
	}
	return issue.NewErrorContext().
		WithOperation("access survey store").
		WithResource(path).
		WithSuggestion("Check that the file is valid YAML with a top-level surveys map").
		WithIssue(issue.SurveyStoreFailedId).
		Wrap(err).
		BuildError()
}
