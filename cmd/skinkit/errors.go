// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/skinkit/skinkit/internal/config"
	"github.com/skinkit/skinkit/internal/dag"
	"github.com/skinkit/skinkit/internal/issue"
	"github.com/skinkit/skinkit/pkg/theme"
)

// explain turns a domain error into an ActionableError carrying the catalog
// entry and suggestions that match it. Errors that already are actionable
// pass through unchanged.
func explain(err error, operation, resource string) error {
	if err == nil {
		return nil
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}

	ec := issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		Wrap(err)

	switch {
	case errors.Is(err, theme.ErrManifestNotFound):
		ec.WithIssue(issue.ManifestNotFoundId).
			WithSuggestion("Add a config.xml or manifest.cue to the theme directory")
	case errors.Is(err, theme.ErrManifestParse):
		ec.WithIssue(issue.ManifestParseErrorId).
			WithSuggestion("Fix the manifest syntax; DOCTYPE entity declarations are rejected")
	case errors.Is(err, theme.ErrMissingRequiredAttribute):
		ec.WithIssue(issue.MissingAttributeId).
			WithSuggestion("Declare metadatas/apiVersion in the theme or one of its ancestors")
	case errors.Is(err, theme.ErrCycleDetected):
		ec.WithIssue(issue.ThemeCycleId).
			WithSuggestion("Remove or change the extends entry that closes the loop")
	default:
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			ec.WithIssue(issue.PackageCycleId).
				WithSuggestion("Check the depends lists of the packages named in the cycle")
		}
	}
	return ec.BuildError()
}

// renderDiagnostics prints the extra context of an actionable error: the
// full error chain in verbose mode and the linked catalog entry. The error
// line itself is printed by fang.
func renderDiagnostics(w io.Writer, err error, verbose bool, scheme config.ColorScheme) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	if verbose {
		fmt.Fprintln(w, VerboseStyle.Render(ae.Format(true)))
	}
	if ae.IssueID == 0 {
		return
	}
	entry := issue.Get(ae.IssueID)
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render(scheme.GlamourStyle())
	if renderErr != nil {
		fmt.Fprintln(w, WarningStyle.Render("could not render help: ")+renderErr.Error())
		return
	}
	fmt.Fprint(w, rendered)
}
