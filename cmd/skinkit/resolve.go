// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skinkit/skinkit/pkg/assets"
	"github.com/skinkit/skinkit/pkg/theme"
)

type (
	// resolveReport is the structured output of `skinkit resolve`.
	resolveReport struct {
		Theme       string   `json:"theme" yaml:"theme" toml:"theme"`
		Package     string   `json:"package" yaml:"package" toml:"package"`
		Chain       []string `json:"chain" yaml:"chain" toml:"chain"`
		Direction   string   `json:"direction" yaml:"direction" toml:"direction"`
		APIVersion  int      `json:"apiVersion" yaml:"apiVersion" toml:"apiVersion"`
		Path        string   `json:"path" yaml:"path" toml:"path"`
		ViewPath    string   `json:"viewPath" yaml:"viewPath" toml:"viewPath"`
		FilesPath   string   `json:"filesPath" yaml:"filesPath" toml:"filesPath"`
		TemplateURL string   `json:"templateUrl" yaml:"templateUrl" toml:"templateUrl"`
		SiteLogo    string   `json:"siteLogo,omitempty" yaml:"siteLogo,omitempty" toml:"siteLogo,omitempty"`
		Depends     []string `json:"depends" yaml:"depends" toml:"depends"`
		LoadOrder   []string `json:"loadOrder" yaml:"loadOrder" toml:"loadOrder"`
		CSS         []string `json:"css" yaml:"css" toml:"css"`
		JS          []string `json:"js" yaml:"js" toml:"js"`
		Missing     []string `json:"missing,omitempty" yaml:"missing,omitempty" toml:"missing,omitempty"`
	}

	resolveFlagValues struct {
		surveyID string
		format   string
	}
)

func newResolveCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &resolveFlagValues{}
	cmd := &cobra.Command{
		Use:   "resolve [theme]",
		Short: "Resolve a theme and publish its packages",
		Long: `Resolve a theme through its extends chain and show the merged result.

Without a theme name the survey's theme (--survey) or the configured
default theme is used. A theme directory that does not exist falls back
to the built-in default theme.`,
		Args: cobra.MaximumNArgs(1),
	}
	cmd.RunE = withDiagnostics(app, rootFlags, func(cmd *cobra.Command, args []string) error {
		s, err := app.newSession(cmd.Context(), rootFlags)
		if err != nil {
			return err
		}
		req := theme.Request{SurveyID: flags.surveyID}
		if len(args) == 1 {
			req.Name = args[0]
		}

		d, err := s.resolver.Resolve(cmd.Context(), req)
		if err != nil {
			return explain(err, "resolve theme", strings.Join(args, ""))
		}
		report, err := buildReport(s.registry, d)
		if err != nil {
			return explain(err, "order packages", d.PackageName)
		}

		if flags.format == "" || flags.format == "text" {
			printReport(app.stdout, report)
			return nil
		}
		format, err := assets.ParseFormat(flags.format)
		if err != nil {
			return err
		}
		return assets.Encode(app.stdout, report, format)
	})

	cmd.Flags().StringVar(&flags.surveyID, "survey", "", "resolve the theme assigned to this survey")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, yaml, toml or json")
	return cmd
}

// buildReport flattens the published package of d.
func buildReport(store assets.Store, d *theme.Descriptor) (resolveReport, error) {
	bundle, err := assets.Flatten(store, d.PackageName)
	if err != nil {
		return resolveReport{}, err
	}
	return resolveReport{
		Theme:       d.Name,
		Package:     d.PackageName,
		Chain:       d.Chain(),
		Direction:   d.Direction.String(),
		APIVersion:  d.APIVersion,
		Path:        d.Path,
		ViewPath:    d.ViewPath,
		FilesPath:   d.FilesPath,
		TemplateURL: d.TemplateURL,
		SiteLogo:    d.SiteLogo,
		Depends:     d.Depends,
		LoadOrder:   bundle.Packages,
		CSS:         bundle.CSS,
		JS:          bundle.JS,
		Missing:     bundle.Missing,
	}, nil
}

func printReport(w io.Writer, r resolveReport) {
	fmt.Fprintln(w, TitleStyle.Render(r.Theme)+" "+SubtitleStyle.Render("("+r.Package+")"))

	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintln(w, "  "+labelStyle.Render(label)+value)
	}
	field("chain", strings.Join(r.Chain, " -> "))
	field("direction", r.Direction)
	field("api version", fmt.Sprint(r.APIVersion))
	field("path", r.Path)
	field("views", r.ViewPath)
	field("files", r.FilesPath)
	field("url", r.TemplateURL)
	field("logo", r.SiteLogo)
	field("depends", PackageStyle.Render(strings.Join(r.Depends, ", ")))

	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Load order:"))
	for i, pkg := range r.LoadOrder {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, PackageStyle.Render(pkg))
	}
	for _, section := range []struct {
		title string
		files []string
	}{{"CSS:", r.CSS}, {"JS:", r.JS}} {
		if len(section.files) == 0 {
			continue
		}
		fmt.Fprintln(w, SubtitleStyle.Render(section.title))
		for _, f := range section.files {
			fmt.Fprintln(w, "  "+VerboseStyle.Render(f))
		}
	}
	if len(r.Missing) > 0 {
		fmt.Fprintln(w, WarningStyle.Render("Unregistered packages: ")+strings.Join(r.Missing, ", "))
	}
}
