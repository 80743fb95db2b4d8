// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestParseErrorId
	MissingAttributeId
	ThemeCycleId
	ThemeFallbackId
	ConfigLoadFailedId
	PackageCycleId
	SurveyStoreFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue as terminal Markdown. stylePath is a glamour
// style name ("dark", "light", "notty") or a path to a style JSON file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# Theme manifest not found!

The theme directory exists but neither ` + "`config.xml`" + ` nor ` + "`manifest.cue`" + ` could be found,
not even in the standard theme root.

## Things you can try:
- Reinstall the theme, or copy its manifest back into place
- Check the configured roots:
~~~
$ skinkit config show
~~~
- Point the survey at a built-in theme such as ` + "`default`",
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse theme manifest!

The manifest is not structurally valid, so the theme cannot be rendered.

## Common issues:
- Unclosed XML elements or a stray DOCTYPE declaring entities
- Wrong value types in ` + "`manifest.cue`" + ` (apiVersion must be an integer)

## Things you can try:
- Run with verbose mode for the full error chain:
~~~
$ skinkit --verbose resolve <theme>
~~~`,
		docLinks: []HttpLink{"https://owasp.org/www-community/vulnerabilities/XML_External_Entity_(XXE)_Processing"},
	}

	missingAttributeIssue = &Issue{
		id: MissingAttributeId,
		mdMsg: `
# Required theme attribute missing!

Some attributes (such as ` + "`metadatas.apiVersion`" + `) may be omitted by a child theme,
but at least one theme in the ` + "`extends`" + ` chain must define them.

## Things you can try:
- Add ` + "`<apiVersion>3</apiVersion>`" + ` to the root theme's ` + "`metadatas`",
	}

	themeCycleIssue = &Issue{
		id: ThemeCycleId,
		mdMsg: `
# Theme inheritance cycle!

A theme extends itself, directly or through its ancestors.

## Things you can try:
- Inspect the ` + "`metadatas.extends`" + ` value of every theme named in the error
- Make the root theme of the chain declare no ` + "`extends`",
	}

	themeFallbackIssue = &Issue{
		id: ThemeFallbackId,
		mdMsg: `
# Theme replaced by the default theme

The requested theme directory does not exist, so the built-in ` + "`default`" + ` theme
was used instead. When no survey was involved, the global default theme setting
was reset to ` + "`default`" + `.

## Things you can try:
- Restore the missing theme directory
- Set the default theme again:
~~~
$ skinkit config set default_theme <theme>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Check the syntax of ` + "`config.cue`" + `
- Recreate a default configuration:
~~~
$ skinkit config init
~~~`,
	}

	packageCycleIssue = &Issue{
		id: PackageCycleId,
		mdMsg: `
# Asset package dependency cycle!

Two or more registered packages depend on each other, so no load order exists.

## Things you can try:
- Inspect the ` + "`depends`" + ` lists of the packages named in the error
- Export the registry to see every package:
~~~
$ skinkit packages --format yaml <theme>
~~~`,
	}

	surveyStoreFailedIssue = &Issue{
		id: SurveyStoreFailedId,
		mdMsg: `
# Failed to read the survey store!

The theme assigned to the survey could not be looked up.

## Things you can try:
- Check the ` + "`survey_store`" + ` path in the configuration
- Pass the theme name explicitly instead of a survey id`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():   manifestNotFoundIssue,
		manifestParseErrorIssue.Id(): manifestParseErrorIssue,
		missingAttributeIssue.Id():   missingAttributeIssue,
		themeCycleIssue.Id():         themeCycleIssue,
		themeFallbackIssue.Id():      themeFallbackIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		packageCycleIssue.Id():       packageCycleIssue,
		surveyStoreFailedIssue.Id():  surveyStoreFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	values := slices.Collect(maps.Values(issues))
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id - b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
