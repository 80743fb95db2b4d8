// SPDX-License-Identifier: MPL-2.0

package theme

const (
	// DefaultThemeName is the standard theme used when a theme directory is missing.
	DefaultThemeName = "default"

	// PackagePrefix prefixes every theme's asset package name.
	PackagePrefix = "survey-template-"

	// templateSuffix names the package holding a theme's framework overrides.
	templateSuffix = "-template"
)

type (
	// FileEntry is one file declaration of a manifest file list.
	FileEntry struct {
		// File is the file shipped by the theme. It may be empty for an entry
		// that only removes a file.
		File string
		// Replace names a file of the ancestor (or framework) package that File
		// supersedes; that file is removed from the ancestor package.
		Replace string
		// Remove drops File from the ancestor package without shipping a replacement.
		Remove bool
	}

	// FileSet is a pair of CSS and JS file lists.
	FileSet struct {
		CSS []FileEntry
		JS  []FileEntry
	}

	// CSSFramework describes the base framework a theme builds on and the
	// per-direction overrides it applies to the framework packages.
	CSSFramework struct {
		Name string
		CSS  []FileEntry
		JS   []FileEntry
		LTR  *FileSet
		RTL  *FileSet
	}

	// PackageDeclarations are the extra registry packages a theme depends on.
	PackageDeclarations struct {
		Base []string
		LTR  []string
		RTL  []string
	}

	// Descriptor is a fully resolved theme. Every ancestor is itself a
	// resolved Descriptor reachable through Mother.
	Descriptor struct {
		Name string
		// Path is the directory the manifest was loaded from.
		Path string
		// IsStandard is true for themes listed in the standard theme registry.
		IsStandard bool
		Manifest   *Manifest
		// Mother is the resolved ancestor, nil at the root of the chain.
		Mother *Descriptor

		// Fallback fields: nearest value walking from this level to the root.
		APIVersion int
		ViewPath   string
		FilesPath  string
		SiteLogo   string

		// Per-level fields, never inherited.
		CSSFramework *CSSFramework
		Packages     PackageDeclarations

		// Depends is the ordered package dependency list, computed last.
		Depends []string
		// PackageName is "survey-template-<Name>".
		PackageName string
		TemplateURL string
		Direction   Direction
	}
)

// Set returns the override set for dir, or nil when the manifest has none.
func (f *CSSFramework) Set(dir Direction) *FileSet {
	if f == nil {
		return nil
	}
	if dir == RTL {
		return f.RTL
	}
	return f.LTR
}

// Set returns the declared packages for dir.
func (p PackageDeclarations) Set(dir Direction) []string {
	if dir == RTL {
		return p.RTL
	}
	return p.LTR
}

// Chain returns the names from d to the root of its inheritance chain.
func (d *Descriptor) Chain() []string {
	var names []string
	for cur := d; cur != nil; cur = cur.Mother {
		names = append(names, cur.Name)
	}
	return names
}

// PathAlias is the registry alias under which the theme directory is published.
func (d *Descriptor) PathAlias() string {
	return "survey.template-" + d.Name + ".path"
}

// ViewPathAlias is the registry alias for the theme's view directory.
func (d *Descriptor) ViewPathAlias() string {
	return "survey.template-" + d.Name + ".viewpath"
}

// PackageNameFor returns the asset package name of a theme.
func PackageNameFor(name string) string {
	return PackagePrefix + name
}
