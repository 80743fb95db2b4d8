// SPDX-License-Identifier: MPL-2.0

package theme

// DefaultCorePackage is the core package every theme depends on.
const DefaultCorePackage = "survey-public"

// DependencyBuilder computes a theme's ordered package dependency list.
type DependencyBuilder struct {
	frameworks  *FrameworkBuilder
	corePackage string
}

// NewDependencyBuilder creates a builder. An empty corePackage selects
// DefaultCorePackage.
func NewDependencyBuilder(frameworks *FrameworkBuilder, corePackage string) *DependencyBuilder {
	if corePackage == "" {
		corePackage = DefaultCorePackage
	}
	return &DependencyBuilder{frameworks: frameworks, corePackage: corePackage}
}

// Build returns, in this order: the direction-agnostic framework packages,
// the framework packages for d.Direction, the core package, the packages the
// manifest declares, the packages it declares for d.Direction, and the
// mother's package. Order is cascade precedence; the list is neither sorted
// nor de-duplicated.
func (b *DependencyBuilder) Build(d *Descriptor) ([]string, error) {
	var deps []string

	base, err := b.frameworks.Build(d, nil)
	if err != nil {
		return nil, err
	}
	deps = append(deps, base...)

	dir := d.Direction
	directional, err := b.frameworks.Build(d, &dir)
	if err != nil {
		return nil, err
	}
	deps = append(deps, directional...)

	deps = append(deps, b.corePackage)
	deps = append(deps, d.Packages.Base...)
	deps = append(deps, d.Packages.Set(dir)...)

	if d.Mother != nil {
		deps = append(deps, d.Mother.PackageName)
	}
	return deps, nil
}
