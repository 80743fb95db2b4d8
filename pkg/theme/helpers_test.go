// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"context"
	"testing"

	"github.com/skinkit/skinkit/internal/testutil"
	"github.com/skinkit/skinkit/pkg/assets"
)

type (
	fakeDefaults struct {
		name  string
		saved []string
	}

	fakeSurveys map[string]string
)

func (f *fakeDefaults) DefaultTheme() string { return f.name }

func (f *fakeDefaults) SetDefaultTheme(name string) error {
	f.name = name
	f.saved = append(f.saved, name)
	return nil
}

func (f fakeSurveys) ThemeFor(_ context.Context, id string) (string, bool, error) {
	theme, ok := f[id]
	return theme, ok, nil
}

// seededRegistry returns a registry holding the framework and core packages.
func seededRegistry() *assets.MemoryRegistry {
	reg := assets.NewMemoryRegistry()
	reg.Publish(assets.PackageSpec{Name: "bootstrap", CSS: []string{"theme.css", "grid.css"}, JS: []string{"bootstrap.js", "popover.js"}})
	reg.Publish(assets.PackageSpec{Name: "bootstrap-ltr", Depends: []string{"bootstrap"}})
	reg.Publish(assets.PackageSpec{Name: "bootstrap-rtl", CSS: []string{"bootstrap-rtl.css"}, Depends: []string{"bootstrap"}})
	reg.Publish(assets.PackageSpec{Name: "survey-public", CSS: []string{"survey.css"}})
	return reg
}

// newTree creates a theme tree whose standard root already holds "default".
func newTree(t *testing.T) *testutil.ThemeTree {
	t.Helper()
	tree := testutil.NewThemeTree(t)
	tree.AddStandard(DefaultThemeName, testutil.ManifestXML("", "3", `<files><css><filename>css/default.css</filename></css></files>`))
	return tree
}

func testOptions(tree *testutil.ThemeTree) Options {
	return Options{
		StandardRoot:      tree.StandardRoot,
		UserRoot:          tree.UserRoot,
		StandardURL:       "/themes/core",
		UserURL:           "/upload/themes",
		StandardThemes:    []string{DefaultThemeName, "vanilla"},
		Language:          "en",
		GeneralScriptsURL: "/assets/scripts/",
	}
}

func mustResolve(t *testing.T, r *Resolver, req Request) *Descriptor {
	t.Helper()
	d, err := r.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("Resolve(%+v) error = %v", req, err)
	}
	return d
}
