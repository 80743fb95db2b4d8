// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/skinkit/skinkit/pkg/assets"
)

func frameworkDescriptor(fw *CSSFramework) *Descriptor {
	return &Descriptor{
		Name:         "fruity",
		CSSFramework: fw,
		PackageName:  PackageNameFor("fruity"),
		TemplateURL:  "/upload/themes/fruity/",
		Direction:    LTR,
	}
}

func TestFrameworkBuilder_NoFramework(t *testing.T) {
	t.Parallel()

	b := NewFrameworkBuilder(seededRegistry(), nil)
	for _, fw := range []*CSSFramework{nil, {Name: ""}, {Name: "foundation"}} {
		got, err := b.Build(frameworkDescriptor(fw), nil)
		if err != nil {
			t.Fatalf("Build(%+v) error = %v", fw, err)
		}
		if got != nil {
			t.Errorf("Build(%+v) = %v, want nil", fw, got)
		}
	}
}

func TestFrameworkBuilder_NoOverrides(t *testing.T) {
	t.Parallel()

	reg := seededRegistry()
	b := NewFrameworkBuilder(reg, nil)
	d := frameworkDescriptor(&CSSFramework{Name: "bootstrap"})

	got, err := b.Build(d, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if diff := cmp.Diff([]string{"bootstrap"}, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}

	rtl := RTL
	got, err = b.Build(d, &rtl)
	if err != nil {
		t.Fatalf("Build(rtl) error = %v", err)
	}
	if diff := cmp.Diff([]string{"bootstrap-rtl"}, got); diff != "" {
		t.Errorf("Build(rtl) mismatch (-want +got):\n%s", diff)
	}
	if reg.HasPackage("bootstrap-template") {
		t.Error("template package published without overrides")
	}
}

func TestFrameworkBuilder_Replace(t *testing.T) {
	t.Parallel()

	reg := seededRegistry()
	b := NewFrameworkBuilder(reg, nil)
	d := frameworkDescriptor(&CSSFramework{
		Name: "bootstrap",
		CSS:  []FileEntry{{File: "custom.css", Replace: "theme.css"}},
	})

	got, err := b.Build(d, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if diff := cmp.Diff([]string{"bootstrap-template"}, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}

	base, _ := reg.Package("bootstrap")
	if diff := cmp.Diff([]string{"grid.css"}, base.CSS); diff != "" {
		t.Errorf("rewritten bootstrap CSS (-want +got):\n%s", diff)
	}

	tpl, ok := reg.Package("bootstrap-template")
	if !ok {
		t.Fatal("bootstrap-template not published")
	}
	want := assets.PackageSpec{
		Name:     "bootstrap-template",
		BaseURL:  "/upload/themes/fruity/",
		BasePath: "survey.template-fruity.path",
		CSS:      []string{"custom.css"},
		Depends:  []string{"bootstrap"},
	}
	if diff := cmp.Diff(want, tpl, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("bootstrap-template mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameworkBuilder_JSRemovalUsesJSList(t *testing.T) {
	t.Parallel()

	reg := seededRegistry()
	b := NewFrameworkBuilder(reg, nil)
	d := frameworkDescriptor(&CSSFramework{
		Name: "bootstrap",
		CSS:  []FileEntry{{File: "custom.css", Replace: "theme.css"}},
		JS:   []FileEntry{{File: "popover.js", Remove: true}},
	})

	if _, err := b.Build(d, nil); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	base, _ := reg.Package("bootstrap")
	if diff := cmp.Diff([]string{"bootstrap.js"}, base.JS); diff != "" {
		t.Errorf("rewritten bootstrap JS (-want +got):\n%s", diff)
	}
	tpl, _ := reg.Package("bootstrap-template")
	if len(tpl.JS) != 0 {
		t.Errorf("removed file shipped in template package: %v", tpl.JS)
	}
}

func TestFrameworkBuilder_DirectionalOverrides(t *testing.T) {
	t.Parallel()

	reg := seededRegistry()
	b := NewFrameworkBuilder(reg, nil)
	d := frameworkDescriptor(&CSSFramework{
		Name: "bootstrap",
		RTL:  &FileSet{CSS: []FileEntry{{File: "css/rtl.css", Replace: "bootstrap-rtl.css"}}},
	})

	base, err := b.Build(d, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if diff := cmp.Diff([]string{"bootstrap"}, base); diff != "" {
		t.Errorf("Build(nil) mismatch (-want +got):\n%s", diff)
	}

	ltr, rtl := LTR, RTL
	got, err := b.Build(d, &ltr)
	if err != nil {
		t.Fatalf("Build(ltr) error = %v", err)
	}
	if diff := cmp.Diff([]string{"bootstrap-ltr"}, got); diff != "" {
		t.Errorf("Build(ltr) mismatch (-want +got):\n%s", diff)
	}

	got, err = b.Build(d, &rtl)
	if err != nil {
		t.Fatalf("Build(rtl) error = %v", err)
	}
	if diff := cmp.Diff([]string{"bootstrap-rtl-template"}, got); diff != "" {
		t.Errorf("Build(rtl) mismatch (-want +got):\n%s", diff)
	}
	pkg, _ := reg.Package("bootstrap-rtl")
	if len(pkg.CSS) != 0 {
		t.Errorf("bootstrap-rtl CSS = %v, want empty", pkg.CSS)
	}
}

func TestFrameworkBuilder_Idempotent(t *testing.T) {
	t.Parallel()

	reg := seededRegistry()
	b := NewFrameworkBuilder(reg, nil)
	d := frameworkDescriptor(&CSSFramework{
		Name: "bootstrap",
		CSS:  []FileEntry{{File: "custom.css", Replace: "theme.css"}},
	})

	for range 3 {
		if _, err := b.Build(d, nil); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
	}

	base, _ := reg.Package("bootstrap")
	if diff := cmp.Diff([]string{"grid.css"}, base.CSS); diff != "" {
		t.Errorf("bootstrap CSS after repeated builds (-want +got):\n%s", diff)
	}

	// A base re-seeded behind the builder's back is rewritten again.
	reg.Publish(assets.PackageSpec{Name: "bootstrap", CSS: []string{"theme.css", "grid.css"}})
	if _, err := b.Build(d, nil); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	base, _ = reg.Package("bootstrap")
	if diff := cmp.Diff([]string{"grid.css"}, base.CSS); diff != "" {
		t.Errorf("bootstrap CSS after re-seed (-want +got):\n%s", diff)
	}
}

func TestOverrideDigest(t *testing.T) {
	t.Parallel()

	a := overrideDigest("bootstrap", []FileEntry{{File: "a.css", Replace: "b.css"}}, nil)
	b := overrideDigest("bootstrap", []FileEntry{{File: "a.css", Replace: "b.css"}}, nil)
	c := overrideDigest("bootstrap", nil, []FileEntry{{File: "a.css", Replace: "b.css"}})
	d := overrideDigest("bootstrap-rtl", []FileEntry{{File: "a.css", Replace: "b.css"}}, nil)

	if a != b {
		t.Error("equal override sets produced different digests")
	}
	if a == c || a == d {
		t.Error("different override sets produced equal digests")
	}
}
