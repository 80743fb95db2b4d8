// SPDX-License-Identifier: MPL-2.0

package assets

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/skinkit/skinkit/internal/dag"
)

func TestLoadOrder(t *testing.T) {
	t.Parallel()

	reg := NewMemoryRegistry()
	reg.Publish(PackageSpec{Name: "bootstrap", CSS: []string{"bootstrap.css"}})
	reg.Publish(PackageSpec{Name: "survey-public", CSS: []string{"survey.css"}})
	reg.Publish(PackageSpec{Name: "survey-template-mother", Depends: []string{"bootstrap", "survey-public"}})
	reg.Publish(PackageSpec{Name: "survey-template-child", Depends: []string{"bootstrap", "survey-public", "survey-template-mother"}})

	got, err := LoadOrder(reg, "survey-template-child")
	if err != nil {
		t.Fatalf("LoadOrder() error = %v", err)
	}
	want := []string{"bootstrap", "survey-public", "survey-template-mother", "survey-template-child"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadOrder() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOrder_Unregistered(t *testing.T) {
	t.Parallel()

	if _, err := LoadOrder(NewMemoryRegistry(), "ghost"); err == nil {
		t.Fatal("LoadOrder() expected error for unregistered package")
	}
}

func TestLoadOrder_Cycle(t *testing.T) {
	t.Parallel()

	reg := NewMemoryRegistry()
	reg.Publish(PackageSpec{Name: "a", Depends: []string{"b"}})
	reg.Publish(PackageSpec{Name: "b", Depends: []string{"a"}})

	_, err := LoadOrder(reg, "a")
	var cycleErr *dag.CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("LoadOrder() error = %v, want *dag.CycleError", err)
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	reg := NewMemoryRegistry()
	reg.Publish(PackageSpec{Name: "bootstrap", BaseURL: "/assets/bootstrap/", CSS: []string{"bootstrap.css"}, JS: []string{"bootstrap.js"}})
	reg.Publish(PackageSpec{Name: "theme", BaseURL: "/themes/vanilla", CSS: []string{"css/theme.css"}, Depends: []string{"bootstrap", "ghost"}})

	got, err := Flatten(reg, "theme")
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	want := Bundle{
		Packages: []string{"bootstrap", "ghost", "theme"},
		CSS:      []string{"/assets/bootstrap/bootstrap.css", "/themes/vanilla/css/theme.css"},
		JS:       []string{"/assets/bootstrap/bootstrap.js"},
		Missing:  []string{"ghost"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}
