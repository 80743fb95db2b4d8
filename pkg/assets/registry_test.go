// SPDX-License-Identifier: MPL-2.0

package assets

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryRegistry_PublishReplaces(t *testing.T) {
	t.Parallel()

	reg := NewMemoryRegistry()
	reg.Publish(PackageSpec{Name: "a", CSS: []string{"one.css"}})
	reg.Publish(PackageSpec{Name: "a", CSS: []string{"two.css"}})

	got, ok := reg.Package("a")
	if !ok {
		t.Fatal("package a not found")
	}
	if diff := cmp.Diff([]string{"two.css"}, got.CSS); diff != "" {
		t.Errorf("CSS mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryRegistry_PackageReturnsCopy(t *testing.T) {
	t.Parallel()

	reg := NewMemoryRegistry()
	reg.Publish(PackageSpec{Name: "a", CSS: []string{"a.css"}})

	got, _ := reg.Package("a")
	got.CSS[0] = "mutated.css"

	again, _ := reg.Package("a")
	if again.CSS[0] != "a.css" {
		t.Errorf("registry state changed through returned copy: %v", again.CSS)
	}
}

func TestMemoryRegistry_RemoveFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pkg     string
		kind    Kind
		file    string
		wantOK  bool
		wantCSS []string
		wantJS  []string
	}{
		{"css hit", "b", KindCSS, "x.css", true, []string{"y.css"}, []string{"x.js"}},
		{"js hit", "b", KindJS, "x.js", true, []string{"x.css", "y.css"}, []string{}},
		{"miss", "b", KindCSS, "z.css", false, []string{"x.css", "y.css"}, []string{"x.js"}},
		{"missing package", "nope", KindCSS, "x.css", false, []string{"x.css", "y.css"}, []string{"x.js"}},
		{"empty file", "b", KindCSS, "", false, []string{"x.css", "y.css"}, []string{"x.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := NewMemoryRegistry()
			reg.Publish(PackageSpec{Name: "b", CSS: []string{"x.css", "y.css"}, JS: []string{"x.js"}})

			if got := reg.RemoveFile(tt.pkg, tt.kind, tt.file); got != tt.wantOK {
				t.Errorf("RemoveFile() = %v, want %v", got, tt.wantOK)
			}
			spec, _ := reg.Package("b")
			if diff := cmp.Diff(tt.wantCSS, spec.CSS); diff != "" {
				t.Errorf("CSS mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantJS, spec.JS); diff != "" {
				t.Errorf("JS mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMemoryRegistry_TransactRollback(t *testing.T) {
	t.Parallel()

	reg := NewMemoryRegistry()
	reg.Publish(PackageSpec{Name: "bootstrap", CSS: []string{"bootstrap.css", "theme.css"}})

	boom := errors.New("boom")
	err := reg.Transact(func(s Store) error {
		s.RemoveFile("bootstrap", KindCSS, "theme.css")
		s.Publish(PackageSpec{Name: "extra"})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transact() error = %v, want %v", err, boom)
	}

	if reg.HasPackage("extra") {
		t.Error("package published inside failed transaction survived rollback")
	}
	spec, _ := reg.Package("bootstrap")
	if diff := cmp.Diff([]string{"bootstrap.css", "theme.css"}, spec.CSS); diff != "" {
		t.Errorf("CSS after rollback (-want +got):\n%s", diff)
	}
}

func TestMemoryRegistry_TransactCommit(t *testing.T) {
	t.Parallel()

	reg := NewMemoryRegistry()
	reg.Publish(PackageSpec{Name: "bootstrap", CSS: []string{"bootstrap.css", "theme.css"}})

	err := reg.Transact(func(s Store) error {
		if !s.HasPackage("bootstrap") {
			t.Error("HasPackage inside transaction = false")
		}
		s.RemoveFile("bootstrap", KindCSS, "theme.css")
		return nil
	})
	if err != nil {
		t.Fatalf("Transact() error = %v", err)
	}

	spec, _ := reg.Package("bootstrap")
	if diff := cmp.Diff([]string{"bootstrap.css"}, spec.CSS); diff != "" {
		t.Errorf("CSS after commit (-want +got):\n%s", diff)
	}
}

func TestMemoryRegistry_ScriptsIdempotent(t *testing.T) {
	t.Parallel()

	reg := NewMemoryRegistry()
	reg.RegisterScript(Script{URL: "/scripts/deactivatedebug.js", Position: PositionEnd})
	reg.RegisterScript(Script{URL: "/scripts/deactivatedebug.js", Position: PositionHead})
	reg.RegisterScript(Script{URL: "/scripts/other.js", Position: PositionBegin})

	want := []Script{
		{URL: "/scripts/deactivatedebug.js", Position: PositionEnd},
		{URL: "/scripts/other.js", Position: PositionBegin},
	}
	if diff := cmp.Diff(want, reg.Scripts()); diff != "" {
		t.Errorf("Scripts() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryRegistry_AliasesAndPackagesSorted(t *testing.T) {
	t.Parallel()

	reg := NewMemoryRegistry()
	reg.SetAlias("survey.template-vanilla.path", "/themes/vanilla")
	if got, ok := reg.Alias("survey.template-vanilla.path"); !ok || got != "/themes/vanilla" {
		t.Errorf("Alias() = %q, %v", got, ok)
	}
	if _, ok := reg.Alias("missing"); ok {
		t.Error("Alias(missing) reported ok")
	}

	reg.Publish(PackageSpec{Name: "zeta"})
	reg.Publish(PackageSpec{Name: "alpha"})
	var names []string
	for _, p := range reg.Packages() {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"alpha", "zeta"}, names); diff != "" {
		t.Errorf("Packages() order (-want +got):\n%s", diff)
	}
}

func TestMemoryRegistry_ConcurrentPublish(t *testing.T) {
	t.Parallel()

	reg := NewMemoryRegistry()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := string(rune('a' + i))
			reg.Publish(PackageSpec{Name: name})
			_ = reg.HasPackage(name)
		}()
	}
	wg.Wait()

	if got := len(reg.Packages()); got != 16 {
		t.Errorf("len(Packages()) = %d, want 16", got)
	}
}

func TestWithout(t *testing.T) {
	t.Parallel()

	got := Without([]string{"a", "b", "a", "c"}, []string{"a"})
	if diff := cmp.Diff([]string{"b", "c"}, got); diff != "" {
		t.Errorf("Without() mismatch (-want +got):\n%s", diff)
	}
}
