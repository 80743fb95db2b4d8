// SPDX-License-Identifier: MPL-2.0

package assets

import (
	"maps"
	"slices"
	"sync"
)

type (
	// Store is the package-level contract theme resolution relies on.
	Store interface {
		// HasPackage reports whether a package with this name is published.
		HasPackage(name string) bool
		// Package returns a copy of the named spec.
		Package(name string) (PackageSpec, bool)
		// Publish upserts spec by name.
		Publish(spec PackageSpec)
		// RemoveFile drops every occurrence of file from the named package's
		// kind list. It reports whether anything was removed; a missing package
		// is not an error.
		RemoveFile(name string, kind Kind, file string) bool
	}

	// Registry is a Store plus the alias, script and transaction facilities
	// used while assembling theme packages.
	Registry interface {
		Store
		// Transact runs fn with exclusive access to the packages. If fn
		// returns an error, every package change made through the Store it
		// received is rolled back.
		Transact(fn func(Store) error) error
		// SetAlias maps a path alias (e.g. "survey.template-vanilla.path") to a directory.
		SetAlias(alias, path string)
		// Alias resolves a path alias.
		Alias(alias string) (string, bool)
		// Aliases returns a copy of every alias.
		Aliases() map[string]string
		// RegisterScript adds a script once per URL.
		RegisterScript(script Script)
		// Scripts returns registered scripts in registration order.
		Scripts() []Script
		// Packages returns copies of all packages sorted by name.
		Packages() []PackageSpec
	}

	// MemoryRegistry is an in-process Registry safe for concurrent use.
	MemoryRegistry struct {
		mu       sync.RWMutex
		packages map[string]PackageSpec
		aliases  map[string]string
		scripts  []Script
	}

	// unlockedStore operates on a MemoryRegistry whose lock is already held.
	unlockedStore struct {
		r *MemoryRegistry
	}
)

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		packages: make(map[string]PackageSpec),
		aliases:  make(map[string]string),
	}
}

// HasPackage implements Store.
func (r *MemoryRegistry) HasPackage(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.packages[name]
	return ok
}

// Package implements Store.
func (r *MemoryRegistry) Package(name string) (PackageSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.packages[name]
	if !ok {
		return PackageSpec{}, false
	}
	return spec.Clone(), true
}

// Publish implements Store.
func (r *MemoryRegistry) Publish(spec PackageSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publishLocked(spec)
}

// RemoveFile implements Store.
func (r *MemoryRegistry) RemoveFile(name string, kind Kind, file string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeFileLocked(name, kind, file)
}

// Transact implements Registry.
func (r *MemoryRegistry) Transact(fn func(Store) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]PackageSpec, len(r.packages))
	for name, spec := range r.packages {
		snapshot[name] = spec.Clone()
	}

	if err := fn(unlockedStore{r: r}); err != nil {
		r.packages = snapshot
		return err
	}
	return nil
}

// SetAlias implements Registry.
func (r *MemoryRegistry) SetAlias(alias, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = path
}

// Alias implements Registry.
func (r *MemoryRegistry) Alias(alias string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.aliases[alias]
	return path, ok
}

// Aliases implements Registry.
func (r *MemoryRegistry) Aliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.aliases)
}

// RegisterScript implements Registry.
func (r *MemoryRegistry) RegisterScript(script Script) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.scripts {
		if existing.URL == script.URL {
			return
		}
	}
	r.scripts = append(r.scripts, script)
}

// Scripts implements Registry.
func (r *MemoryRegistry) Scripts() []Script {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.scripts)
}

// Packages implements Registry.
func (r *MemoryRegistry) Packages() []PackageSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := slices.Sorted(maps.Keys(r.packages))
	out := make([]PackageSpec, 0, len(names))
	for _, name := range names {
		out = append(out, r.packages[name].Clone())
	}
	return out
}

func (r *MemoryRegistry) publishLocked(spec PackageSpec) {
	r.packages[spec.Name] = spec.Clone()
}

func (r *MemoryRegistry) removeFileLocked(name string, kind Kind, file string) bool {
	spec, ok := r.packages[name]
	if !ok || file == "" {
		return false
	}
	before := spec.Files(kind)
	after := Without(before, []string{file})
	if len(after) == len(before) {
		return false
	}
	spec = spec.Clone()
	spec.SetFiles(kind, after)
	r.packages[name] = spec
	return true
}

func (s unlockedStore) HasPackage(name string) bool {
	_, ok := s.r.packages[name]
	return ok
}

func (s unlockedStore) Package(name string) (PackageSpec, bool) {
	spec, ok := s.r.packages[name]
	if !ok {
		return PackageSpec{}, false
	}
	return spec.Clone(), true
}

func (s unlockedStore) Publish(spec PackageSpec) {
	s.r.publishLocked(spec)
}

func (s unlockedStore) RemoveFile(name string, kind Kind, file string) bool {
	return s.r.removeFileLocked(name, kind, file)
}
