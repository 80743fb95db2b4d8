// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"encoding/hex"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/zeebo/blake3"

	"github.com/skinkit/skinkit/pkg/assets"
)

type (
	// FrameworkBuilder turns a theme's CSS framework declaration into the
	// framework packages the theme depends on.
	FrameworkBuilder struct {
		registry assets.Registry
		logger   *log.Logger

		// mu guards rewrites.
		mu sync.Mutex
		// rewrites maps a framework package name to the digest of the override
		// set last applied to it.
		rewrites map[string]string
	}

	// overridePlan is the split of one layer's entries into files deleted
	// from the base package and files shipped by the theme.
	overridePlan struct {
		deleteCSS []string
		deleteJS  []string
		keepCSS   []string
		keepJS    []string
	}
)

// NewFrameworkBuilder creates a builder publishing into registry. A nil
// logger discards output.
func NewFrameworkBuilder(registry assets.Registry, logger *log.Logger) *FrameworkBuilder {
	return &FrameworkBuilder{
		registry: registry,
		logger:   orDiscard(logger),
		rewrites: make(map[string]string),
	}
}

// Build returns the framework packages d depends on for one layer: the
// direction-agnostic layer when dir is nil, otherwise the layer for *dir,
// whose package is the framework name suffixed with "-ltr" or "-rtl".
//
// An empty or unregistered framework name yields no packages. A layer
// without overrides depends on the registered package directly. Otherwise
// the files named by replace and remove entries are deleted from the shared
// base package, a "<name>-template" package with the theme's own files is
// published on top of it, and that package is returned instead.
func (b *FrameworkBuilder) Build(d *Descriptor, dir *Direction) ([]string, error) {
	fw := d.CSSFramework
	if fw == nil || fw.Name == "" {
		return nil, nil
	}

	name := fw.Name
	css, js := fw.CSS, fw.JS
	if dir != nil {
		name += "-" + dir.String()
		css, js = nil, nil
		if set := fw.Set(*dir); set != nil {
			css, js = set.CSS, set.JS
		}
	}

	if !b.registry.HasPackage(name) {
		b.logger.Debug("framework package not registered, skipping", "theme", d.Name, "framework", name)
		return nil, nil
	}
	if len(css) == 0 && len(js) == 0 {
		return []string{name}, nil
	}

	plan := planOverrides(css, js)
	digest := overrideDigest(name, css, js)
	templateName := name + templateSuffix

	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.registry.Transact(func(s assets.Store) error {
		base, ok := s.Package(name)
		if !ok {
			return fmt.Errorf("framework package %q disappeared during rewrite", name)
		}

		if b.rewrites[name] == digest && plan.appliedTo(base) {
			b.logger.Debug("framework rewrite cached", "framework", name, "digest", digest[:12])
		} else {
			base.CSS = assets.Without(base.CSS, plan.deleteCSS)
			base.JS = assets.Without(base.JS, plan.deleteJS)
			s.Publish(base)
		}

		s.Publish(assets.PackageSpec{
			Name:     templateName,
			BaseURL:  d.TemplateURL,
			BasePath: d.PathAlias(),
			CSS:      plan.keepCSS,
			JS:       plan.keepJS,
			Depends:  []string{name},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.rewrites[name] = digest

	b.logger.Debug("framework package rewritten",
		"theme", d.Name, "framework", name, "template", templateName,
		"deleted_css", len(plan.deleteCSS), "deleted_js", len(plan.deleteJS))
	return []string{templateName}, nil
}

// planOverrides splits entries: a replace reference is deleted from the base
// and the entry's own file kept; a remove entry deletes its file from the
// base and ships nothing.
func planOverrides(css, js []FileEntry) overridePlan {
	var p overridePlan
	p.deleteCSS, p.keepCSS = splitEntries(css)
	p.deleteJS, p.keepJS = splitEntries(js)
	return p
}

func splitEntries(entries []FileEntry) (deleted, kept []string) {
	kept = []string{}
	for _, e := range entries {
		switch {
		case e.Remove:
			if e.File != "" {
				deleted = append(deleted, e.File)
			}
			if e.Replace != "" {
				deleted = append(deleted, e.Replace)
			}
		default:
			if e.Replace != "" {
				deleted = append(deleted, e.Replace)
			}
			if e.File != "" {
				kept = append(kept, e.File)
			}
		}
	}
	return deleted, kept
}

// appliedTo reports whether base already excludes every deleted file.
func (p overridePlan) appliedTo(base assets.PackageSpec) bool {
	for _, f := range p.deleteCSS {
		if slices.Contains(base.CSS, f) {
			return false
		}
	}
	for _, f := range p.deleteJS {
		if slices.Contains(base.JS, f) {
			return false
		}
	}
	return true
}

// overrideDigest keys a rewrite by framework package and override set.
func overrideDigest(name string, css, js []FileEntry) string {
	h := blake3.New()
	write := func(s string) {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	write(name)
	for _, group := range []struct {
		kind    string
		entries []FileEntry
	}{{"css", css}, {"js", js}} {
		write(group.kind)
		for _, e := range group.entries {
			write(e.File)
			write(e.Replace)
			if e.Remove {
				write("remove")
			} else {
				write("")
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
