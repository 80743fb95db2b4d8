// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/skinkit/skinkit/pkg/cueutil"
)

const (
	// XMLManifestFile is the legacy markup manifest name.
	XMLManifestFile = "config.xml"
	// CUEManifestFile is the CUE manifest name, used when no config.xml exists.
	CUEManifestFile = "manifest.cue"

	// LastUpdateLayout formats metadatas.last_update.
	LastUpdateLayout = "2006-01-02 15:04:05"

	// FormatXML marks a manifest loaded from config.xml.
	FormatXML ManifestFormat = "xml"
	// FormatCUE marks a manifest loaded from manifest.cue.
	FormatCUE ManifestFormat = "cue"
)

type (
	// ManifestFormat identifies the file a manifest was loaded from.
	ManifestFormat string

	// Manifest is the typed content of a theme manifest. Optional scalar
	// fields are pointers: nil means the manifest does not declare them and
	// resolution falls back to the mother theme.
	Manifest struct {
		File     string
		Format   ManifestFormat
		Metadata Metadata
		Engine   Engine
		Files    Files
	}

	// Metadata is the manifest's metadatas section.
	Metadata struct {
		Name       string
		Extends    *string
		APIVersion *int
		LastUpdate string
	}

	// Engine is the manifest's engine section.
	Engine struct {
		ViewDirectory  *string
		FilesDirectory *string
		CSSFramework   *CSSFramework
		Packages       *PackageDeclarations
	}

	// Files is the manifest's files section.
	Files struct {
		Logo *string
		CSS  []FileEntry
		JS   []FileEntry
		LTR  *FileSet
		RTL  *FileSet
	}
)

// Extends returns the mother theme name, or "" when the manifest has none.
func (m *Manifest) Extends() string {
	if m == nil || m.Metadata.Extends == nil {
		return ""
	}
	return strings.TrimSpace(*m.Metadata.Extends)
}

// Set returns the direction-specific file lists, or nil.
func (f Files) Set(dir Direction) *FileSet {
	if dir == RTL {
		return f.RTL
	}
	return f.LTR
}

// ManifestPath returns the manifest file inside dir, preferring config.xml.
// The boolean is false when neither file exists.
func ManifestPath(dir string) (string, bool) {
	for _, name := range []string{XMLManifestFile, CUEManifestFile} {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// LoadManifest reads and decodes the manifest of the theme stored in dir.
//
// It returns an error wrapping ErrManifestNotFound when dir holds no
// manifest and one wrapping ErrManifestParse when the content is malformed,
// oversized, or declares entities.
func LoadManifest(dir string) (*Manifest, error) {
	path, ok := ManifestPath(dir)
	if !ok {
		return nil, notFound(dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(path)
		}
		return nil, parseFailure(path, err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, parseFailure(path, err)
	}

	var m *Manifest
	if filepath.Base(path) == XMLManifestFile {
		m, err = decodeXMLManifest(data)
	} else {
		m, err = decodeCUEManifest(data, path)
	}
	if err != nil {
		return nil, parseFailure(path, err)
	}
	m.File = path
	return m, nil
}
