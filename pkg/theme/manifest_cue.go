// SPDX-License-Identifier: MPL-2.0

package theme

import (
	_ "embed"
	"strings"

	"github.com/skinkit/skinkit/pkg/cueutil"
)

//go:embed manifest_schema.cue
var manifestSchema string

type (
	cueEntry struct {
		File    string `json:"file"`
		Replace string `json:"replace"`
		Remove  bool   `json:"remove"`
	}

	cueFileSet struct {
		CSS []cueEntry `json:"css"`
		JS  []cueEntry `json:"js"`
	}

	cueFramework struct {
		Name string      `json:"name"`
		CSS  []cueEntry  `json:"css"`
		JS   []cueEntry  `json:"js"`
		LTR  *cueFileSet `json:"ltr"`
		RTL  *cueFileSet `json:"rtl"`
	}

	cueManifest struct {
		Metadatas struct {
			Name       string  `json:"name"`
			Extends    *string `json:"extends"`
			APIVersion *int    `json:"apiVersion"`
			LastUpdate string  `json:"last_update"`
		} `json:"metadatas"`
		Engine *struct {
			ViewDirectory  *string       `json:"viewdirectory"`
			FilesDirectory *string       `json:"filesdirectory"`
			CSSFramework   *cueFramework `json:"cssframework"`
			Packages       *struct {
				Package []string `json:"package"`
				LTR     []string `json:"ltr"`
				RTL     []string `json:"rtl"`
			} `json:"packages"`
		} `json:"engine"`
		Files *struct {
			Logo *string     `json:"logo"`
			CSS  []cueEntry  `json:"css"`
			JS   []cueEntry  `json:"js"`
			LTR  *cueFileSet `json:"ltr"`
			RTL  *cueFileSet `json:"rtl"`
		} `json:"files"`
	}
)

func decodeCUEManifest(data []byte, path string) (*Manifest, error) {
	result, err := cueutil.ParseAndDecodeString[cueManifest](
		manifestSchema,
		data,
		"#Manifest",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return nil, err
	}
	doc := result.Value

	m := &Manifest{
		Format: FormatCUE,
		Metadata: Metadata{
			Name:       doc.Metadatas.Name,
			Extends:    trimmedPtr(doc.Metadatas.Extends),
			APIVersion: doc.Metadatas.APIVersion,
			LastUpdate: doc.Metadatas.LastUpdate,
		},
	}

	if e := doc.Engine; e != nil {
		m.Engine.ViewDirectory = trimmedPtr(e.ViewDirectory)
		m.Engine.FilesDirectory = trimmedPtr(e.FilesDirectory)
		if fw := e.CSSFramework; fw != nil {
			m.Engine.CSSFramework = &CSSFramework{
				Name: strings.TrimSpace(fw.Name),
				CSS:  cueEntries(fw.CSS),
				JS:   cueEntries(fw.JS),
				LTR:  fw.LTR.toFileSet(),
				RTL:  fw.RTL.toFileSet(),
			}
		}
		if p := e.Packages; p != nil {
			m.Engine.Packages = &PackageDeclarations{
				Base: trimAll(p.Package),
				LTR:  trimAll(p.LTR),
				RTL:  trimAll(p.RTL),
			}
		}
	}

	if f := doc.Files; f != nil {
		m.Files.Logo = trimmedPtr(f.Logo)
		m.Files.CSS = cueEntries(f.CSS)
		m.Files.JS = cueEntries(f.JS)
		m.Files.LTR = f.LTR.toFileSet()
		m.Files.RTL = f.RTL.toFileSet()
	}

	return m, nil
}

func cueEntries(in []cueEntry) []FileEntry {
	if len(in) == 0 {
		return nil
	}
	out := make([]FileEntry, 0, len(in))
	for _, e := range in {
		out = append(out, FileEntry{
			File:    strings.TrimSpace(e.File),
			Replace: strings.TrimSpace(e.Replace),
			Remove:  e.Remove,
		})
	}
	return out
}

func (s *cueFileSet) toFileSet() *FileSet {
	if s == nil {
		return nil
	}
	return &FileSet{CSS: cueEntries(s.CSS), JS: cueEntries(s.JS)}
}
