// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type (
	xmlManifest struct {
		XMLName   xml.Name     `xml:"config"`
		Metadatas xmlMetadatas `xml:"metadatas"`
		Engine    *xmlEngine   `xml:"engine"`
		Files     *xmlFiles    `xml:"files"`
	}

	xmlMetadatas struct {
		Name       string  `xml:"name"`
		Extends    *string `xml:"extends"`
		APIVersion *string `xml:"apiVersion"`
		LastUpdate string  `xml:"last_update"`
	}

	xmlEngine struct {
		ViewDirectory  *string          `xml:"viewdirectory"`
		FilesDirectory *string          `xml:"filesdirectory"`
		CSSFramework   *xmlCSSFramework `xml:"cssframework"`
		Packages       *xmlPackages     `xml:"packages"`
	}

	// xmlEntry is an element whose text is a file and whose attributes carry
	// the override directives.
	xmlEntry struct {
		Value   string `xml:",chardata"`
		Replace string `xml:"replace,attr"`
		Remove  string `xml:"remove,attr"`
	}

	xmlEntrySet struct {
		CSS []xmlEntry `xml:"css"`
		JS  []xmlEntry `xml:"js"`
	}

	xmlCSSFramework struct {
		// Text supports the short form <cssframework>bootstrap</cssframework>.
		Text string       `xml:",chardata"`
		Name *string      `xml:"name"`
		CSS  []xmlEntry   `xml:"css"`
		JS   []xmlEntry   `xml:"js"`
		LTR  *xmlEntrySet `xml:"ltr"`
		RTL  *xmlEntrySet `xml:"rtl"`
	}

	xmlPackageList struct {
		Package []string `xml:"package"`
	}

	xmlPackages struct {
		Package []string        `xml:"package"`
		LTR     *xmlPackageList `xml:"ltr"`
		RTL     *xmlPackageList `xml:"rtl"`
	}

	xmlFilenames struct {
		Filename []xmlEntry `xml:"filename"`
	}

	xmlFileSet struct {
		CSS *xmlFilenames `xml:"css"`
		JS  *xmlFilenames `xml:"js"`
	}

	xmlFiles struct {
		Logo *struct {
			Filename string `xml:"filename"`
		} `xml:"logo"`
		CSS *xmlFilenames `xml:"css"`
		JS  *xmlFilenames `xml:"js"`
		LTR *xmlFileSet   `xml:"ltr"`
		RTL *xmlFileSet   `xml:"rtl"`
	}
)

// newXMLDecoder returns a strict decoder that knows only the predefined entities.
func newXMLDecoder(data []byte) *xml.Decoder {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = true
	d.Entity = nil
	return d
}

// entityGuard rejects documents whose DOCTYPE declares entities or points at
// an external DTD. The check is local to this decoder; no package or process
// state is changed.
func entityGuard(data []byte) error {
	d := newXMLDecoder(data)
	for {
		tok, err := d.RawToken()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		dir, ok := tok.(xml.Directive)
		if !ok {
			continue
		}
		upper := strings.ToUpper(string(dir))
		if !strings.HasPrefix(strings.TrimSpace(upper), "DOCTYPE") {
			continue
		}
		for _, kw := range []string{"ENTITY", "SYSTEM", "PUBLIC"} {
			if strings.Contains(upper, kw) {
				return errUnsafeDoctype
			}
		}
	}
}

func decodeXMLManifest(data []byte) (*Manifest, error) {
	if err := entityGuard(data); err != nil {
		return nil, err
	}

	var doc xmlManifest
	if err := newXMLDecoder(data).Decode(&doc); err != nil {
		return nil, err
	}

	m := &Manifest{
		Format: FormatXML,
		Metadata: Metadata{
			Name:       strings.TrimSpace(doc.Metadatas.Name),
			Extends:    trimmedPtr(doc.Metadatas.Extends),
			LastUpdate: strings.TrimSpace(doc.Metadatas.LastUpdate),
		},
	}

	if doc.Metadatas.APIVersion != nil {
		v, err := parseAPIVersion(*doc.Metadatas.APIVersion)
		if err != nil {
			return nil, err
		}
		m.Metadata.APIVersion = &v
	}

	if e := doc.Engine; e != nil {
		m.Engine.ViewDirectory = trimmedPtr(e.ViewDirectory)
		m.Engine.FilesDirectory = trimmedPtr(e.FilesDirectory)
		if fw := e.CSSFramework; fw != nil {
			m.Engine.CSSFramework = fw.toFramework()
		}
		if p := e.Packages; p != nil {
			m.Engine.Packages = &PackageDeclarations{
				Base: trimAll(p.Package),
				LTR:  p.LTR.names(),
				RTL:  p.RTL.names(),
			}
		}
	}

	if f := doc.Files; f != nil {
		if f.Logo != nil {
			logo := strings.TrimSpace(f.Logo.Filename)
			m.Files.Logo = &logo
		}
		m.Files.CSS = f.CSS.entries()
		m.Files.JS = f.JS.entries()
		m.Files.LTR = f.LTR.toFileSet()
		m.Files.RTL = f.RTL.toFileSet()
	}

	return m, nil
}

// parseAPIVersion accepts an integer. An empty element counts as declared
// with version 0.
func parseAPIVersion(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("metadatas.apiVersion: %q is not an integer", raw)
	}
	return v, nil
}

func (e xmlEntry) toEntry() FileEntry {
	return FileEntry{
		File:    strings.TrimSpace(e.Value),
		Replace: strings.TrimSpace(e.Replace),
		Remove:  truthy(e.Remove),
	}
}

func toEntries(in []xmlEntry) []FileEntry {
	if len(in) == 0 {
		return nil
	}
	out := make([]FileEntry, 0, len(in))
	for _, e := range in {
		out = append(out, e.toEntry())
	}
	return out
}

func (f *xmlFilenames) entries() []FileEntry {
	if f == nil {
		return nil
	}
	return toEntries(f.Filename)
}

func (s *xmlFileSet) toFileSet() *FileSet {
	if s == nil {
		return nil
	}
	return &FileSet{CSS: s.CSS.entries(), JS: s.JS.entries()}
}

func (s *xmlEntrySet) toFileSet() *FileSet {
	if s == nil {
		return nil
	}
	return &FileSet{CSS: toEntries(s.CSS), JS: toEntries(s.JS)}
}

func (fw *xmlCSSFramework) toFramework() *CSSFramework {
	name := strings.TrimSpace(fw.Text)
	if fw.Name != nil {
		name = strings.TrimSpace(*fw.Name)
	}
	return &CSSFramework{
		Name: name,
		CSS:  toEntries(fw.CSS),
		JS:   toEntries(fw.JS),
		LTR:  fw.LTR.toFileSet(),
		RTL:  fw.RTL.toFileSet(),
	}
}

func (l *xmlPackageList) names() []string {
	if l == nil {
		return nil
	}
	return trimAll(l.Package)
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// trimAll trims each name and drops empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// truthy reads an attribute flag: any value except "", "0" and "false" is set.
func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false":
		return false
	default:
		return true
	}
}
