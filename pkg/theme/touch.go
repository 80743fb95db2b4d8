// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/format"
	"cuelang.org/go/cue/parser"
)

type (
	// Clock supplies the current time.
	Clock interface {
		Now() time.Time
	}

	// SystemClock reads the wall clock.
	SystemClock struct{}
)

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// TouchLastUpdate sets metadatas.last_update of the manifest in dir to the
// clock's current time and sets the directory's modification time to match.
// Downstream asset caches use the directory time to invalidate published
// copies. Nothing else in the manifest changes.
func TouchLastUpdate(dir string, clock Clock) (time.Time, error) {
	if clock == nil {
		clock = SystemClock{}
	}

	path, ok := ManifestPath(dir)
	if !ok {
		return time.Time{}, notFound(dir)
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat manifest: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("read manifest: %w", err)
	}

	now := clock.Now()
	stamp := now.Format(LastUpdateLayout)

	var out []byte
	if filepath.Base(path) == XMLManifestFile {
		out, err = rewriteXMLLastUpdate(data, stamp)
	} else {
		out, err = rewriteCUELastUpdate(data, path, stamp)
	}
	if err != nil {
		return time.Time{}, parseFailure(path, err)
	}

	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return time.Time{}, fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Chtimes(dir, now, now); err != nil {
		return time.Time{}, fmt.Errorf("touch theme directory: %w", err)
	}
	return now, nil
}

// rewriteXMLLastUpdate splices stamp into config>metadatas>last_update,
// locating it with decoder offsets so the rest of the bytes are untouched.
// A missing element is inserted at the end of metadatas; a missing
// metadatas section is inserted at the start of config.
func rewriteXMLLastUpdate(data []byte, stamp string) ([]byte, error) {
	if err := entityGuard(data); err != nil {
		return nil, err
	}

	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(stamp)); err != nil {
		return nil, err
	}
	element := "<last_update>" + escaped.String() + "</last_update>"

	d := newXMLDecoder(data)
	var (
		path       []string
		prev       int64
		elemStart  int64 = -1
		textStart  int64 = -1
		metaStart  int64 = -1
		metaOpen   int64 = -1
		configOpen int64 = -1
	)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		off := d.InputOffset()

		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			switch {
			case len(path) == 1 && t.Name.Local == "config":
				configOpen = off
			case len(path) == 2 && t.Name.Local == "metadatas":
				metaStart, metaOpen = prev, off
			case len(path) == 3 && path[1] == "metadatas" && t.Name.Local == "last_update":
				elemStart, textStart = prev, off
			}
		case xml.EndElement:
			switch {
			case len(path) == 3 && path[1] == "metadatas" && t.Name.Local == "last_update" && textStart >= 0:
				if prev == textStart && bytes.HasSuffix(data[:textStart], []byte("/>")) {
					return splice(data, elemStart, textStart, element), nil
				}
				return splice(data, textStart, prev, escaped.String()), nil
			case len(path) == 2 && t.Name.Local == "metadatas":
				if prev == metaOpen && bytes.HasSuffix(data[:metaOpen], []byte("/>")) {
					return splice(data, metaStart, metaOpen, "<metadatas>"+element+"</metadatas>"), nil
				}
				return splice(data, prev, prev, element), nil
			}
			path = path[:len(path)-1]
		}
		prev = off
	}

	if configOpen < 0 {
		return nil, errors.New("manifest has no <config> root element")
	}
	if bytes.HasSuffix(data[:configOpen], []byte("/>")) {
		return nil, errors.New("manifest <config> element is empty")
	}
	return splice(data, configOpen, configOpen, "<metadatas>"+element+"</metadatas>"), nil
}

func splice(data []byte, from, to int64, insert string) []byte {
	out := make([]byte, 0, len(data)+len(insert))
	out = append(out, data[:from]...)
	out = append(out, insert...)
	out = append(out, data[to:]...)
	return out
}

// rewriteCUELastUpdate sets metadatas.last_update in a manifest.cue file,
// preserving comments and the other fields.
func rewriteCUELastUpdate(data []byte, filename, stamp string) ([]byte, error) {
	f, err := parser.ParseFile(filename, data, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	value := ast.NewString(stamp)
	metadatas := findStruct(f.Decls, "metadatas")
	if metadatas == nil {
		f.Decls = append(f.Decls, &ast.Field{
			Label: ast.NewIdent("metadatas"),
			Value: &ast.StructLit{Elts: []ast.Decl{
				&ast.Field{Label: ast.NewIdent("last_update"), Value: value},
			}},
		})
		return format.Node(f)
	}

	if field := findField(metadatas.Elts, "last_update"); field != nil {
		field.Value = value
	} else {
		metadatas.Elts = append(metadatas.Elts, &ast.Field{Label: ast.NewIdent("last_update"), Value: value})
	}
	return format.Node(f)
}

func findField(decls []ast.Decl, name string) *ast.Field {
	for _, decl := range decls {
		field, ok := decl.(*ast.Field)
		if !ok {
			continue
		}
		if label, _, err := ast.LabelName(field.Label); err == nil && label == name {
			return field
		}
	}
	return nil
}

func findStruct(decls []ast.Decl, name string) *ast.StructLit {
	field := findField(decls, name)
	if field == nil {
		return nil
	}
	lit, _ := field.Value.(*ast.StructLit)
	return lit
}
