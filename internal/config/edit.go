// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/format"
	"cuelang.org/go/cue/parser"
)

// SaveDefaultTheme sets default_theme in the config file at path and leaves
// every other field as written. A missing file is created holding only
// default_theme, so the remaining keys keep their defaults.
func SaveDefaultTheme(path, name string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) == 0 {
		data = []byte("// skinkit configuration file\n")
	}

	out, err := setTopLevelField(data, path, "default_theme", ast.NewString(name))
	if err != nil {
		return fmt.Errorf("failed to edit config file %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setTopLevelField replaces or appends the top-level field label in a CUE
// document, keeping comments.
func setTopLevelField(data []byte, filename, label string, value ast.Expr) ([]byte, error) {
	f, err := parser.ParseFile(filename, data, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	for _, decl := range f.Decls {
		field, ok := decl.(*ast.Field)
		if !ok {
			continue
		}
		if name, _, err := ast.LabelName(field.Label); err == nil && name == label {
			field.Value = value
			return format.Node(f)
		}
	}
	f.Decls = append(f.Decls, &ast.Field{Label: ast.NewIdent(label), Value: value})
	return format.Node(f)
}
