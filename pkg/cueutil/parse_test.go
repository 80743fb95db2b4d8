// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Theme: {
	name:        string
	apiVersion?: int
	packages?: [...string]
}
`

type testTheme struct {
	Name       string   `json:"name"`
	APIVersion int      `json:"apiVersion"`
	Packages   []string `json:"packages"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		opts     []Option
		wantErr  string
		wantName string
	}{
		{
			name:     "valid document",
			data:     `name: "vanilla", apiVersion: 3, packages: ["pjax"]`,
			wantName: "vanilla",
		},
		{
			name:    "type mismatch reports path",
			data:    `name: "vanilla", apiVersion: "three"`,
			opts:    []Option{WithFilename("manifest.cue")},
			wantErr: "apiVersion",
		},
		{
			name:    "syntax error",
			data:    `name: "vanilla`,
			wantErr: "<input>",
		},
		{
			name:    "size limit",
			data:    `name: "vanilla"`,
			opts:    []Option{WithMaxFileSize(4)},
			wantErr: "exceeds maximum",
		},
		{
			name:     "optional fields may be absent",
			data:     `name: "fruity"`,
			opts:     []Option{WithConcrete(false)},
			wantName: "fruity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ParseAndDecodeString[testTheme](testSchema, []byte(tt.data), "#Theme", tt.opts...)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Value.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", result.Value.Name, tt.wantName)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	if err := FormatError(nil, "x.cue"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	err := FormatError(errors.New("boom"), "x.cue")
	if err == nil || !strings.Contains(err.Error(), "x.cue") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("unexpected formatted error: %v", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"files"}, "files"},
		{[]string{"files", "css", "0", "file"}, "files.css[0].file"},
		{[]string{"0"}, "0"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.in); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
