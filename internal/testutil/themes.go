// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

// ThemeTree is a pair of theme roots under a test temp directory.
type ThemeTree struct {
	t            testing.TB
	StandardRoot string
	UserRoot     string
}

// NewThemeTree creates empty standard and user theme roots.
func NewThemeTree(t testing.TB) *ThemeTree {
	t.Helper()
	base := t.TempDir()
	tree := &ThemeTree{
		t:            t,
		StandardRoot: filepath.Join(base, "standard"),
		UserRoot:     filepath.Join(base, "user"),
	}
	MustMkdirAll(t, tree.StandardRoot, 0o755)
	MustMkdirAll(t, tree.UserRoot, 0o755)
	return tree
}

// AddStandard writes a built-in theme with the given config.xml content and
// returns its directory.
func (tt *ThemeTree) AddStandard(name, manifest string) string {
	tt.t.Helper()
	dir := filepath.Join(tt.StandardRoot, name)
	MustWriteFile(tt.t, filepath.Join(dir, "config.xml"), manifest)
	return dir
}

// AddUser writes a custom theme with the given config.xml content and
// returns its directory.
func (tt *ThemeTree) AddUser(name, manifest string) string {
	tt.t.Helper()
	dir := filepath.Join(tt.UserRoot, name)
	MustWriteFile(tt.t, filepath.Join(dir, "config.xml"), manifest)
	return dir
}

// AddUserFile writes an arbitrary file inside a custom theme directory.
func (tt *ThemeTree) AddUserFile(name, rel, content string) {
	tt.t.Helper()
	MustWriteFile(tt.t, filepath.Join(tt.UserRoot, name, rel), content)
}

// ManifestXML builds a config.xml document. metadatas and body are inner XML
// fragments; extends and apiVersion are emitted only when non-empty.
func ManifestXML(extends, apiVersion, body string) string {
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<config>\n\t<metadatas>\n")
	sb.WriteString("\t\t<last_update>2019-05-01 10:00:00</last_update>\n")
	if extends != "" {
		fmt.Fprintf(&sb, "\t\t<extends>%s</extends>\n", extends)
	}
	if apiVersion != "" {
		fmt.Fprintf(&sb, "\t\t<apiVersion>%s</apiVersion>\n", apiVersion)
	}
	sb.WriteString("\t</metadatas>\n")
	sb.WriteString(body)
	sb.WriteString("\n</config>\n")
	return sb.String()
}
