// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	namePolicyOnce sync.Once
	namePolicy     *bluemonday.Policy
)

// FilterName cleans a theme name that came from configuration or stored
// survey data. Markup is stripped, then every character that is not a
// letter, digit, '-', '_' or '.' is dropped, and leading dots are removed so
// the result is a single directory name. An empty result becomes "default".
func FilterName(raw string) string {
	cleaned := html.UnescapeString(nameSanitizer().Sanitize(strings.TrimSpace(raw)))

	var sb strings.Builder
	for _, r := range cleaned {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '-', r == '_', r == '.':
			sb.WriteRune(r)
		}
	}

	name := strings.TrimLeft(sb.String(), ".")
	if name == "" {
		return DefaultThemeName
	}
	return name
}

func nameSanitizer() *bluemonday.Policy {
	namePolicyOnce.Do(func() {
		namePolicy = bluemonday.StrictPolicy()
	})
	return namePolicy
}
