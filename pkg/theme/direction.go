// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"slices"

	"golang.org/x/text/language"
)

const (
	// LTR is left-to-right rendering.
	LTR Direction = "ltr"
	// RTL is right-to-left rendering.
	RTL Direction = "rtl"
)

// Direction is the rendering orientation of the active language.
type Direction string

// rtlBases are the base languages written right to left.
var rtlBases = []string{"ar", "arc", "ckb", "dv", "fa", "ha", "he", "khw", "ks", "ps", "sd", "ug", "ur", "yi"}

// DirectionFor returns RTL when tag's base language is written right to left.
// Empty or unparsable tags are LTR.
func DirectionFor(tag string) Direction {
	if tag == "" {
		return LTR
	}
	t, err := language.Parse(tag)
	if err != nil {
		return LTR
	}
	base, _ := t.Base()
	if slices.Contains(rtlBases, base.String()) {
		return RTL
	}
	return LTR
}

// String returns "ltr" or "rtl".
func (d Direction) String() string { return string(d) }

// Validate reports whether d is LTR or RTL.
func (d Direction) Validate() bool {
	return d == LTR || d == RTL
}
