// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrManifestNotFound is returned when a theme directory has no manifest.
	ErrManifestNotFound = errors.New("theme manifest not found")

	// ErrManifestParse is returned when a manifest is malformed or unsafe.
	ErrManifestParse = errors.New("theme manifest is malformed")

	// ErrMissingRequiredAttribute is the sentinel for MissingAttributeError.
	ErrMissingRequiredAttribute = errors.New("missing required theme attribute")

	// ErrCycleDetected is the sentinel for CycleError.
	ErrCycleDetected = errors.New("theme inheritance cycle detected")

	errUnsafeDoctype = errors.New("document type declarations with entities or external identifiers are not allowed")
)

type (
	// ManifestError reports a manifest that could not be loaded.
	ManifestError struct {
		// Path is the manifest file, or the theme directory when no file was found.
		Path string
		// Err is ErrManifestNotFound or ErrManifestParse.
		Err error
		// Cause is the underlying decoder or filesystem error, if any.
		Cause error
	}

	// MissingAttributeError reports a mandatory manifest attribute that no
	// level of the inheritance chain defines.
	MissingAttributeError struct {
		Theme     string
		Attribute string
	}

	// CycleError reports a theme that extends itself, directly or indirectly.
	CycleError struct {
		// Chain lists the theme names in walk order, ending with the repeated name.
		Chain []string
	}
)

// Error implements the error interface.
func (e *ManifestError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Err, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Err, e.Path, e.Cause)
}

// Unwrap returns both the sentinel and the cause.
func (e *ManifestError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// Error implements the error interface.
func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("theme %q: no level of its inheritance chain defines %s", e.Theme, e.Attribute)
}

// Unwrap returns ErrMissingRequiredAttribute for errors.Is checks.
func (e *MissingAttributeError) Unwrap() error {
	return ErrMissingRequiredAttribute
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("theme inheritance cycle: %s", strings.Join(e.Chain, " -> "))
}

// Unwrap returns ErrCycleDetected for errors.Is checks.
func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}

func notFound(path string) error {
	return &ManifestError{Path: path, Err: ErrManifestNotFound}
}

func parseFailure(path string, cause error) error {
	return &ManifestError{Path: path, Err: ErrManifestParse, Cause: cause}
}
