// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "resolve theme"},
			want: "failed to resolve theme",
		},
		{
			name: "with resource and cause",
			err: NewErrorContext().
				WithOperation("load manifest").
				WithResource("/themes/fruity").
				Wrap(errors.New("no manifest")).
				Build(),
			want: "failed to load manifest: /themes/fruity: no manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("cycle")
	err := NewErrorContext().
		WithOperation("resolve theme").
		WithResource("fruity").
		WithSuggestion("Check metadatas.extends").
		WithSuggestion("Run skinkit themes list").
		WithIssue(ThemeCycleId).
		Wrap(sentinel).
		BuildError()

	if !errors.Is(err, sentinel) {
		t.Fatalf("BuildError() should wrap the cause, got %v", err)
	}

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *ActionableError, got %T", err)
	}
	if ae.IssueID != ThemeCycleId {
		t.Errorf("IssueID = %d, want %d", ae.IssueID, ThemeCycleId)
	}
	if len(ae.Suggestions) != 2 || !ae.HasSuggestions() {
		t.Errorf("Suggestions = %v, want 2 entries", ae.Suggestions)
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("config.xml: XML syntax error on line 3")
	wrapped := errors.Join(inner)
	ae := &ActionableError{
		Operation:   "load manifest",
		Resource:    "vanilla",
		Suggestions: []string{"Fix the XML"},
		Cause:       wrapped,
	}

	short := ae.Format(false)
	if !strings.Contains(short, "• Fix the XML") {
		t.Errorf("Format(false) missing suggestion:\n%s", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Errorf("Format(false) should not include the chain:\n%s", short)
	}

	verbose := ae.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "1. ") {
		t.Errorf("Format(true) missing chain:\n%s", verbose)
	}
}
