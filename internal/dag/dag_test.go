// SPDX-License-Identifier: MPL-2.0

package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestTopologicalSort_EmptyGraph(t *testing.T) {
	t.Parallel()
	order, err := New().TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != nil {
		t.Errorf("expected nil, got %v", order)
	}
}

func TestTopologicalSort_LinearChain(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("bootstrap", "bootstrap-template")
	g.AddEdge("bootstrap-template", "survey-template-vanilla")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"bootstrap", "bootstrap-template", "survey-template-vanilla"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestTopologicalSort_SelfLoop(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("A", "A")

	_, err := g.TopologicalSort()
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %T: %v", err, err)
	}
}

func TestTopologicalSort_Cycle(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")

	_, err := g.TopologicalSort()
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %T: %v", err, err)
	}
	if len(cycleErr.Cycle) != 3 {
		t.Errorf("expected 3 nodes in cycle, got %v", cycleErr.Cycle)
	}
}

func TestFromRoot_DeclaredOrder(t *testing.T) {
	t.Parallel()
	depends := map[string][]string{
		"survey-template-child":  {"bootstrap-template", "survey-public", "survey-template-mother"},
		"bootstrap-template":     {"bootstrap"},
		"survey-template-mother": {"bootstrap", "survey-public"},
	}
	g := FromRoot("survey-template-child", func(name string) []string { return depends[name] })

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"bootstrap", "bootstrap-template", "survey-public", "survey-template-mother", "survey-template-child"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestFromRoot_Cycle(t *testing.T) {
	t.Parallel()
	depends := map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}
	g := FromRoot("a", func(name string) []string { return depends[name] })
	if g.Len() != 2 {
		t.Fatalf("expected 2 nodes, got %d", g.Len())
	}
	if _, err := g.TopologicalSort(); err == nil {
		t.Fatal("expected cycle error, got nil")
	}
}
