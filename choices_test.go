package mwp

import "testing"

func TestGenerateChoicesSimple(t *testing.T) {
	dg := NewDeltaGraph()
	dg.Add(DeltaSeq{{Value: 2, Index: 0}})
	c := GenerateChoices([]int{0, 1, 2}, 1, dg)
	if c.IsEmpty() {
		t.Fatalf("expected some choice to remain valid")
	}
	if c.IsValid(2, 0) {
		t.Errorf("value 2 at index 0 is forbidden by the clause")
	}
	if !c.IsValid(0, 0) || !c.IsValid(1, 0) {
		t.Errorf("values 0 and 1 at index 0 should remain valid")
	}
}

func TestGenerateChoicesAllValuesForbiddenIsEmpty(t *testing.T) {
	dg := NewDeltaGraph()
	dg.Add(DeltaSeq{})
	c := GenerateChoices([]int{0, 1, 2}, 1, dg)
	if !c.IsEmpty() {
		t.Fatalf("an unconditional clause (no deltas) forbids every choice vector")
	}
}

// TestGenerateChoicesMultipleClauses works through a four-clause
// interaction across three indices: a pair of clauses pin index 0
// outright, while the other two only apply in combination with index
// 1's value, leaving index 2 unconstrained on at least one surviving
// branch.
func TestGenerateChoicesMultipleClauses(t *testing.T) {
	dg := NewDeltaGraph()
	dg.Add(DeltaSeq{{Value: 0, Index: 0}})
	dg.Add(DeltaSeq{{Value: 1, Index: 0}})
	dg.Add(DeltaSeq{{Value: 2, Index: 1}, {Value: 1, Index: 2}})
	dg.Add(DeltaSeq{{Value: 2, Index: 0}, {Value: 1, Index: 1}, {Value: 1, Index: 2}})

	c := GenerateChoices([]int{0, 1, 2}, 3, dg)
	if c.IsEmpty() {
		t.Fatalf("expected a non-empty set of safe choices")
	}
	if c.IsValid(0, 0) || c.IsValid(1, 0) {
		t.Errorf("index 0 is pinned to 2 by the first two clauses")
	}
	if !c.IsValid(2, 0) {
		t.Errorf("index 0 = 2 should remain valid")
	}
	for _, val := range []int{0, 1, 2} {
		if !c.IsValid(val, 1) {
			t.Errorf("every value at index 1 should remain reachable via some branch, got invalid for %d", val)
		}
	}
}

func TestChoicesIntersectAndChoiceReduce(t *testing.T) {
	dgA := NewDeltaGraph()
	dgA.Add(DeltaSeq{{Value: 2, Index: 0}})
	a := GenerateChoices([]int{0, 1, 2}, 1, dgA)

	dgB := NewDeltaGraph()
	dgB.Add(DeltaSeq{{Value: 0, Index: 0}})
	b := GenerateChoices([]int{0, 1, 2}, 1, dgB)

	reduced := a.ChoiceReduce(b)
	if reduced.IsValid(0, 0) || reduced.IsValid(2, 0) {
		t.Errorf("reduce should exclude values forbidden by either side")
	}
	if !reduced.IsValid(1, 0) {
		t.Errorf("value 1 is allowed by both sides and should survive reduction")
	}
}

func TestChoicesFirstResolvesWildcards(t *testing.T) {
	c := GenerateChoices([]int{5, 6, 7}, 1, NewDeltaGraph())
	first := c.First()
	if len(first) != 1 || first[0] != 5 {
		t.Errorf("First() on an all-wildcard choice should resolve to the domain's first value, got %v", first)
	}
}
