package mwp

import "testing"

func TestDeltaGraphAddSubsumption(t *testing.T) {
	dg := NewDeltaGraph()
	dg.Add(DeltaSeq{{Value: 0, Index: 0}})
	dg.Add(DeltaSeq{{Value: 0, Index: 0}, {Value: 1, Index: 1}})
	if len(dg.Clauses()) != 1 {
		t.Fatalf("expected the more general clause to subsume the specific one, got %v", dg.Clauses())
	}

	dg2 := NewDeltaGraph()
	dg2.Add(DeltaSeq{{Value: 0, Index: 0}, {Value: 1, Index: 1}})
	dg2.Add(DeltaSeq{{Value: 0, Index: 0}})
	if len(dg2.Clauses()) != 1 {
		t.Fatalf("expected the new general clause to replace the old specific one, got %v", dg2.Clauses())
	}
	if !equalDeltaSeq(dg2.Clauses()[0], DeltaSeq{{Value: 0, Index: 0}}) {
		t.Errorf("expected surviving clause to be the general one, got %v", dg2.Clauses())
	}
}

func TestDeltaGraphFusion(t *testing.T) {
	dg := NewDeltaGraph()
	dg.Add(DeltaSeq{{Value: 0, Index: 1}, {Value: 0, Index: 0}})
	dg.Add(DeltaSeq{{Value: 0, Index: 1}, {Value: 1, Index: 0}})
	dg.Add(DeltaSeq{{Value: 0, Index: 1}, {Value: 2, Index: 0}})
	dg.Fusion()
	if len(dg.Clauses()) != 1 {
		t.Fatalf("expected three clauses covering all of {0,1,2} at index 0 to fuse, got %v", dg.Clauses())
	}
	if !equalDeltaSeq(dg.Clauses()[0], DeltaSeq{{Value: 0, Index: 1}}) {
		t.Errorf("expected fused clause to be the shared base, got %v", dg.Clauses()[0])
	}
}

func TestDeltaGraphIsEmpty(t *testing.T) {
	dg := NewDeltaGraph()
	if !dg.IsEmpty() {
		t.Errorf("expected fresh delta graph to be empty")
	}
	dg.Add(DeltaSeq{{Value: 0, Index: 0}})
	if dg.IsEmpty() {
		t.Errorf("expected delta graph with a clause to be non-empty")
	}
}
