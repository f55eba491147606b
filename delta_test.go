package mwp

import "testing"

func TestCompareDeltaSeq(t *testing.T) {
	tests := []struct {
		a, b DeltaSeq
		want int
	}{
		{DeltaSeq{}, DeltaSeq{}, 0},
		{DeltaSeq{{0, 0}}, DeltaSeq{{0, 0}}, 0},
		{DeltaSeq{}, DeltaSeq{{0, 0}}, -1},
		{DeltaSeq{{0, 0}}, DeltaSeq{{1, 0}}, -1},
		{DeltaSeq{{1, 1}}, DeltaSeq{{0, 0}}, 1},
	}
	for i, test := range tests {
		if got := compareDeltaSeq(test.a, test.b); sign(got) != sign(test.want) {
			t.Errorf("%d: compareDeltaSeq(%v,%v) = %d, want sign %d", i, test.a, test.b, got, test.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestMergeDelta(t *testing.T) {
	seq := DeltaSeq{{Value: 0, Index: 0}, {Value: 1, Index: 2}}
	merged, ok := mergeDelta(seq, Delta{Value: 2, Index: 1})
	if !ok {
		t.Fatalf("expected merge to succeed")
	}
	want := DeltaSeq{{0, 0}, {2, 1}, {1, 2}}
	if !equalDeltaSeq(merged, want) {
		t.Errorf("merged = %v, want %v", merged, want)
	}

	_, ok = mergeDelta(seq, Delta{Value: 9, Index: 0})
	if ok {
		t.Errorf("expected contradiction to fail merge")
	}
}

func TestSubsetDeltaSeq(t *testing.T) {
	a := DeltaSeq{{0, 0}}
	b := DeltaSeq{{0, 0}, {1, 1}}
	if !subsetDeltaSeq(a, b) {
		t.Errorf("expected a subset of b")
	}
	if subsetDeltaSeq(b, a) {
		t.Errorf("expected b not subset of a")
	}
}

func TestDeltaSeqEval(t *testing.T) {
	seq := DeltaSeq{{Value: 1, Index: 0}, {Value: 2, Index: 2}}
	if !seq.Eval([]int{1, 0, 2}) {
		t.Errorf("expected seq to match")
	}
	if seq.Eval([]int{0, 0, 2}) {
		t.Errorf("expected seq to not match")
	}
}
