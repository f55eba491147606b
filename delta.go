package mwp

import "cmp"

// A Delta is the proposition "at derivation point Index, the
// non-deterministic choice equals Value", written δ(Value, Index) in
// spec.md. Value ranges over the choice domain {0,1,2}; Index is a
// non-negative derivation index.
type Delta struct {
	Value int
	Index int
}

// DeltaSeq is an ordered list of deltas with distinct indices, kept
// sorted by increasing Index. It is the key type Polynomial orders
// monomials by.
type DeltaSeq []Delta

// compareDeltaSeq implements the total order on monomials from
// spec.md §3: compare position by position; at the first differing
// position (i1,j1) vs (i2,j2), the smaller is the one with the
// smaller index j, tie-broken by the smaller value i. A strict prefix
// is smaller than the sequence it prefixes. Equal sequences compare 0.
func compareDeltaSeq(a, b DeltaSeq) int {
	n := min(len(a), len(b))
	for k := 0; k < n; k++ {
		da, db := a[k], b[k]
		if da.Index != db.Index {
			return cmp.Compare(da.Index, db.Index)
		}
		if da.Value != db.Value {
			return cmp.Compare(da.Value, db.Value)
		}
	}
	return cmp.Compare(len(a), len(b))
}

// equalDeltaSeq reports whether a and b contain the same deltas in the
// same order.
func equalDeltaSeq(a, b DeltaSeq) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// subsetDeltaSeq reports whether every delta in a also occurs in b
// (set inclusion, ignoring order and the fact both are index-sorted).
func subsetDeltaSeq(a, b DeltaSeq) bool {
	for _, da := range a {
		found := false
		for _, db := range b {
			if da == db {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// mergeDelta inserts d into seq, which must stay sorted by Index with
// distinct indices. It returns the merged sequence and false if d
// contradicts an existing delta at the same index (different Value),
// in which case the monomial the sequence belongs to is absent (its
// scalar collapses to Zero).
func mergeDelta(seq DeltaSeq, d Delta) (DeltaSeq, bool) {
	out := make(DeltaSeq, 0, len(seq)+1)
	inserted := false
	for _, e := range seq {
		if e.Index == d.Index {
			if e.Value != d.Value {
				return nil, false
			}
			inserted = true
			out = append(out, e)
			continue
		}
		if !inserted && d.Index < e.Index {
			out = append(out, d)
			inserted = true
		}
		out = append(out, e)
	}
	if !inserted {
		out = append(out, d)
	}
	return out, true
}

// mergeDeltaSeqs merges two delta sequences, each individually valid
// (sorted, distinct indices), into one. It returns false if the two
// sequences disagree on the value at a shared index.
func mergeDeltaSeqs(a, b DeltaSeq) (DeltaSeq, bool) {
	out := a
	for _, d := range b {
		var ok bool
		out, ok = mergeDelta(out, d)
		if !ok {
			return nil, false
		}
	}
	return out, true
}

// Eval reports whether every delta in seq matches v, the choice vector
// (v[i] is the value chosen at index i). seq matches the empty vector
// position vacuously when it has no delta at that index.
func (seq DeltaSeq) Eval(v []int) bool {
	for _, d := range seq {
		if d.Index >= len(v) || v[d.Index] != d.Value {
			return false
		}
	}
	return true
}

// Copy returns a copy of seq.
func (seq DeltaSeq) Copy() DeltaSeq {
	out := make(DeltaSeq, len(seq))
	copy(out, seq)
	return out
}
