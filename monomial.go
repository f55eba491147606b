package mwp

import (
	"fmt"
	"strings"
)

// A Monomial is a scalar times an ordered set of deltas with distinct
// indices: s·δ1δ2…δk. If two deltas in the list would share an index
// with different values the monomial is contradictory and is
// normalized to the absent monomial (scalar [Zero], no deltas).
type Monomial struct {
	Scalar Scalar
	Deltas DeltaSeq
}

// NewMonomial builds a monomial from a scalar and a set of deltas,
// normalizing contradictions (two deltas at one index with different
// values) to the absent monomial. A delta given more than once is kept
// once.
func NewMonomial(scalar Scalar, deltas ...Delta) Monomial {
	if scalar == Zero {
		return Monomial{Scalar: Zero}
	}
	seq := DeltaSeq{}
	for _, d := range deltas {
		merged, ok := mergeDelta(seq, d)
		if !ok {
			return Monomial{Scalar: Zero}
		}
		seq = merged
	}
	return Monomial{Scalar: scalar, Deltas: seq}
}

// IsAbsent reports whether m is the zero monomial (it contributes
// nothing to any polynomial sum).
func (m Monomial) IsAbsent() bool { return m.Scalar == Zero }

// Eval returns m's scalar if every delta in m matches v at its index,
// and Zero otherwise.
func (m Monomial) Eval(v []int) Scalar {
	if m.IsAbsent() {
		return Zero
	}
	if !m.Deltas.Eval(v) {
		return Zero
	}
	return m.Scalar
}

// Product returns the product of m and other: scalars combine by ⊗,
// delta-lists merge keeping order by index. The result is the absent
// monomial if either factor is absent, or if the merged delta-lists
// disagree on the value at some shared index.
func (m Monomial) Product(other Monomial) Monomial {
	scalar := ProductScalar(m.Scalar, other.Scalar)
	if scalar == Zero {
		return Monomial{Scalar: Zero}
	}
	merged, ok := mergeDeltaSeqs(m.Deltas, other.Deltas)
	if !ok {
		return Monomial{Scalar: Zero}
	}
	return Monomial{Scalar: scalar, Deltas: merged}
}

// Equal reports whether m and other have the same scalar and deltas.
func (m Monomial) Equal(other Monomial) bool {
	if m.IsAbsent() && other.IsAbsent() {
		return true
	}
	return m.Scalar == other.Scalar && equalDeltaSeq(m.Deltas, other.Deltas)
}

// Copy returns a deep copy of m.
func (m Monomial) Copy() Monomial {
	return Monomial{Scalar: m.Scalar, Deltas: m.Deltas.Copy()}
}

// Subsumes reports whether m subsumes other: m's delta-set is a subset
// of other's, and m's scalar is at least as strong. A monomial that
// subsumes another makes it redundant in a polynomial sum (§4.C).
func (m Monomial) Subsumes(other Monomial) bool {
	if m.IsAbsent() {
		return false
	}
	if m.Scalar < other.Scalar {
		return false
	}
	return subsetDeltaSeq(m.Deltas, other.Deltas)
}

// String returns a human-readable rendering, e.g. "p*d(1,0)*d(0,2)".
func (m Monomial) String() string {
	if m.IsAbsent() {
		return "0"
	}
	var b strings.Builder
	b.WriteString(m.Scalar.String())
	for _, d := range m.Deltas {
		fmt.Fprintf(&b, "*d(%d,%d)", d.Value, d.Index)
	}
	return b.String()
}
