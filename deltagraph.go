package mwp

import "fmt"

// choiceValues is the canonical ternary choice domain {0,1,2}: every
// derivation point offers exactly three alternatives (§4.H's
// FromScalars-built vectors), so it is also the domain [DeltaGraph]
// fusion reasons about, independent of any particular analysis run's
// search domain.
var choiceValues = [3]int{0, 1, 2}

// A DeltaGraph is a set of infinity clauses: each clause is a
// DeltaSeq, a conjunction of delta propositions whose simultaneous
// truth forces some polynomial cell to Infinity. A choice vector is
// safe (never forces infinity) iff it matches no clause (§4.F).
type DeltaGraph struct {
	clauses []DeltaSeq
}

// NewDeltaGraph returns an empty delta graph (no forced infinities).
func NewDeltaGraph() *DeltaGraph { return &DeltaGraph{} }

// IsEmpty reports whether dg has no clauses.
func (dg *DeltaGraph) IsEmpty() bool { return len(dg.clauses) == 0 }

// Clauses returns dg's clauses.
func (dg *DeltaGraph) Clauses() []DeltaSeq { return dg.clauses }

// Add inserts clause into dg, applying subsumption: a clause whose
// delta-set is a subset of another's is strictly more general (it
// forbids a superset of choice vectors), so it replaces any clause it
// is a subset of, and is itself dropped if an existing clause already
// subsumes it (§4.F).
func (dg *DeltaGraph) Add(clause DeltaSeq) {
	for _, e := range dg.clauses {
		if subsetDeltaSeq(e, clause) {
			return
		}
	}
	kept := dg.clauses[:0:0]
	for _, e := range dg.clauses {
		if !subsetDeltaSeq(clause, e) {
			kept = append(kept, e)
		}
	}
	dg.clauses = append(kept, clause.Copy())
}

// removeDelta returns a copy of seq with the delta at the given index
// removed, if present.
func removeDelta(seq DeltaSeq, index int) DeltaSeq {
	out := make(DeltaSeq, 0, len(seq))
	for _, d := range seq {
		if d.Index != index {
			out = append(out, d)
		}
	}
	return out
}

func deltaSeqKey(seq DeltaSeq) string {
	s := ""
	for _, d := range seq {
		s += fmt.Sprintf("%d:%d,", d.Index, d.Value)
	}
	return s
}

// Fusion closes dg under fusion: whenever clauses agree on every delta
// except one index, and together cover all three values {0,1,2} at
// that index, the varying delta carries no information (every choice
// is forbidden regardless of its value there) and the three clauses
// collapse into their shared, shorter remainder. Repeats to a fixpoint
// (§4.F).
func (dg *DeltaGraph) Fusion() {
	for dg.fuseOnePass() {
	}
}

func (dg *DeltaGraph) fuseOnePass() bool {
	type group struct {
		base    DeltaSeq
		byValue map[int]int
	}
	groups := make(map[string]*group)
	for ci, c := range dg.clauses {
		for _, d := range c {
			base := removeDelta(c, d.Index)
			key := fmt.Sprintf("%d/%s", d.Index, deltaSeqKey(base))
			g, ok := groups[key]
			if !ok {
				g = &group{base: base, byValue: make(map[int]int)}
				groups[key] = g
			}
			g.byValue[d.Value] = ci
		}
	}
	for _, g := range groups {
		if len(g.byValue) != len(choiceValues) {
			continue
		}
		remove := make(map[int]bool, len(g.byValue))
		for _, ci := range g.byValue {
			remove[ci] = true
		}
		kept := make([]DeltaSeq, 0, len(dg.clauses))
		for ci, c := range dg.clauses {
			if !remove[ci] {
				kept = append(kept, c)
			}
		}
		dg.clauses = kept
		dg.Add(g.base)
		return true
	}
	return false
}
