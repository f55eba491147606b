package mwp

// A RelationList is a non-deterministic bag of [Relation]s: each
// element is one possible derivation's matrix, and the list as a whole
// stands for "any one of these". Matrix operations are lifted
// pointwise over the list, and the list is deduplicated (structurally
// equal relations collapse) after every operation that can introduce
// duplicates (§4.E).
type RelationList struct {
	list []*Relation
}

// NewRelationList wraps rs (deduplicated) into a RelationList.
func NewRelationList(rs ...*Relation) *RelationList {
	return (&RelationList{list: rs}).dedup()
}

// IdentityList returns the singleton list containing the identity
// relation over vars.
func IdentityList(vars []string) *RelationList {
	return NewRelationList(Identity(vars))
}

// List returns rl's relations.
func (rl *RelationList) List() []*Relation { return rl.list }

// Len reports the number of relations in rl.
func (rl *RelationList) Len() int { return len(rl.list) }

func (rl *RelationList) dedup() *RelationList {
	out := rl.list[:0:0]
	for _, r := range rl.list {
		dup := false
		for _, e := range out {
			if e.Equal(r) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	rl.list = out
	return rl
}

// Composition composes every relation in rl with every relation in
// other, representing sequential composition of two non-deterministic
// choices (§4.E).
func (rl *RelationList) Composition(other *RelationList) *RelationList {
	out := make([]*Relation, 0, len(rl.list)*len(other.list))
	for _, a := range rl.list {
		for _, b := range other.list {
			out = append(out, a.Composition(b))
		}
	}
	return NewRelationList(out...)
}

// Union returns the union of rl and other's relations: "either this
// derivation or that one", used to combine if/else branches (§4.E).
func (rl *RelationList) Union(other *RelationList) *RelationList {
	out := make([]*Relation, 0, len(rl.list)+len(other.list))
	out = append(out, rl.list...)
	out = append(out, other.list...)
	return NewRelationList(out...)
}

// ReplaceColumn lifts Relation.ReplaceColumn pointwise over rl.
func (rl *RelationList) ReplaceColumn(vector []*Polynomial, variable string) *RelationList {
	out := make([]*Relation, len(rl.list))
	for i, r := range rl.list {
		out[i] = r.ReplaceColumn(vector, variable)
	}
	return NewRelationList(out...)
}

// Fixpoint lifts Relation.Fixpoint pointwise over rl.
func (rl *RelationList) Fixpoint() *RelationList {
	out := make([]*Relation, len(rl.list))
	for i, r := range rl.list {
		out[i] = r.Fixpoint()
	}
	return NewRelationList(out...)
}

// WhileCorrection lifts Relation.WhileCorrection over every relation
// in rl, accumulating into the single shared dg, and concatenates
// every relation's reported inf_flows pairs.
func (rl *RelationList) WhileCorrection(dg *DeltaGraph) [][2]string {
	var flows [][2]string
	for _, r := range rl.list {
		flows = append(flows, r.WhileCorrection(dg)...)
	}
	return flows
}

// LoopCorrection lifts Relation.LoopCorrection over every relation in
// rl, accumulating into the single shared dg, and concatenates every
// relation's reported inf_flows pairs.
func (rl *RelationList) LoopCorrection(ctrlVar string, dg *DeltaGraph) [][2]string {
	var flows [][2]string
	for _, r := range rl.list {
		flows = append(flows, r.LoopCorrection(ctrlVar, dg)...)
	}
	return flows
}

// First returns rl's first relation, or nil if rl is empty.
func (rl *RelationList) First() *Relation {
	if len(rl.list) == 0 {
		return nil
	}
	return rl.list[0]
}
