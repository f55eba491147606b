package mwp

import (
	"fmt"
	"strings"
)

// maxFixpointIter bounds the Kleene-star saturation loop in Fixpoint.
// The semiring has height 4 and the delta-index set used by any single
// relation is finite, so the sequence I, I⊕M, I⊕M⊕M², … always
// stabilizes well before this many rounds for any relation this
// analysis builds; the cap only guards against a translator bug.
const maxFixpointIter = 256

// A Relation is a square matrix of [Polynomial]s addressed by variable
// name: cell (row=x, col=y) is the polynomial contribution of input
// variable x to output variable y (§3, §4.D).
type Relation struct {
	vars  []string
	index map[string]int
	cells [][]*Polynomial
}

func newRelation(vars []string) *Relation {
	r := &Relation{
		vars:  append([]string{}, vars...),
		index: make(map[string]int, len(vars)),
		cells: make([][]*Polynomial, len(vars)),
	}
	for i, v := range vars {
		r.index[v] = i
	}
	for i := range r.cells {
		r.cells[i] = make([]*Polynomial, len(vars))
		for j := range r.cells[i] {
			r.cells[i][j] = ZeroPolynomial()
		}
	}
	return r
}

// Identity returns the identity relation over vars: scalar m on the
// diagonal, scalar 0 elsewhere.
func Identity(vars []string) *Relation {
	r := newRelation(vars)
	for i := range vars {
		for j := range vars {
			if i == j {
				r.cells[i][j] = ScalarPolynomial(M)
			} else {
				r.cells[i][j] = ScalarPolynomial(Zero)
			}
		}
	}
	return r
}

// Variables returns the relation's axis, in order.
func (r *Relation) Variables() []string { return append([]string{}, r.vars...) }

// At returns the polynomial at (row, col), or nil if either variable
// is not on the axis.
func (r *Relation) At(row, col string) *Polynomial {
	i, ok1 := r.index[row]
	j, ok2 := r.index[col]
	if !ok1 || !ok2 {
		return nil
	}
	return r.cells[i][j]
}

// Set places p at (row, col) in r. Both variables must be on r's axis.
func (r *Relation) Set(row, col string, p *Polynomial) {
	i, ok1 := r.index[row]
	j, ok2 := r.index[col]
	if !ok1 || !ok2 {
		panic(fmt.Sprintf("mwp: Relation.Set: %q or %q not on axis %v", row, col, r.vars))
	}
	r.cells[i][j] = p
}

// ReplaceColumn returns a copy of r with column variable's entries
// replaced by vector, ordered to match r's axis. Used to encode
// assignments (§4.D, §4.H).
func (r *Relation) ReplaceColumn(vector []*Polynomial, variable string) *Relation {
	j, ok := r.index[variable]
	if !ok {
		panic(fmt.Sprintf("mwp: Relation.ReplaceColumn: %q not on axis %v", variable, r.vars))
	}
	if len(vector) != len(r.vars) {
		panic(fmt.Sprintf("mwp: Relation.ReplaceColumn: vector length %d != axis length %d", len(vector), len(r.vars)))
	}
	out := r.Copy()
	for i := range out.vars {
		out.cells[i][j] = vector[i]
	}
	return out
}

// Copy returns a deep copy of r.
func (r *Relation) Copy() *Relation {
	out := newRelation(r.vars)
	for i := range r.vars {
		for j := range r.vars {
			out.cells[i][j] = r.cells[i][j].Copy()
		}
	}
	return out
}

// unionVars returns the ordered union of a and b: a's variables, then
// b's variables not already in a.
func unionVars(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, v := range a {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// pad returns r re-expressed over axis, padding new rows/columns with
// the identity (diagonal m, off-diagonal 0) so composing with another
// relation padded to the same axis leaves variables r doesn't mention
// unconstrained (§4.D "both matrices are padded to the union with
// identity").
func (r *Relation) pad(axis []string) *Relation {
	out := newRelation(axis)
	for i, vi := range axis {
		ii, iok := r.index[vi]
		for j, vj := range axis {
			jj, jok := r.index[vj]
			switch {
			case iok && jok:
				out.cells[i][j] = r.cells[ii][jj]
			case i == j:
				out.cells[i][j] = ScalarPolynomial(M)
			default:
				out.cells[i][j] = ScalarPolynomial(Zero)
			}
		}
	}
	return out
}

// Composition computes self ∘ other: align axes by taking the ordered
// union and padding both matrices with identity, then multiply over
// the polynomial algebra, out[i][j] = Σk self[i][k]·other[k][j].
func (r *Relation) Composition(other *Relation) *Relation {
	axis := unionVars(r.vars, other.vars)
	a, b := r.pad(axis), other.pad(axis)
	n := len(axis)
	out := newRelation(axis)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := ZeroPolynomial()
			for k := 0; k < n; k++ {
				sum = sum.Add(a.cells[i][k].Mul(b.cells[k][j]))
			}
			out.cells[i][j] = sum
		}
	}
	return out
}

// Sum computes self ⊕ other elementwise, after padding to the union
// axis.
func (r *Relation) Sum(other *Relation) *Relation {
	axis := unionVars(r.vars, other.vars)
	a, b := r.pad(axis), other.pad(axis)
	n := len(axis)
	out := newRelation(axis)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.cells[i][j] = a.cells[i][j].Add(b.cells[i][j])
		}
	}
	return out
}

// Equal reports whether r and other have the same axis (in order) and
// equal cells.
func (r *Relation) Equal(other *Relation) bool {
	if len(r.vars) != len(other.vars) {
		return false
	}
	for i, v := range r.vars {
		if other.vars[i] != v {
			return false
		}
	}
	for i := range r.vars {
		for j := range r.vars {
			if !r.cells[i][j].Equal(other.cells[i][j]) {
				return false
			}
		}
	}
	return true
}

// Fixpoint computes the star M*, the least upper bound of I ⊕ M ⊕ M²
// ⊕ …, by saturation: the semiring has height 4 and the relation's
// delta-index set is finite, so iterating X_{k+1} = I ⊕ X_k∘M reaches
// a fixed point in finitely many rounds (§4.D, §9).
func (r *Relation) Fixpoint() *Relation {
	id := Identity(r.vars)
	acc := id
	for i := 0; i < maxFixpointIter; i++ {
		next := id.Sum(acc.Composition(r))
		if next.Equal(acc) {
			return next
		}
		acc = next
	}
	return acc
}

// WhileCorrection contributes an infinity clause to dg for every
// diagonal cell whose fixpoint carries a scalar stronger than m: a
// variable cannot both be self-dependent and exceed m growth inside a
// while loop (§4.D). It returns an (in, out) pair for every clause it
// contributes, naming the variable whose self-dependency forced it —
// the witnesses behind §4.J's inf_flows.
func (r *Relation) WhileCorrection(dg *DeltaGraph) [][2]string {
	var flows [][2]string
	for i := range r.vars {
		for _, m := range r.cells[i][i].terms() {
			if m.Scalar > M {
				dg.Add(m.Deltas)
				flows = append(flows, [2]string{r.vars[i], r.vars[i]})
			}
		}
	}
	return flows
}

// LoopCorrection contributes an infinity clause to dg for every cell
// in ctrlVar's row whose scalar exceeds w: a for-loop's controlling
// variable must not feed more than weak-polynomial growth into any
// output (§4.D). It returns an (in, out) pair for every clause it
// contributes, naming ctrlVar and the output variable its row fed
// into — the witnesses behind §4.J's inf_flows.
func (r *Relation) LoopCorrection(ctrlVar string, dg *DeltaGraph) [][2]string {
	i, ok := r.index[ctrlVar]
	if !ok {
		return nil
	}
	var flows [][2]string
	for j := range r.vars {
		for _, m := range r.cells[i][j].terms() {
			if m.Scalar > W {
				dg.Add(m.Deltas)
				flows = append(flows, [2]string{ctrlVar, r.vars[j]})
			}
		}
	}
	return flows
}

// A ScalarMatrix is the result of applying one derivation choice to a
// Relation: a scalar matrix over the same axis.
type ScalarMatrix struct {
	Vars  []string
	Cells [][]Scalar
}

// At returns the scalar at (row, col).
func (sm *ScalarMatrix) At(row, col string) Scalar {
	ri, ci := -1, -1
	for i, v := range sm.Vars {
		if v == row {
			ri = i
		}
		if v == col {
			ci = i
		}
	}
	if ri == -1 || ci == -1 {
		return Zero
	}
	return sm.Cells[ri][ci]
}

// ApplyChoice evaluates every cell's polynomial at the given choice
// vector, returning the resulting scalar matrix (§4.D).
func (r *Relation) ApplyChoice(v []int) *ScalarMatrix {
	n := len(r.vars)
	cells := make([][]Scalar, n)
	for i := range cells {
		cells[i] = make([]Scalar, n)
		for j := range cells[i] {
			cells[i][j] = r.cells[i][j].Eval(v)
		}
	}
	return &ScalarMatrix{Vars: r.Variables(), Cells: cells}
}

// infinityClauses collects the delta-sets of every Infinity-scalar
// monomial across the given cells: a choice vector keeps a cell finite
// iff it matches none of these clauses.
func infinityClauses(cells []*Polynomial) *DeltaGraph {
	dg := NewDeltaGraph()
	for _, p := range cells {
		for _, m := range p.terms() {
			if m.Scalar == Infinity {
				dg.Add(m.Deltas)
			}
		}
	}
	dg.Fusion()
	return dg
}

// Eval computes the set of choice-vectors, over the given domain and
// the index range [0,N), that keep every cell of r finite (§4.D).
func (r *Relation) Eval(domain []int, n int) *Choices {
	var all []*Polynomial
	for i := range r.vars {
		all = append(all, r.cells[i]...)
	}
	return GenerateChoices(domain, n, infinityClauses(all))
}

// VarEval asks whether there is a choice keeping every contribution to
// variable var at or below floor (Infinity if no floor is given),
// returning the resulting (possibly infinite) Choices (§4.D).
func (r *Relation) VarEval(domain []int, n int, v string, floor ...Scalar) *Choices {
	limit := Infinity
	if len(floor) > 0 {
		limit = floor[0]
	}
	j, ok := r.index[v]
	if !ok {
		return GenerateChoices(domain, n, NewDeltaGraph())
	}
	dg := NewDeltaGraph()
	for i := range r.vars {
		for _, m := range r.cells[i][j].terms() {
			if m.Scalar > limit {
				dg.Add(m.Deltas)
			}
		}
	}
	dg.Fusion()
	return GenerateChoices(domain, n, dg)
}

// VarEvalAll runs VarEval for every variable on r's axis.
func (r *Relation) VarEvalAll(domain []int, n int, floor ...Scalar) map[string]*Choices {
	out := make(map[string]*Choices, len(r.vars))
	for _, v := range r.vars {
		out[v] = r.VarEval(domain, n, v, floor...)
	}
	return out
}

// String renders r as a labeled grid.
func (r *Relation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "vars: %v\n", r.vars)
	for i, row := range r.vars {
		for j, col := range r.vars {
			fmt.Fprintf(&b, "  %s->%s: %s\n", row, col, r.cells[i][j])
		}
	}
	return b.String()
}
