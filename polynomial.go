package mwp

import (
	"strings"

	"github.com/jba/omap"
)

// A Polynomial is an ordered, absorbed list of [Monomial]s: no two
// monomials share a delta-set (their scalars would be merged via ⊕),
// and no monomial is subsumed by another (§4.C). Internally it is
// stored as an [omap.MapFunc] keyed by delta-set and ordered by
// [compareDeltaSeq], generalizing the teacher's ordered
// Polynomial[K]'s `*omap.MapFunc[Monomial, K]`.
type Polynomial struct {
	m *omap.MapFunc[DeltaSeq, Scalar]
}

// NewPolynomial builds a polynomial from a set of monomial terms,
// normalizing duplicates and absorption as it goes.
func NewPolynomial(terms ...Monomial) *Polynomial {
	var list []Monomial
	for _, t := range terms {
		list = insertMonomial(list, t)
	}
	return buildPolynomial(list)
}

// ZeroPolynomial returns the additive identity, the polynomial with no
// terms.
func ZeroPolynomial() *Polynomial { return NewPolynomial() }

// ScalarPolynomial returns the single-monomial polynomial s (no
// deltas). ScalarPolynomial(Zero) is the zero polynomial;
// ScalarPolynomial(M) is the multiplicative identity.
func ScalarPolynomial(s Scalar) *Polynomial {
	return NewPolynomial(NewMonomial(s))
}

// FromScalars builds the polynomial a·δ(0,index) + b·δ(1,index) +
// c·δ(2,index): the three alternative contributions a single
// derivation choice at the given index offers (§4.H).
func FromScalars(index int, a, b, c Scalar) *Polynomial {
	return NewPolynomial(
		NewMonomial(a, Delta{Value: 0, Index: index}),
		NewMonomial(b, Delta{Value: 1, Index: index}),
		NewMonomial(c, Delta{Value: 2, Index: index}),
	)
}

func buildPolynomial(list []Monomial) *Polynomial {
	m := omap.NewMapFunc[DeltaSeq, Scalar](compareDeltaSeq)
	for _, t := range list {
		if !t.IsAbsent() {
			m.Set(t.Deltas, t.Scalar)
		}
	}
	return &Polynomial{m: m}
}

// insertMonomial inserts m into the absorbed monomial list, merging an
// equal delta-set via ⊕ and dropping/removing subsumed monomials per
// §4.C's absorption rule.
func insertMonomial(list []Monomial, m Monomial) []Monomial {
	if m.IsAbsent() {
		return list
	}
	out := make([]Monomial, 0, len(list)+1)
	keepM := true
	merged := false
	for _, e := range list {
		switch {
		case equalDeltaSeq(e.Deltas, m.Deltas):
			s := SumScalar(e.Scalar, m.Scalar)
			merged, keepM = true, false
			if s != Zero {
				out = append(out, Monomial{Scalar: s, Deltas: e.Deltas})
			}
		case !merged && e.Subsumes(m):
			keepM = false
			out = append(out, e)
		case m.Subsumes(e):
			// e is dropped in favor of (the eventually appended) m.
		default:
			out = append(out, e)
		}
	}
	if keepM {
		out = append(out, m)
	}
	return out
}

// terms returns the polynomial's monomials in ascending order.
func (p *Polynomial) terms() []Monomial {
	out := make([]Monomial, 0, p.m.Len())
	for seq, sc := range p.m.All() {
		out = append(out, Monomial{Scalar: sc, Deltas: seq})
	}
	return out
}

// Terms returns the polynomial's monomials in ascending order.
func (p *Polynomial) Terms() []Monomial { return p.terms() }

// Len reports the number of monomials in p.
func (p *Polynomial) Len() int {
	if p == nil {
		return 0
	}
	return p.m.Len()
}

// Add sets returns the sum p + other, §4.C.
func (p *Polynomial) Add(other *Polynomial) *Polynomial {
	list := p.terms()
	for _, m := range other.terms() {
		list = insertMonomial(list, m)
	}
	return buildPolynomial(list)
}

// Mul returns the product p * other, §4.C. The implementation
// computes the full term-by-term product and folds every resulting
// monomial through the same absorbing insertion [Add] uses, which is
// equivalent to (if simpler than) the table/priority-queue merge
// described in §4.C for the small polynomials this analysis produces.
func (p *Polynomial) Mul(other *Polynomial) *Polynomial {
	var list []Monomial
	for _, pm := range p.terms() {
		for _, om := range other.terms() {
			prod := pm.Product(om)
			if prod.IsAbsent() {
				continue
			}
			list = insertMonomial(list, prod)
		}
	}
	return buildPolynomial(list)
}

// Eval computes ⊕ over monomials of monomial.Eval(v), short-circuiting
// once the result reaches Infinity.
func (p *Polynomial) Eval(v []int) Scalar {
	result := Zero
	for _, m := range p.terms() {
		result = SumScalar(result, m.Eval(v))
		if result == Infinity {
			break
		}
	}
	return result
}

// Equal reports whether p and other have the same monomials in the
// same order.
func (p *Polynomial) Equal(other *Polynomial) bool {
	if p.Len() != other.Len() {
		return false
	}
	pt, ot := p.terms(), other.terms()
	for i := range pt {
		if !pt[i].Equal(ot[i]) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of p.
func (p *Polynomial) Copy() *Polynomial {
	return buildPolynomial(p.terms())
}

// IsZero reports whether p has no terms.
func (p *Polynomial) IsZero() bool { return p.Len() == 0 }

// String returns a human-readable rendering of p.
func (p *Polynomial) String() string {
	if p.Len() == 0 {
		return "0"
	}
	parts := make([]string, 0, p.Len())
	for _, m := range p.terms() {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, " + ")
}
