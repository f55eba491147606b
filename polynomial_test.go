package mwp

import "testing"

func TestPolynomialAddAbsorbs(t *testing.T) {
	strong := NewMonomial(P, Delta{Value: 0, Index: 0})
	weak := NewMonomial(M, Delta{Value: 0, Index: 0}, Delta{Value: 1, Index: 1})
	p := NewPolynomial(strong).Add(NewPolynomial(weak))
	if p.Len() != 1 {
		t.Fatalf("expected the weaker, subsumed monomial to be absorbed, got %v", p)
	}
	if p.terms()[0].Scalar != P {
		t.Errorf("expected surviving monomial's scalar to be P, got %v", p.terms()[0].Scalar)
	}
}

func TestPolynomialAddMergesEqualDeltaSets(t *testing.T) {
	a := NewMonomial(M, Delta{Value: 0, Index: 0})
	b := NewMonomial(W, Delta{Value: 0, Index: 0})
	p := NewPolynomial(a).Add(NewPolynomial(b))
	if p.Len() != 1 {
		t.Fatalf("expected one merged term, got %d", p.Len())
	}
	if got := p.terms()[0].Scalar; got != W {
		t.Errorf("expected merged scalar SumScalar(m,w) = w, got %v", got)
	}
}

func TestFromScalarsEval(t *testing.T) {
	p := FromScalars(0, M, W, P)
	tests := []struct {
		choice []int
		want   Scalar
	}{
		{[]int{0}, M},
		{[]int{1}, W},
		{[]int{2}, P},
	}
	for _, test := range tests {
		if got := p.Eval(test.choice); got != test.want {
			t.Errorf("Eval(%v) = %v, want %v", test.choice, got, test.want)
		}
	}
}

func TestPolynomialMul(t *testing.T) {
	p := FromScalars(0, M, W, P)
	q := ScalarPolynomial(M)
	got := p.Mul(q)
	if !got.Equal(p) {
		t.Errorf("multiplying by the scalar identity m should be a no-op: got %v, want %v", got, p)
	}

	zero := p.Mul(ZeroPolynomial())
	if !zero.IsZero() {
		t.Errorf("multiplying by the zero polynomial should give zero, got %v", zero)
	}
}

func TestPolynomialEqual(t *testing.T) {
	a := NewPolynomial(NewMonomial(M, Delta{Value: 0, Index: 0}))
	b := NewPolynomial(NewMonomial(M, Delta{Value: 0, Index: 0}))
	if !a.Equal(b) {
		t.Errorf("expected equal polynomials built from equal terms")
	}
	c := NewPolynomial(NewMonomial(W, Delta{Value: 0, Index: 0}))
	if a.Equal(c) {
		t.Errorf("did not expect polynomials with different scalars to be equal")
	}
}
