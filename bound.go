package mwp

import "fmt"

// A Bound is the per-output-variable symbolic max-plus expression
// reconstructed from a chosen scalar matrix (§4.I).
type Bound struct {
	Vars  []string
	Exprs map[string]string
}

// ComputeBound builds the bound for every output variable on sm's
// axis by folding each column top to bottom through foldScalar.
func ComputeBound(sm *ScalarMatrix) *Bound {
	exprs := make(map[string]string, len(sm.Vars))
	for j, out := range sm.Vars {
		exprs[out] = columnBound(sm, j)
	}
	return &Bound{Vars: append([]string{}, sm.Vars...), Exprs: exprs}
}

func columnBound(sm *ScalarMatrix, col int) string {
	acc := ""
	for i, in := range sm.Vars {
		acc = foldScalar(acc, sm.Cells[i][col], in)
		if acc == infinitySymbol {
			return infinitySymbol
		}
	}
	if acc == "" {
		return "0"
	}
	return acc
}

const infinitySymbol = "∞"

// foldScalar folds one input variable's contribution into the running
// expression acc, per §4.I: m contributes max(acc, x); w contributes
// max(acc, x*acc), a weak-polynomial dependency on the variable
// accumulated so far; p contributes x + acc, direct polynomial growth.
// The first contribution to an empty acc is just the variable itself,
// since there is nothing yet to max or multiply against.
func foldScalar(acc string, s Scalar, x string) string {
	switch s {
	case Zero:
		return acc
	case M:
		if acc == "" {
			return x
		}
		return fmt.Sprintf("max(%s, %s)", acc, x)
	case W:
		if acc == "" {
			return x
		}
		return fmt.Sprintf("max(%s, %s*%s)", acc, x, acc)
	case P:
		if acc == "" {
			return x
		}
		return fmt.Sprintf("%s + %s", x, acc)
	case Infinity:
		return infinitySymbol
	default:
		return acc
	}
}
