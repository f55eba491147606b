package mwp_test

import (
	"fmt"
	"sort"

	"github.com/fumin/mwp"
)

func analyze(src string) *mwp.FuncResult {
	funcs, err := mwp.ParseProgram(src)
	if err != nil {
		panic(err)
	}
	res := mwp.Run(funcs, mwp.ChoiceDomain, nil, false)
	return res.Functions[0]
}

// Example_emptyMain shows the trivial case: no variables, no
// delta-indices consumed, never infinite.
func Example_emptyMain() {
	fr := analyze(`int main(){}`)
	fmt.Println(fr.Name, fr.Infinite, len(fr.Variables), fr.Index)
	// Output:
	// main false 0 0
}

// Example_polynomialLoop shows a self-dependent multiplication inside
// a while loop forcing an infinite bound: X0 grows by multiplying
// itself with the loop-varying X1, which while-correction rejects at
// every choice.
func Example_polynomialLoop() {
	fr := analyze(`int main(){
		X0 = 1;
		X1 = 1;
		while (X1 < 10) {
			X0 = X1 * X0;
			X1 = X1 + X0;
		}
	}`)
	fmt.Println(fr.Infinite)
	// Output:
	// true
}

// Example_straightLine shows the same assignments run once, with no
// loop to trigger while-correction: every variable stays finite.
func Example_straightLine() {
	fr := analyze(`int main(){
		X0 = 1;
		X1 = 1;
		X0 = X1 * X0;
		X1 = X1 + X0;
	}`)
	vars := append([]string{}, fr.Variables...)
	sort.Strings(vars)
	fmt.Println(fr.Infinite, vars)
	// Output:
	// false [X0 X1]
}

// Example_variableNotWritten shows variables that are read but never
// assigned (X1, X3) still join the tracked axis alongside the
// variables they flow into (X2, X4).
func Example_variableNotWritten() {
	fr := analyze(`int main(){
		X2 = X3 + X1;
		X4 = X2;
	}`)
	vars := append([]string{}, fr.Variables...)
	sort.Strings(vars)
	fmt.Println(fr.Infinite, vars)
	// Output:
	// false [X1 X2 X3 X4]
}

// Example_ifElse shows a conditional with two branches assigning the
// same variable: the derivation keeps one relation per branch rather
// than merging them, and reports on the first (the then-branch here),
// whose axis picks up the then-branch's own locals alongside the
// variables assigned before the conditional.
func Example_ifElse() {
	fr := analyze(`int main(){
		x = 1;
		y = 1;
		if (x < 10) {
			x1 = x;
			x3 = y + x1;
		} else {
			x2 = x;
			x3 = x2 + y;
		}
	}`)
	vars := append([]string{}, fr.Variables...)
	sort.Strings(vars)
	fmt.Println(fr.Infinite, vars)
	// Output:
	// false [x x1 x3 y]
}
