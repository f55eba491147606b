package mwp

import (
	"log/slog"
	"time"
)

// ChoiceDomain is the standard ternary choice domain {0,1,2} every
// delta-index ranges over (§4.D "domain D, typically {0,1,2}").
var ChoiceDomain = []int{0, 1, 2}

// relationJSON is the JSON-serializable shape of a ScalarMatrix: row
// variable -> column variable -> scalar string.
type relationJSON map[string]map[string]string

func scalarMatrixToJSON(sm *ScalarMatrix) relationJSON {
	out := make(relationJSON, len(sm.Vars))
	for i, row := range sm.Vars {
		cells := make(map[string]string, len(sm.Vars))
		for j, col := range sm.Vars {
			cells[col] = sm.Cells[i][j].String()
		}
		out[row] = cells
	}
	return out
}

// choicesJSON is the JSON-serializable shape of a Choices: Infinite
// when the represented set is empty, otherwise the raw branch list
// (wildcard entries are -1).
type choicesJSON struct {
	Infinite bool    `json:"infinite"`
	Branches [][]int `json:"branches,omitempty"`
}

func choicesToJSON(c *Choices) *choicesJSON {
	if c == nil || c.IsEmpty() {
		return &choicesJSON{Infinite: true}
	}
	return &choicesJSON{Infinite: false, Branches: c.branches}
}

// FuncResult is the per-function analysis outcome, matching §6's
// output shape.
type FuncResult struct {
	Name      string            `json:"name"`
	Infinite  bool              `json:"infinite"`
	Variables []string          `json:"variables"`
	Index     int               `json:"index"`
	Relation  relationJSON      `json:"relation"`
	Choices   *choicesJSON      `json:"choices"`
	Bound     map[string]string `json:"bound"`
	InfFlows  [][2]string       `json:"inf_flows"`
}

// NewFuncResult derives the result for one function from its already-
// computed RelationList, delta-graph, delta-index count, and the
// (in, out) inf_flows pairs Derive collected while applying
// while/loop-correction.
func NewFuncResult(name string, rl *RelationList, dg *DeltaGraph, index int, domain []int, infFlows [][2]string) *FuncResult {
	fr := &FuncResult{Name: name, Index: index, Bound: map[string]string{}}
	r := rl.First()
	if r != nil {
		fr.Variables = r.Variables()
	}
	dg.Fusion()
	choices := GenerateChoices(domain, index, dg)
	if choices.IsEmpty() || r == nil {
		fr.Infinite = true
		fr.InfFlows = infFlows
		return fr
	}
	fr.Choices = choicesToJSON(choices)
	sm := r.ApplyChoice(choices.First())
	fr.Relation = scalarMatrixToJSON(sm)
	fr.Bound = ComputeBound(sm).Exprs
	return fr
}

// VResult is the minimal mwp-class a single variable can attain in an
// isolated loop body, or "inf" if no choice keeps it finite (§4.J).
type VResult struct {
	Variable string `json:"variable"`
	Class    string `json:"class"`
}

// LoopResult is the per-loop outcome of loop-focused analysis: every
// variable's minimal attainable class (§4.J, pymwp's LoopAnalysis).
type LoopResult struct {
	Variables []VResult `json:"variables"`
}

// classOrder is increasing scalar strength, searched to find the
// weakest floor each variable can be held to.
var classOrder = []Scalar{Zero, M, W, P}

func minimalClass(r *Relation, domain []int, index int, v string) string {
	for _, s := range classOrder {
		if !r.VarEval(domain, index, v, s).IsEmpty() {
			return s.String()
		}
	}
	return "inf"
}

// NewLoopResult builds a LoopResult from a derived-and-fixpointed loop
// relation list.
func NewLoopResult(rl *RelationList, domain []int, index int) *LoopResult {
	r := rl.First()
	if r == nil {
		return &LoopResult{}
	}
	vars := r.Variables()
	out := make([]VResult, 0, len(vars))
	for _, v := range vars {
		out = append(out, VResult{Variable: v, Class: minimalClass(r, domain, index, v)})
	}
	return &LoopResult{Variables: out}
}

// Result is the top-level analysis output, matching §6's JSON shape.
type Result struct {
	Functions   []*FuncResult `json:"functions"`
	Loops       []*LoopResult `json:"loops"`
	StartTimeNs int64         `json:"start_time_ns"`
	EndTimeNs   int64         `json:"end_time_ns"`
}

// Start records the wall-clock start of a run.
func (r *Result) Start() { r.StartTimeNs = time.Now().UnixNano() }

// Finish records the wall-clock end of a run.
func (r *Result) Finish() { r.EndTimeNs = time.Now().UnixNano() }

// Run analyzes every function in funcs, in order, against the given
// choice domain, and returns the aggregated Result (§4.J, pymwp's
// Analysis.run/Analysis.func two-phase driver). stopOnInfty threads
// through to Derive.
func Run(funcs []*FuncDecl, domain []int, logger *slog.Logger, stopOnInfty bool) *Result {
	res := &Result{}
	res.Start()
	for _, fn := range funcs {
		rl, dg, index, infFlows, _ := Derive(fn.Body, fn.Params, logger, stopOnInfty)
		res.Functions = append(res.Functions, NewFuncResult(fn.Name, rl, dg, index, domain, infFlows))
		for _, loop := range CollectLoops(fn.Body) {
			loopRL, _, loopIndex := AnalyzeLoop(loop.Body, loop.CtrlVar, nil, logger)
			res.Loops = append(res.Loops, NewLoopResult(loopRL, domain, loopIndex))
		}
	}
	res.Finish()
	return res
}
