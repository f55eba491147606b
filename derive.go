package mwp

import (
	"fmt"
	"log/slog"
)

// deriver carries the mutable state threaded through a single
// function's syntax-directed translation: the next free delta-index
// and the shared delta-graph loops contribute infinity witnesses to
// (§4.H, §9's "replace module-wide logger with a logger handle
// threaded through").
type deriver struct {
	logger      *slog.Logger
	index       int
	dg          *DeltaGraph
	stopOnInfty bool
	infFlows    [][2]string
}

func newDeriver(logger *slog.Logger, stopOnInfty bool) *deriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &deriver{logger: logger, dg: NewDeltaGraph(), stopOnInfty: stopOnInfty}
}

func (d *deriver) nextIndex() int {
	i := d.index
	d.index++
	return i
}

// Derive translates body (a function's statement list) into a
// RelationList, given its parameter variables as the starting axis. It
// returns the resulting list, the accumulated delta-graph, the number
// of delta-indices consumed, the (in, out) variable pairs responsible
// for every while/loop-correction clause (§4.J's inf_flows), and
// whether translation halted early because stopOnInfty was set and the
// delta-graph became unrecoverable (§4.H, §5).
func Derive(body []Stmt, params []string, logger *slog.Logger, stopOnInfty bool) (*RelationList, *DeltaGraph, int, [][2]string, bool) {
	d := newDeriver(logger, stopOnInfty)
	rl, halted := d.deriveStmts(IdentityList(params), body)
	return rl, d.dg, d.index, d.infFlows, halted
}

// AnalyzeLoop isolates a single loop body for loop-focused analysis
// (§4.J's LoopResult / pymwp's LoopAnalysis): it derives the body,
// takes its fixpoint, and applies the correction appropriate to the
// loop's shape — loop-correction against ctrlVar for a for-loop with a
// recognized controller, while-correction otherwise.
func AnalyzeLoop(body []Stmt, ctrlVar string, params []string, logger *slog.Logger) (*RelationList, *DeltaGraph, int) {
	d := newDeriver(logger, false)
	rl, _ := d.deriveStmts(IdentityList(params), body)
	fp := rl.Fixpoint()
	if ctrlVar == "" {
		fp.WhileCorrection(d.dg)
	} else {
		fp.LoopCorrection(ctrlVar, d.dg)
	}
	return fp, d.dg, d.index
}

// A LoopSite is one loop body discovered inside a function, paired
// with its controlling variable when it is a for-loop ("" for a
// while-loop). For a for-loop, Body has the post-clause appended, so
// that AnalyzeLoop's fixpoint sees the controller's own update —
// mirroring deriveStmt's *For case, which needs the same thing for
// LoopCorrection to find ctrlVar's row non-trivial.
type LoopSite struct {
	CtrlVar string
	Body    []Stmt
}

// CollectLoops walks stmts and every nested block/if/loop body,
// returning every while- or for-loop found, outermost first.
func CollectLoops(stmts []Stmt) []LoopSite {
	var out []LoopSite
	var walk func([]Stmt)
	walk = func(list []Stmt) {
		for _, s := range list {
			switch n := s.(type) {
			case *While:
				out = append(out, LoopSite{Body: n.Body})
				walk(n.Body)
			case *For:
				body := n.Body
				if n.Post != nil {
					body = append(append([]Stmt{}, n.Body...), n.Post)
				}
				out = append(out, LoopSite{CtrlVar: n.CtrlVar, Body: body})
				walk(n.Body)
			case *If:
				walk(n.Then)
				walk(n.Else)
			case *Block:
				walk(n.Stmts)
			}
		}
	}
	walk(stmts)
	return out
}

func (d *deriver) deriveStmts(rl *RelationList, stmts []Stmt) (*RelationList, bool) {
	for _, s := range stmts {
		rl = rl.Composition(d.deriveStmt(s))
		if d.stopOnInfty {
			d.dg.Fusion()
			if GenerateChoices(choiceValues[:], d.index, d.dg).IsEmpty() {
				return rl, true
			}
		}
	}
	return rl, false
}

// deriveStmt dispatches on s's concrete type, the exhaustive table in
// §4.H.
func (d *deriver) deriveStmt(s Stmt) *RelationList {
	switch n := s.(type) {
	case SkipStmt, BreakStmt, ContinueStmt, *Return:
		return IdentityList(nil)
	case *Decl:
		if n.Init == nil {
			return IdentityList(nil)
		}
		return d.deriveAssign(n.Name, n.Init)
	case *Assign:
		return d.deriveAssign(n.Name, n.Value)
	case *ExprStmt:
		return d.deriveExprStmt(n)
	case *If:
		thenRL, _ := d.deriveStmts(IdentityList(nil), n.Then)
		elseRL, _ := d.deriveStmts(IdentityList(nil), n.Else)
		return thenRL.Union(elseRL)
	case *While:
		bodyRL, _ := d.deriveStmts(IdentityList(nil), n.Body)
		fp := bodyRL.Fixpoint()
		d.infFlows = append(d.infFlows, fp.WhileCorrection(d.dg)...)
		return fp
	case *For:
		var initRL *RelationList
		if n.Init != nil {
			initRL = d.deriveAssign(n.Init.Name, n.Init.Value)
		} else {
			initRL = IdentityList(nil)
		}
		full := n.Body
		if n.Post != nil {
			full = append(append([]Stmt{}, n.Body...), n.Post)
		}
		bodyRL, _ := d.deriveStmts(IdentityList(nil), full)
		fp := bodyRL.Fixpoint()
		d.infFlows = append(d.infFlows, fp.LoopCorrection(n.CtrlVar, d.dg)...)
		return initRL.Composition(fp)
	case *Block:
		rl, _ := d.deriveStmts(IdentityList(nil), n.Stmts)
		return rl
	default:
		d.logger.Warn("unsupported syntax, treating as skip", "node", fmt.Sprintf("%T", s))
		return IdentityList(nil)
	}
}

// deriveExprStmt handles a bare expression statement: a standalone
// increment/decrement (`i++;`), or a no-op intrinsic call
// (assert/assume) which is skip-like.
func (d *deriver) deriveExprStmt(es *ExprStmt) *RelationList {
	switch e := es.X.(type) {
	case *UnaryExpr:
		if id, ok := e.X.(*Ident); ok {
			switch e.Op {
			case "++":
				return d.deriveBinary(id.Name, "+", e.X, &IntLit{Value: 1})
			case "--":
				return d.deriveBinary(id.Name, "-", e.X, &IntLit{Value: 1})
			}
		}
	case *CallExpr:
		if e.Name == "assert" || e.Name == "assume" {
			return IdentityList(nil)
		}
	}
	d.logger.Warn("unsupported syntax, treating as skip", "node", fmt.Sprintf("%T", es.X))
	return IdentityList(nil)
}

// deriveAssign translates `x = rhs` per §4.H's assignment rules.
func (d *deriver) deriveAssign(x string, rhs Expr) *RelationList {
	switch e := rhs.(type) {
	case *IntLit:
		return d.constantAssign(x)
	case *Ident:
		return d.aliasAssign(x, e.Name)
	case *BinaryExpr:
		return d.deriveBinary(x, e.Op, e.X, e.Y)
	case *UnaryExpr:
		return d.deriveUnaryAssign(x, e)
	default:
		d.logger.Warn("unsupported syntax in assignment, treating as fresh constant", "node", fmt.Sprintf("%T", rhs))
		return d.constantAssign(x)
	}
}

// constantAssign introduces x as a fresh input: the identity relation
// over the singleton axis {x} (§4.H).
func (d *deriver) constantAssign(x string) *RelationList {
	return IdentityList([]string{x})
}

// aliasAssign encodes `x = y`: column x gets (o, m) over axis {x,y}
// (§4.H). When x and y name the same variable the statement is a
// no-op.
func (d *deriver) aliasAssign(x, y string) *RelationList {
	if x == y {
		return IdentityList([]string{x})
	}
	vars := []string{x, y}
	base := Identity(vars)
	vector := []*Polynomial{ScalarPolynomial(Zero), ScalarPolynomial(M)}
	return NewRelationList(base.ReplaceColumn(vector, x))
}

// deriveUnaryAssign lowers `x = unary(y)` to the equivalent binary or
// constant form per §4.H's table.
func (d *deriver) deriveUnaryAssign(x string, u *UnaryExpr) *RelationList {
	switch u.Op {
	case "++":
		return d.deriveBinary(x, "+", u.X, &IntLit{Value: 1})
	case "--":
		return d.deriveBinary(x, "-", u.X, &IntLit{Value: 1})
	case "!", "sizeof":
		return d.constantAssign(x)
	case "+":
		if id, ok := u.X.(*Ident); ok {
			return d.aliasAssign(x, id.Name)
		}
		return d.constantAssign(x)
	case "-":
		return d.deriveBinary(x, "*", u.X, &IntLit{Value: -1})
	default:
		d.logger.Warn("unsupported unary operator, treating as fresh constant", "op", u.Op)
		return d.constantAssign(x)
	}
}

func identOrConst(e Expr) (name string, isConst bool) {
	if id, ok := e.(*Ident); ok {
		return id.Name, false
	}
	return "", true
}

// binaryEntry is one (variable, contributed-polynomial) pair destined
// for the new column being built for x.
type binaryEntry struct {
	name string
	poly *Polynomial
}

// deriveBinary builds the relation for `x = y op z`, op one of "+",
// "-", "*", consuming one fresh delta-index and following the
// scalar table in §4.H exactly: a constant operand always yields
// (m,m,m); otherwise multiplication yields (w,w,w) (doubled across
// both operands when they differ), and addition/subtraction yields
// (p,p,w) when the operands are the same variable or the split
// (m,p,w)/(p,m,w) when they differ. A leading 0 is added for x's own
// row unless x is itself one of the operands.
func (d *deriver) deriveBinary(x, op string, yExpr, zExpr Expr) *RelationList {
	idx := d.nextIndex()
	yName, yConst := identOrConst(yExpr)
	zName, zConst := identOrConst(zExpr)

	var entries []binaryEntry
	switch {
	case yConst || zConst:
		opName := yName
		if yConst {
			opName = zName
		}
		entries = []binaryEntry{{opName, FromScalars(idx, M, M, M)}}
	case yName == zName:
		var poly *Polynomial
		if op == "*" {
			poly = FromScalars(idx, W, W, W)
		} else {
			poly = FromScalars(idx, P, P, W)
		}
		entries = []binaryEntry{{yName, poly}}
	default:
		var polyY, polyZ *Polynomial
		if op == "*" {
			polyY, polyZ = FromScalars(idx, W, W, W), FromScalars(idx, W, W, W)
		} else {
			polyY, polyZ = FromScalars(idx, M, P, W), FromScalars(idx, P, M, W)
		}
		entries = []binaryEntry{{yName, polyY}, {zName, polyZ}}
	}

	xCovered := false
	for _, e := range entries {
		if e.name == x {
			xCovered = true
		}
	}
	names := make([]string, 0, len(entries)+1)
	polys := make(map[string]*Polynomial, len(entries)+1)
	if !xCovered {
		names = append(names, x)
		polys[x] = ScalarPolynomial(Zero)
	}
	for _, e := range entries {
		if _, ok := polys[e.name]; !ok {
			names = append(names, e.name)
		}
		polys[e.name] = e.poly
	}

	base := Identity(names)
	vector := make([]*Polynomial, len(names))
	for i, n := range names {
		vector[i] = polys[n]
	}
	return NewRelationList(base.ReplaceColumn(vector, x))
}
