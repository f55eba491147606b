package mwp

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/fumin/mwp/parse"
	"github.com/fumin/mwp/parse/scan"
)

// ParseProgram turns C-like source text into the FuncDecl vocabulary
// derive.go walks. It understands a deliberately small surface: typed
// function declarations, blocks, declarations/assignments, if/else,
// while, for, break/continue/return, no-op calls, and the ++/--/!
// unary family — everything §4.H's dispatch table has a rule for.
// Anything past that (structs, pointers, multiple return values) is out
// of scope and reported as a parse error rather than silently accepted.
// A call statement `name(args);` is accepted whatever its name; inside
// an arithmetic expression, `f(y)` reads as the implicit product f*(y).
func ParseProgram(src string) ([]*FuncDecl, error) {
	s := scan.NewScanner(strings.NewReader(src))
	var funcs []*FuncDecl
	for {
		tok := peek(s)
		if tok.Type == scan.EOF {
			return funcs, nil
		}
		fn, err := parseFuncDecl(s)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		funcs = append(funcs, fn)
	}
}

func peek(s *scan.Scanner) scan.Token {
	t := s.Next()
	s.Unread(t)
	return t
}

func expect(s *scan.Scanner, typ scan.Type, text string) (scan.Token, error) {
	tok := s.Next()
	if tok.Type != typ || (text != "" && tok.Text != text) {
		return tok, errors.Errorf("%d: expected %q, got %q", tok.Location.Column, text, tok.Text)
	}
	return tok, nil
}

func nodeToExpr(n *parse.Node) Expr {
	switch n.Token.Type {
	case scan.Parenthesis:
		return nodeToExpr(n.Left)
	case scan.Int:
		v, _ := strconv.ParseInt(n.Token.Text, 10, 64)
		return &IntLit{Value: v}
	case scan.Identifier:
		return &Ident{Name: n.Token.Text}
	case scan.Operator:
		if n.Right == nil {
			return &UnaryExpr{Op: n.Token.Text, X: nodeToExpr(n.Left), Postfix: true}
		}
		if n.Left != nil && n.Left.Token.Location.Line == parse.AddedLine && n.Left.Token.Type == scan.Int {
			return &UnaryExpr{Op: n.Token.Text, X: nodeToExpr(n.Right), Postfix: false}
		}
		return &BinaryExpr{Op: n.Token.Text, X: nodeToExpr(n.Left), Y: nodeToExpr(n.Right)}
	default:
		return &IntLit{Value: 0}
	}
}

func parseExpr(s *scan.Scanner) (Expr, error) {
	n, err := parse.Parse(s)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return nodeToExpr(n), nil
}

// skipBalancedParens consumes tokens up to and including the ')' that
// balances an already-consumed '('. Conditions are parsed only for
// their syntactic extent: derive.go's dispatch never inspects a
// condition's value (§4.H tracks only assignment and the loop
// controller variable).
func skipBalancedParens(s *scan.Scanner) error {
	depth := 1
	for {
		tok := s.Next()
		switch {
		case tok.Type == scan.EOF:
			return errors.Errorf("unexpected EOF inside condition")
		case tok.Type == scan.Parenthesis && tok.Text == "(":
			depth++
		case tok.Type == scan.Parenthesis && tok.Text == ")":
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
}

func parseFuncDecl(s *scan.Scanner) (*FuncDecl, error) {
	if _, err := expect(s, scan.Identifier, ""); err != nil { // return type
		return nil, err
	}
	name, err := expect(s, scan.Identifier, "")
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, scan.Parenthesis, "("); err != nil {
		return nil, err
	}
	params, err := parseParamList(s)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, scan.Brace, "{"); err != nil {
		return nil, err
	}
	body, err := parseStmtsUntilBrace(s)
	if err != nil {
		return nil, err
	}
	return &FuncDecl{Name: name.Text, Params: params, Body: body}, nil
}

func parseParamList(s *scan.Scanner) ([]string, error) {
	var params []string
	tok := peek(s)
	if tok.Type == scan.Parenthesis && tok.Text == ")" {
		s.Next()
		return params, nil
	}
	for {
		if _, err := expect(s, scan.Identifier, ""); err != nil { // type
			return nil, err
		}
		name, err := expect(s, scan.Identifier, "")
		if err != nil {
			return nil, err
		}
		params = append(params, name.Text)
		tok := s.Next()
		switch {
		case tok.Type == scan.Comma:
			continue
		case tok.Type == scan.Parenthesis && tok.Text == ")":
			return params, nil
		default:
			return nil, errors.Errorf("%d: expected ',' or ')', got %q", tok.Location.Column, tok.Text)
		}
	}
}

func parseStmtsUntilBrace(s *scan.Scanner) ([]Stmt, error) {
	var stmts []Stmt
	for {
		tok := peek(s)
		if tok.Type == scan.Brace && tok.Text == "}" {
			s.Next()
			return stmts, nil
		}
		st, err := parseStmt(s)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
}

// parseBlockOrStmt handles both braced compounds and the bare
// single-statement form `if (c) x = 1;` has without a block.
func parseBlockOrStmt(s *scan.Scanner) ([]Stmt, error) {
	tok := peek(s)
	if tok.Type == scan.Brace && tok.Text == "{" {
		s.Next()
		return parseStmtsUntilBrace(s)
	}
	st, err := parseStmt(s)
	if err != nil {
		return nil, err
	}
	return []Stmt{st}, nil
}

func parseStmt(s *scan.Scanner) (Stmt, error) {
	tok := s.Next()
	switch {
	case tok.Type == scan.Semicolon:
		return SkipStmt{}, nil
	case tok.Type == scan.Brace && tok.Text == "{":
		stmts, err := parseStmtsUntilBrace(s)
		if err != nil {
			return nil, err
		}
		return &Block{Stmts: stmts}, nil
	case tok.Type == scan.Identifier && tok.Text == "if":
		return parseIf(s)
	case tok.Type == scan.Identifier && tok.Text == "while":
		return parseWhile(s)
	case tok.Type == scan.Identifier && tok.Text == "for":
		return parseFor(s)
	case tok.Type == scan.Identifier && tok.Text == "break":
		if _, err := expect(s, scan.Semicolon, ";"); err != nil {
			return nil, err
		}
		return BreakStmt{}, nil
	case tok.Type == scan.Identifier && tok.Text == "continue":
		if _, err := expect(s, scan.Semicolon, ";"); err != nil {
			return nil, err
		}
		return ContinueStmt{}, nil
	case tok.Type == scan.Identifier && tok.Text == "return":
		return parseReturn(s)
	case tok.Type == scan.Identifier:
		return parseIdentifierStmt(s, tok)
	default:
		return nil, errors.Errorf("%d: unexpected token %q", tok.Location.Column, tok.Text)
	}
}

// parseIdentifierStmt resolves the ambiguity between a type-prefixed
// declaration, a plain assignment, a no-op call, and a bare
// increment/decrement, all of which start with a bare identifier.
func parseIdentifierStmt(s *scan.Scanner, first scan.Token) (Stmt, error) {
	second := s.Next()
	switch {
	case second.Type == scan.Identifier:
		// first was a type keyword, second is the declared name.
		third := s.Next()
		switch {
		case third.Type == scan.Semicolon:
			return &Decl{Name: second.Text}, nil
		case third.Type == scan.Assign:
			init, err := parseExpr(s)
			if err != nil {
				return nil, err
			}
			if _, err := expect(s, scan.Semicolon, ";"); err != nil {
				return nil, err
			}
			return &Decl{Name: second.Text, Init: init}, nil
		default:
			return nil, errors.Errorf("%d: expected ';' or '=' in declaration, got %q", third.Location.Column, third.Text)
		}
	case second.Type == scan.Assign:
		value, err := parseExpr(s)
		if err != nil {
			return nil, err
		}
		if _, err := expect(s, scan.Semicolon, ";"); err != nil {
			return nil, err
		}
		return &Assign{Name: first.Text, Value: value}, nil
	case second.Type == scan.Operator && (second.Text == "++" || second.Text == "--"):
		if _, err := expect(s, scan.Semicolon, ";"); err != nil {
			return nil, err
		}
		return &ExprStmt{X: &UnaryExpr{Op: second.Text, X: &Ident{Name: first.Text}, Postfix: true}}, nil
	case second.Type == scan.Parenthesis && second.Text == "(":
		args, err := parseArgs(s)
		if err != nil {
			return nil, err
		}
		if _, err := expect(s, scan.Semicolon, ";"); err != nil {
			return nil, err
		}
		return &ExprStmt{X: &CallExpr{Name: first.Text, Args: args}}, nil
	default:
		return nil, errors.Errorf("%d: unexpected token %q after identifier %q", second.Location.Column, second.Text, first.Text)
	}
}

func parseArgs(s *scan.Scanner) ([]Expr, error) {
	var args []Expr
	tok := peek(s)
	if tok.Type == scan.Parenthesis && tok.Text == ")" {
		s.Next()
		return args, nil
	}
	for {
		arg, err := parseExpr(s)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		tok := s.Next()
		if tok.Type == scan.Comma {
			continue
		}
		// parse.Parse already consumed the closing ')'.
		s.Unread(tok)
		return args, nil
	}
}

func parseIf(s *scan.Scanner) (Stmt, error) {
	if _, err := expect(s, scan.Parenthesis, "("); err != nil {
		return nil, err
	}
	if err := skipBalancedParens(s); err != nil {
		return nil, err
	}
	thenBody, err := parseBlockOrStmt(s)
	if err != nil {
		return nil, err
	}
	n := &If{Then: thenBody}
	tok := peek(s)
	if tok.Type != scan.Identifier || tok.Text != "else" {
		return n, nil
	}
	s.Next()
	tok = peek(s)
	if tok.Type == scan.Identifier && tok.Text == "if" {
		s.Next()
		elseIf, err := parseIf(s)
		if err != nil {
			return nil, err
		}
		n.Else = []Stmt{elseIf}
		return n, nil
	}
	elseBody, err := parseBlockOrStmt(s)
	if err != nil {
		return nil, err
	}
	n.Else = elseBody
	return n, nil
}

func parseWhile(s *scan.Scanner) (Stmt, error) {
	if _, err := expect(s, scan.Parenthesis, "("); err != nil {
		return nil, err
	}
	if err := skipBalancedParens(s); err != nil {
		return nil, err
	}
	body, err := parseBlockOrStmt(s)
	if err != nil {
		return nil, err
	}
	return &While{Body: body}, nil
}

func parseSimpleAssign(s *scan.Scanner) (*Assign, error) {
	name, err := expect(s, scan.Identifier, "")
	if err != nil {
		return nil, err
	}
	if tok := peek(s); tok.Type == scan.Identifier {
		// name was a type keyword; the declared name follows.
		name = s.Next()
	}
	if _, err := expect(s, scan.Assign, "="); err != nil {
		return nil, err
	}
	value, err := parseExpr(s)
	if err != nil {
		return nil, err
	}
	return &Assign{Name: name.Text, Value: value}, nil
}

// parseFor handles the three-clause C for-loop. The controller
// variable is read syntactically off the post-clause, matching
// §4.D/§4.H's loop-correction contract which needs to know which
// variable the loop body's iteration count is driven by.
func parseFor(s *scan.Scanner) (Stmt, error) {
	if _, err := expect(s, scan.Parenthesis, "("); err != nil {
		return nil, err
	}

	var init *Assign
	tok := peek(s)
	if tok.Type == scan.Semicolon {
		s.Next()
	} else {
		var err error
		init, err = parseSimpleAssign(s)
		if err != nil {
			return nil, err
		}
		if _, err := expect(s, scan.Semicolon, ";"); err != nil {
			return nil, err
		}
	}

	for {
		tok := s.Next()
		if tok.Type == scan.Semicolon {
			break
		}
		if tok.Type == scan.EOF {
			return nil, errors.Errorf("unexpected EOF in for-condition")
		}
	}

	var post *Assign
	tok = peek(s)
	closedParen := false
	if tok.Type == scan.Parenthesis && tok.Text == ")" {
		s.Next()
		closedParen = true
	} else {
		name := s.Next()
		op := s.Next()
		switch {
		case op.Type == scan.Assign:
			value, err := parseExpr(s)
			if err != nil {
				return nil, err
			}
			post = &Assign{Name: name.Text, Value: value}
			// parse.Parse already consumed the closing ')'.
			closedParen = true
		case op.Type == scan.Operator && (op.Text == "++" || op.Text == "--"):
			post = &Assign{Name: name.Text, Value: &UnaryExpr{Op: op.Text, X: &Ident{Name: name.Text}, Postfix: true}}
		default:
			return nil, errors.Errorf("%d: unsupported for-post clause", op.Location.Column)
		}
	}
	if !closedParen {
		if _, err := expect(s, scan.Parenthesis, ")"); err != nil {
			return nil, err
		}
	}

	body, err := parseBlockOrStmt(s)
	if err != nil {
		return nil, err
	}
	ctrlVar := ""
	if post != nil {
		ctrlVar = post.Name
	}
	return &For{Init: init, Post: post, CtrlVar: ctrlVar, Body: body}, nil
}

func parseReturn(s *scan.Scanner) (Stmt, error) {
	tok := peek(s)
	if tok.Type == scan.Semicolon {
		s.Next()
		return &Return{}, nil
	}
	value, err := parseExpr(s)
	if err != nil {
		return nil, err
	}
	if _, err := expect(s, scan.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &Return{Value: value}, nil
}
