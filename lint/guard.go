package lint

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"
)

type variant uint8

const (
	variantNone variant = iota
	variantLeft
	variantRight
)

func (v variant) flip() variant {
	switch v {
	case variantLeft:
		return variantRight
	case variantRight:
		return variantLeft
	default:
		return variantNone
	}
}

// accessors are the methods that panic on the wrong variant.
var accessors = map[string]variant{
	"MustRight": variantRight,
	"MustLeft":  variantLeft,
}

var predicates = map[string]variant{
	"IsRight": variantRight,
	"IsLeft":  variantLeft,
}

// receiver is the checked value. Plain identifiers are matched by the object
// they resolve to, other expressions by their source text.
type receiver struct {
	expr string
	obj  types.Object
	info *types.Info
}

func newReceiver(info *types.Info, x ast.Expr) receiver {
	recv := receiver{expr: types.ExprString(x), info: info}

	if ident, ok := ast.Unparen(x).(*ast.Ident); ok && info != nil {
		recv.obj = info.Uses[ident]
	}

	return recv
}

func (r receiver) matches(x ast.Expr) bool {
	if types.ExprString(x) != r.expr {
		return false
	}

	if r.obj == nil {
		return true
	}

	ident, ok := ast.Unparen(x).(*ast.Ident)

	return ok && r.info.Uses[ident] == r.obj
}

// knownWhen returns the variant recv is known to hold when cond evaluates to truth.
func knownWhen(cond ast.Expr, recv receiver, truth bool) variant {
	switch x := cond.(type) {
	case *ast.ParenExpr:
		return knownWhen(x.X, recv, truth)

	case *ast.UnaryExpr:
		if x.Op == token.NOT {
			return knownWhen(x.X, recv, !truth)
		}

	case *ast.BinaryExpr:
		// Both operands share the outcome: true for &&, false for ||.
		if (x.Op == token.LAND && truth) || (x.Op == token.LOR && !truth) {
			if v := knownWhen(x.X, recv, truth); v != variantNone {
				return v
			}

			return knownWhen(x.Y, recv, truth)
		}

	case *ast.CallExpr:
		sel, ok := x.Fun.(*ast.SelectorExpr)
		if !ok || len(x.Args) != 0 {
			return variantNone
		}

		v, ok := predicates[sel.Sel.Name]
		if !ok || !recv.matches(sel.X) {
			return variantNone
		}

		if truth {
			return v
		}

		return v.flip()
	}

	return variantNone
}

// guarded reports whether the last node of stack only runs when recv holds want.
func guarded(stack []ast.Node, recv receiver, want variant) bool {
	for i := len(stack) - 2; i >= 0; i-- {
		child := stack[i+1]

		switch node := stack[i].(type) {
		case *ast.IfStmt:
			if child == node.Body && knownWhen(node.Cond, recv, true) == want {
				return true
			}

			if node.Else != nil && child == node.Else && knownWhen(node.Cond, recv, false) == want {
				return true
			}

		case *ast.BinaryExpr:
			// Short circuit: the right operand runs only after the left one decided.
			if child != node.Y {
				continue
			}

			if node.Op == token.LAND && knownWhen(node.X, recv, true) == want {
				return true
			}

			if node.Op == token.LOR && knownWhen(node.X, recv, false) == want {
				return true
			}

		case *ast.CaseClause:
			if i >= 2 {
				if sw, ok := stack[i-2].(*ast.SwitchStmt); ok && sw.Tag == nil && caseGuarded(sw, node, child, recv, want) {
					return true
				}
			}

			if exitsEarly(node.Body, child, recv, want) {
				return true
			}

		case *ast.CommClause:
			if exitsEarly(node.Body, child, recv, want) {
				return true
			}

		case *ast.BlockStmt:
			if exitsEarly(node.List, child, recv, want) {
				return true
			}
		}
	}

	return false
}

// exitsEarly reports whether a statement preceding child in list leaves the
// block unless recv holds want.
func exitsEarly(list []ast.Stmt, child ast.Node, recv receiver, want variant) bool {
	for _, stmt := range list {
		if stmt == child {
			return false
		}

		ifs, ok := stmt.(*ast.IfStmt)
		if !ok || ifs.Else != nil {
			continue
		}

		if knownWhen(ifs.Cond, recv, false) == want && terminates(ifs.Body) {
			return true
		}
	}

	return false
}

func terminates(block *ast.BlockStmt) bool {
	if len(block.List) == 0 {
		return false
	}

	switch stmt := block.List[len(block.List)-1].(type) {
	case *ast.ReturnStmt:
		return true

	case *ast.BranchStmt:
		// A goto may jump forward to the checked call.
		return stmt.Tok == token.BREAK || stmt.Tok == token.CONTINUE

	case *ast.ExprStmt:
		call, ok := stmt.X.(*ast.CallExpr)
		if !ok {
			return false
		}

		ident, ok := call.Fun.(*ast.Ident)

		return ok && ident.Name == "panic"
	}

	return false
}

// caseGuarded reports whether child of clause in a tagless switch only runs
// when recv holds want. Case expressions are evaluated in order, so a clause
// is reached after the expressions of the cases before it were false. The
// body also runs only when an own expression was true, unless the previous
// clause falls through. The default clause is reached after every other case.
func caseGuarded(sw *ast.SwitchStmt, clause *ast.CaseClause, child ast.Node, recv receiver, want variant) bool {
	idx := slices.Index(sw.Body.List, ast.Stmt(clause))
	if idx < 0 {
		return false
	}

	inBody := hasStmt(clause.Body, child)

	if inBody && idx > 0 && fallsThrough(sw.Body.List[idx-1]) {
		return false
	}

	if inBody {
		for _, expr := range clause.List {
			if knownWhen(expr, recv, true) == want {
				return true
			}
		}
	}

	for i, stmt := range sw.Body.List {
		prev, ok := stmt.(*ast.CaseClause)
		if !ok || prev == clause || prev.List == nil {
			continue
		}

		if clause.List != nil && i > idx {
			break
		}

		for _, expr := range prev.List {
			if knownWhen(expr, recv, false) == want {
				return true
			}
		}
	}

	return false
}

func fallsThrough(stmt ast.Stmt) bool {
	clause, ok := stmt.(*ast.CaseClause)
	if !ok || len(clause.Body) == 0 {
		return false
	}

	branch, ok := clause.Body[len(clause.Body)-1].(*ast.BranchStmt)

	return ok && branch.Tok == token.FALLTHROUGH
}

func hasStmt(list []ast.Stmt, n ast.Node) bool {
	for _, stmt := range list {
		if stmt == n {
			return true
		}
	}

	return false
}
