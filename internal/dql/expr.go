package dql

import (
	"strings"

	"github.com/go-faster/errors"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=exprType -trimprefix=expr -output=exprtype_string.go

type exprType uint8

const (
	exprSelector exprType = iota + 1 // metric path scoped by organization or bucket
	exprFunction                     // function call
	exprLiteral                      // durations, numbers, etc.
	exprVariable                     // `$name` placeholder
)

// Expr is an immutable DQL expression.
type Expr struct {
	typ  exprType
	tok  string
	args []Expr
	sel  *selector
}

// IsZero whether expression is empty.
func (e Expr) IsZero() bool {
	return e.typ == 0
}

type selector struct {
	// owner is an index of selection this selector belongs to.
	owner int
	path  Path
	org   string
	cond  Condition

	// bucket is set if selector is routed by source bucket instead of organization.
	bucket       bool
	bucketSource string
}

func selectorExpr(owner int, path Path, org string) Expr {
	return Expr{
		typ: exprSelector,
		sel: &selector{owner: owner, path: path, org: org},
	}
}

// Function returns function call expression.
func Function(name string, args ...Expr) Expr {
	return Expr{typ: exprFunction, tok: name, args: args}
}

// Literal returns literal token expression.
func Literal(tok string) Expr {
	return Expr{typ: exprLiteral, tok: tok}
}

// Variable returns placeholder expression resolved during rendering.
func Variable(name string) Expr {
	return Expr{typ: exprVariable, tok: name}
}

// Arg parses function argument token.
//
// Tokens like `$name` are variable placeholders, everything else is a literal.
func Arg(tok string) Expr {
	if name, ok := strings.CutPrefix(tok, "$"); ok && name != "" {
		return Variable(name)
	}
	return Literal(tok)
}

// withCondition returns a copy of e where selectors owned by given selection are
// filtered by cond.
func (e Expr) withCondition(owner int, cond Condition) Expr {
	switch e.typ {
	case exprSelector:
		if e.sel.owner != owner {
			return e
		}
		sel := *e.sel
		sel.cond = cond
		sel.bucket = false
		sel.bucketSource = ""
		if source, ok := cond.bucketSource(); ok && sel.path.IsWildcard() {
			sel.cond = Condition{}
			sel.bucket = true
			sel.bucketSource = source
		}
		e.sel = &sel
		return e
	case exprFunction:
		args := make([]Expr, len(e.args))
		for i, arg := range e.args {
			args[i] = arg.withCondition(owner, cond)
		}
		e.args = args
		return e
	default:
		return e
	}
}

// WriteExpr writes expression, substituting variables from vars.
func (p *Printer) WriteExpr(e Expr, vars map[string]string) error {
	switch e.typ {
	case exprSelector:
		sel := e.sel
		if sel.bucket {
			p.Literal(singleQuoted(sel.bucketSource) + "." + sel.path.String())
			p.Bucket()
			p.Quoted(bucketCode(sel.bucketSource))
			return nil
		}
		p.Literal(sel.path.String())
		p.From()
		p.Quoted(sel.org)
		if !sel.cond.IsZero() {
			p.Where()
			p.WriteCondition(sel.cond)
		}

		return nil
	case exprFunction:
		p.Ident(e.tok)
		p.needSpace = false
		p.OpenParen()
		for i, arg := range e.args {
			if i != 0 {
				p.Comma()
			}
			if err := p.WriteExpr(arg, vars); err != nil {
				return err
			}
		}
		p.CloseParen()

		return nil
	case exprLiteral:
		p.Literal(e.tok)

		return nil
	case exprVariable:
		v, ok := vars[e.tok]
		if !ok {
			return &UndefinedVariableError{Name: e.tok}
		}
		p.Literal(v)

		return nil
	default:
		return errors.Errorf("unexpected expression type %v", e.typ)
	}
}
