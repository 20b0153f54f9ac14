// Package dql provides fluent DalmatinerDB query builder.
package dql

import (
	"strings"
)

// Printer prints DQL query.
type Printer struct {
	sb        strings.Builder
	needSpace bool
}

// GetPrinter creates a new [Printer].
func GetPrinter() *Printer {
	return new(Printer)
}

// String returns query.
func (p *Printer) String() string {
	return p.sb.String()
}

// Reset discards everything written so far.
func (p *Printer) Reset() {
	p.sb.Reset()
	p.needSpace = false
}

func (p *Printer) maybeSpace() {
	if p.needSpace {
		p.sb.WriteByte(' ')
		p.needSpace = false
	}
}

func (p *Printer) append(q *Printer) {
	if q.sb.Len() == 0 {
		return
	}
	p.maybeSpace()
	p.sb.WriteString(q.sb.String())
	p.needSpace = q.needSpace
}

// Comma writes a comma.
func (p *Printer) Comma() {
	p.sb.WriteByte(',')
	p.needSpace = true
}

// OpenParen writes a paren.
func (p *Printer) OpenParen() {
	p.maybeSpace()
	p.sb.WriteByte('(')
}

// CloseParen writes a paren.
func (p *Printer) CloseParen() {
	p.sb.WriteByte(')')
	p.needSpace = true
}

// Ident writes an identifier.
func (p *Printer) Ident(tok string) {
	p.maybeSpace()
	p.sb.WriteString(tok)
	p.needSpace = true
}

// Literal writes an literal.
func (p *Printer) Literal(lit string) {
	p.maybeSpace()
	p.sb.WriteString(lit)
	p.needSpace = true
}

// Quoted writes a single-quoted literal.
func (p *Printer) Quoted(s string) {
	p.Literal(singleQuoted(s))
}

// Select writes `SELECT` ident.
func (p *Printer) Select() {
	p.Ident("SELECT")
}

// From writes `FROM` ident.
func (p *Printer) From() {
	p.Ident("FROM")
}

// Bucket writes `BUCKET` ident.
func (p *Printer) Bucket() {
	p.Ident("BUCKET")
}

// Where writes `WHERE` ident.
func (p *Printer) Where() {
	p.Ident("WHERE")
}

// As writes `AS` ident.
func (p *Printer) As() {
	p.Ident("AS")
}

// ShiftBy writes `SHIFT BY` ident.
func (p *Printer) ShiftBy() {
	p.Ident("SHIFT BY")
}

// And writes `AND` ident.
func (p *Printer) And() {
	p.Ident("AND")
}

// Or writes `OR` ident.
func (p *Printer) Or() {
	p.Ident("OR")
}
