package dql

import "fmt"

type condType uint8

const (
	condEquals    condType = iota + 1 // ns:'key' = 'value'
	condNotEquals                     // ns:'key' != 'value'
	condPresent                       // ns:'key'
	condAnd
	condOr
)

// Condition is an immutable tag predicate.
//
// The zero value is an empty condition.
type Condition struct {
	typ   condType
	ns    string
	key   string
	value string
	left  *Condition
	right *Condition
}

// Equals returns `ns:'key' = 'value'` condition.
//
// If ns is empty, namespace prefix is omitted.
func Equals(ns, key, value string) Condition {
	return Condition{typ: condEquals, ns: ns, key: key, value: value}
}

// NotEquals returns `ns:'key' != 'value'` condition.
func NotEquals(ns, key, value string) Condition {
	return Condition{typ: condNotEquals, ns: ns, key: key, value: value}
}

// Present returns condition checking presence of a tag.
func Present(ns, key string) Condition {
	return Condition{typ: condPresent, ns: ns, key: key}
}

// And returns new `AND` condition. Operands are not modified.
//
// If either operand is empty, the other one is returned.
func (c Condition) And(other Condition) Condition {
	return c.join(condAnd, other)
}

// Or returns new `OR` condition. Operands are not modified.
//
// If either operand is empty, the other one is returned.
func (c Condition) Or(other Condition) Condition {
	return c.join(condOr, other)
}

func (c Condition) join(typ condType, other Condition) Condition {
	switch {
	case c.IsZero():
		return other
	case other.IsZero():
		return c
	}
	return Condition{typ: typ, left: &c, right: &other}
}

// IsZero whether condition is empty.
func (c Condition) IsZero() bool {
	return c.typ == 0
}

// String returns textual representation of condition.
func (c Condition) String() string {
	p := GetPrinter()
	p.WriteCondition(c)
	return p.String()
}

// bucketSource returns value of `dl:'source' = 'value'` condition.
func (c Condition) bucketSource() (string, bool) {
	if c.typ != condEquals || c.ns != "dl" || c.key != "source" {
		return "", false
	}
	return c.value, true
}

func tagName(ns, key string) string {
	if ns == "" {
		return singleQuoted(key)
	}
	return ns + ":" + singleQuoted(key)
}

// WriteCondition writes condition.
func (p *Printer) WriteCondition(c Condition) {
	switch c.typ {
	case 0:
	case condEquals:
		p.Literal(tagName(c.ns, c.key))
		p.Ident("=")
		p.Quoted(c.value)
	case condNotEquals:
		p.Literal(tagName(c.ns, c.key))
		p.Ident("!=")
		p.Quoted(c.value)
	case condPresent:
		p.Literal(tagName(c.ns, c.key))
	case condAnd:
		p.WriteCondition(*c.left)
		p.And()
		p.WriteCondition(*c.right)
	case condOr:
		p.WriteCondition(*c.left)
		p.Or()
		p.WriteCondition(*c.right)
	default:
		panic(fmt.Sprintf("unexpected condition type %d", c.typ))
	}
}
