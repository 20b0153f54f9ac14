package dql

import (
	"github.com/go-faster/errors"
)

// WriteQuery writes DQL query.
//
// WriteQuery does not modify the builder, so it can be called multiple times.
// On error, nothing is written to p.
func (b *Builder) WriteQuery(p *Printer) error {
	if err := b.err; err != nil {
		return err
	}

	q := GetPrinter()
	if err := b.writeQuery(q); err != nil {
		return err
	}
	p.append(q)
	return nil
}

func (b *Builder) writeQuery(p *Printer) error {
	p.Select()
	var entries int
	for ci, c := range b.collections {
		visible := make([]int, 0, len(c.selections))
		for _, idx := range c.selections {
			if s := b.selections[idx]; !s.hidden && !s.consumed {
				visible = append(visible, idx)
			}
		}

		for i, idx := range visible {
			if entries != 0 {
				p.Comma()
			}
			entries++

			s := b.selections[idx]
			if err := p.WriteExpr(s.expr, b.vars); err != nil {
				return errors.Wrapf(err, "collection %d (%q): selection %d", ci, c.org, idx)
			}
			if i != len(visible)-1 {
				continue
			}
			// Annotations belong to the last rendered entry of collection.
			if c.alias != "" {
				p.As()
				p.Literal(c.alias)
			}
			if c.shift != "" {
				p.ShiftBy()
				p.Literal(c.shift)
			}
		}
	}
	if entries == 0 {
		return ErrNothingToSelect
	}
	return nil
}

// UserString renders DQL query.
//
// If any variable placeholder is not bound, UserString returns an
// [*UndefinedVariableError] and no query.
func (b *Builder) UserString() (string, error) {
	p := GetPrinter()
	if err := b.WriteQuery(p); err != nil {
		return "", err
	}
	return p.String(), nil
}
