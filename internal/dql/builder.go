package dql

import (
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/go-faster/dalmatinerql/internal/durationql"
)

// Builder is a DQL query builder.
//
// Mutators act on the current collection (the last one started by [Builder.From])
// and the current selection (the last one added by [Builder.Select]).
//
// The first misuse error is recorded and returned by [Builder.Err] and by rendering,
// subsequent mutators are ignored. Reference to unknown series is not a misuse:
// the failed call is dropped and the builder stays usable.
//
// Builder is not safe for concurrent use.
type Builder struct {
	collections []collection
	selections  []selection
	labels      map[string]int
	vars        map[string]string

	curCollection int
	curSelection  int

	err       error
	seriesErr error
}

type collection struct {
	org        string
	selections []int
	alias      string
	shift      string
}

type selection struct {
	label    string
	hidden   bool
	consumed bool
	expr     Expr
}

// New creates a new empty [Builder].
func New() *Builder {
	return &Builder{
		labels:        map[string]int{},
		vars:          map[string]string{},
		curCollection: -1,
		curSelection:  -1,
	}
}

// Err returns the first construction error, if any.
//
// Otherwise, Err returns the first [*UnknownSeriesError], which does not
// affect rendering.
func (b *Builder) Err() error {
	if b.err != nil {
		return b.err
	}
	return b.seriesErr
}

func (b *Builder) fail(op string, err error) *Builder {
	if b.err == nil {
		b.err = structural(op, err)
	}
	return b
}

func (b *Builder) current() *selection {
	if b.curSelection < 0 {
		return nil
	}
	return &b.selections[b.curSelection]
}

// From starts a new collection scoped by given organization.
func (b *Builder) From(org string) *Builder {
	if b.err != nil {
		return b
	}
	b.collections = append(b.collections, collection{org: org})
	b.curCollection = len(b.collections) - 1
	b.curSelection = -1
	return b
}

// Select adds a new selection to the current collection.
func (b *Builder) Select(path ...string) *Builder {
	const op = "select"
	if b.err != nil {
		return b
	}
	if b.curCollection < 0 {
		return b.fail(op, ErrNoCollection)
	}
	if len(path) == 0 {
		return b.fail(op, ErrEmptyPath)
	}
	c := &b.collections[b.curCollection]

	idx := len(b.selections)
	p := append(Path(nil), path...)
	b.selections = append(b.selections, selection{
		expr: selectorExpr(idx, p, c.org),
	})
	c.selections = append(c.selections, idx)
	b.curSelection = idx
	return b
}

// SelectAs adds a new labeled selection to the current collection.
func (b *Builder) SelectAs(label string, path ...string) *Builder {
	return b.Select(path...).Label(label)
}

// Label assigns series label to the current selection.
//
// Label must be unique across the builder.
func (b *Builder) Label(label string) *Builder {
	const op = "label"
	if b.err != nil {
		return b
	}
	s := b.current()
	switch {
	case s == nil:
		return b.fail(op, ErrNoSelection)
	case label == "":
		return b.fail(op, errors.New("label cannot be empty"))
	case s.label == label:
		return b
	case s.label != "":
		return b.fail(op, errors.Errorf("selection is already labeled %q", s.label))
	}
	if _, ok := b.labels[label]; ok {
		return b.fail(op, errors.Errorf("duplicate label %q", label))
	}
	s.label = label
	b.labels[label] = b.curSelection
	return b
}

// Hidden sets visibility of the current selection.
//
// Hidden selection is not rendered, but still can be referenced by label.
func (b *Builder) Hidden(hidden bool) *Builder {
	if b.err != nil {
		return b
	}
	s := b.current()
	if s == nil {
		return b.fail("set visibility", ErrNoSelection)
	}
	s.hidden = hidden
	return b
}

// Where filters the current selection.
//
// A wildcard selection filtered by `dl:'source' = '<source>'` is routed by the source
// bucket instead of organization.
func (b *Builder) Where(cond Condition) *Builder {
	const op = "where"
	if b.err != nil {
		return b
	}
	s := b.current()
	switch {
	case s == nil:
		return b.fail(op, ErrNoSelection)
	case cond.IsZero():
		return b.fail(op, errors.New("condition cannot be empty"))
	}
	s.expr = s.expr.withCondition(b.curSelection, cond)
	return b
}

// Apply wraps the current selection into function call.
//
// Arguments are passed after the selection, `$name` arguments are substituted
// during rendering.
func (b *Builder) Apply(fn string, args ...string) *Builder {
	if b.err != nil {
		return b
	}
	s := b.current()
	if s == nil {
		return b.fail("apply", ErrNoSelection)
	}
	callArgs := make([]Expr, 0, len(args)+1)
	callArgs = append(callArgs, s.expr)
	for _, arg := range args {
		callArgs = append(callArgs, Arg(arg))
	}
	s.expr = Function(fn, callArgs...)
	return b
}

// ApplyToSeries merges the current selection with referenced series.
//
// Each reference is a `#label` of some selection. The result is
// `fn(<current>, <ref1>, <ref2>, ...)`. Referenced selections are not rendered
// on their own anymore.
//
// If any label is unknown, the call has no effect and [Builder.Err] reports
// [*UnknownSeriesError].
func (b *Builder) ApplyToSeries(fn string, refs ...string) *Builder {
	const op = "apply to series"
	if b.err != nil {
		return b
	}
	s := b.current()
	if s == nil {
		return b.fail(op, ErrNoSelection)
	}

	targets := make([]int, 0, len(refs))
	for _, ref := range refs {
		label, ok := strings.CutPrefix(ref, "#")
		if !ok || label == "" {
			return b.fail(op, errors.Errorf("invalid series reference %q", ref))
		}
		idx, ok := b.labels[label]
		if !ok {
			if b.seriesErr == nil {
				b.seriesErr = &UnknownSeriesError{Label: label}
			}
			return b
		}
		if idx == b.curSelection {
			return b.fail(op, errors.Errorf("series %q references itself", label))
		}
		targets = append(targets, idx)
	}

	args := make([]Expr, 0, len(targets)+1)
	args = append(args, s.expr)
	for _, idx := range targets {
		args = append(args, b.selections[idx].expr)
	}
	s.expr = Function(fn, args...)
	for _, idx := range targets {
		b.selections[idx].consumed = true
	}
	return b
}

// AliasBy sets alias of the current collection.
func (b *Builder) AliasBy(alias string) *Builder {
	if b.err != nil {
		return b
	}
	if b.curCollection < 0 {
		return b.fail("alias", ErrNoCollection)
	}
	b.collections[b.curCollection].alias = alias
	return b
}

// ShiftBy sets time shift of the current collection.
func (b *Builder) ShiftBy(shift string) *Builder {
	if b.err != nil {
		return b
	}
	if b.curCollection < 0 {
		return b.fail("shift", ErrNoCollection)
	}
	b.collections[b.curCollection].shift = shift
	return b
}

// ShiftByDuration sets time shift of the current collection.
func (b *Builder) ShiftByDuration(d time.Duration) *Builder {
	if d <= 0 {
		return b.fail("shift", errors.Errorf("shift must be positive, got %s", d))
	}
	return b.ShiftBy(durationql.FormatDuration(d))
}

// With binds variable value.
//
// Binding does not affect construction errors, so a builder can be rebound and
// rendered again.
func (b *Builder) With(name, value string) *Builder {
	b.vars[name] = value
	return b
}
