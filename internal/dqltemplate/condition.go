package dqltemplate

import (
	"github.com/go-faster/errors"

	"github.com/go-faster/dalmatinerql/internal/dql"
)

// Tag is a namespaced tag reference.
type Tag struct {
	Namespace string `yaml:"ns,omitempty"`
	Key       string `yaml:"key"`
	Value     string `yaml:"value,omitempty"`
}

// Condition describes a tag predicate.
//
// Exactly one field must be set.
type Condition struct {
	Eq      *Tag        `yaml:"eq,omitempty"`
	Ne      *Tag        `yaml:"ne,omitempty"`
	Present *Tag        `yaml:"present,omitempty"`
	And     []Condition `yaml:"and,omitempty"`
	Or      []Condition `yaml:"or,omitempty"`
}

// Build converts description to [dql.Condition].
func (c Condition) Build() (dql.Condition, error) {
	var (
		result dql.Condition
		set    int
	)
	if t := c.Eq; t != nil {
		set++
		result = dql.Equals(t.Namespace, t.Key, t.Value)
	}
	if t := c.Ne; t != nil {
		set++
		result = dql.NotEquals(t.Namespace, t.Key, t.Value)
	}
	if t := c.Present; t != nil {
		set++
		result = dql.Present(t.Namespace, t.Key)
	}
	if c.And != nil {
		set++
		r, err := fold("and", c.And, dql.Condition.And)
		if err != nil {
			return result, err
		}
		result = r
	}
	if c.Or != nil {
		set++
		r, err := fold("or", c.Or, dql.Condition.Or)
		if err != nil {
			return result, err
		}
		result = r
	}
	switch set {
	case 0:
		return result, errors.New("empty condition")
	case 1:
		return result, nil
	default:
		return result, errors.Errorf("expected exactly one condition, got %d", set)
	}
}

func fold(op string, conds []Condition, combine func(l, r dql.Condition) dql.Condition) (dql.Condition, error) {
	if l := len(conds); l < 2 {
		return dql.Condition{}, errors.Errorf("%s: expected at least 2 conditions, got %d", op, l)
	}
	var result dql.Condition
	for i, c := range conds {
		sub, err := c.Build()
		if err != nil {
			return result, errors.Wrapf(err, "%s: condition %d", op, i)
		}
		if i == 0 {
			result = sub
			continue
		}
		result = combine(result, sub)
	}
	return result, nil
}
