// Package dqltemplate provides declarative DQL query templates.
package dqltemplate

import (
	"bytes"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/yaml"

	"github.com/go-faster/dalmatinerql/internal/dql"
	"github.com/go-faster/dalmatinerql/internal/durationql"
)

// Template models query template file.
type Template struct {
	// Variables are default variable bindings.
	Variables   map[string]string `yaml:"variables,omitempty"`
	Collections []Collection      `yaml:"collections"`
}

// Collection is an organization-scoped group of selections.
type Collection struct {
	From   string      `yaml:"from"`
	Alias  string      `yaml:"alias,omitempty"`
	Shift  string      `yaml:"shift,omitempty"`
	Select []Selection `yaml:"select"`
}

// Selection describes a single selected metric.
type Selection struct {
	Path   []string   `yaml:"path"`
	Label  string     `yaml:"label,omitempty"`
	Hidden bool       `yaml:"hidden,omitempty"`
	Where  *Condition `yaml:"where,omitempty"`
	Apply  []Step     `yaml:"apply,omitempty"`
}

// Step is a function application.
//
// If Series is set, function is applied to the selection and referenced series,
// otherwise to the selection and Args.
type Step struct {
	Fn     string   `yaml:"fn"`
	Args   []string `yaml:"args,omitempty"`
	Series []string `yaml:"series,omitempty"`
}

// Validate validates step.
func (s Step) Validate() error {
	if s.Fn == "" {
		return errors.New("function name is required")
	}
	if len(s.Args) > 0 && len(s.Series) > 0 {
		return errors.New("args and series are mutually exclusive")
	}
	return nil
}

// Validate validates template.
func (t *Template) Validate() error {
	if len(t.Collections) == 0 {
		return errors.New("at least one collection is required")
	}
	for i, c := range t.Collections {
		if c.From == "" {
			return errors.Errorf("collection %d: organization is required", i)
		}
		if c.Shift != "" {
			if err := durationql.ValidateShift(c.Shift); err != nil {
				return errors.Wrapf(err, "collection %d", i)
			}
		}
		for j, s := range c.Select {
			if len(s.Path) == 0 {
				return errors.Errorf("collection %d: selection %d: path is required", i, j)
			}
			if s.Where != nil {
				if _, err := s.Where.Build(); err != nil {
					return errors.Wrapf(err, "collection %d: selection %d: where", i, j)
				}
			}
			for k, step := range s.Apply {
				if err := step.Validate(); err != nil {
					return errors.Wrapf(err, "collection %d: selection %d: step %d", i, j, k)
				}
			}
		}
	}
	return nil
}

// Build replays template into a new [dql.Builder].
//
// Given vars override template defaults.
func (t *Template) Build(vars map[string]string) (*dql.Builder, error) {
	if err := t.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate")
	}

	b := dql.New()
	for name, value := range t.Variables {
		b.With(name, value)
	}
	for name, value := range vars {
		b.With(name, value)
	}

	for i, c := range t.Collections {
		b.From(c.From)
		if c.Alias != "" {
			b.AliasBy(c.Alias)
		}
		if c.Shift != "" {
			b.ShiftBy(c.Shift)
		}
		for j, s := range c.Select {
			if err := buildSelection(b, s); err != nil {
				return nil, errors.Wrapf(err, "collection %d: selection %d", i, j)
			}
		}
	}
	return b, nil
}

func buildSelection(b *dql.Builder, s Selection) error {
	b.Select(s.Path...)
	if s.Label != "" {
		b.Label(s.Label)
	}
	if s.Where != nil {
		cond, err := s.Where.Build()
		if err != nil {
			return errors.Wrap(err, "where")
		}
		b.Where(cond)
	}
	for _, step := range s.Apply {
		if len(step.Series) > 0 {
			b.ApplyToSeries(step.Fn, step.Series...)
		} else {
			b.Apply(step.Fn, step.Args...)
		}
	}
	if s.Hidden {
		b.Hidden(true)
	}
	return b.Err()
}

// Render builds and renders template.
func (t *Template) Render(vars map[string]string) (string, error) {
	b, err := t.Build(vars)
	if err != nil {
		return "", errors.Wrap(err, "build")
	}
	return b.UserString()
}

// LoadFromFiles parses the given YAML files into a Template.
//
// Files are concatenated before parsing.
func LoadFromFiles(filenames []string) (*Template, error) {
	var buf bytes.Buffer
	for _, f := range filenames {
		content, err := os.ReadFile(f) // #nosec G304
		if err != nil {
			return nil, errors.Wrapf(err, "reading template file %s", f)
		}
		if _, err := buf.Write(content); err != nil {
			return nil, errors.Wrapf(err, "appending template file %s to buffer", f)
		}
	}
	t, err := Load(buf.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "parsing YAML files %s", filenames)
	}
	return t, nil
}

// Load parses the YAML input into a Template.
//
// Unknown fields are rejected.
func Load(content []byte) (*Template, error) {
	t := &Template{}
	d := yaml.NewDecoder(bytes.NewReader(content))
	d.KnownFields(true)
	if err := d.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return t, nil
}
