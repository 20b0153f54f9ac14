package main

import (
	"github.com/go-faster/errors"
	"github.com/spf13/pflag"

	"github.com/go-faster/dalmatinerql/internal/dql"
	"github.com/go-faster/dalmatinerql/internal/dqltemplate"
)

type templateOptions struct {
	files []string
	vars  map[string]string
}

func (opts *templateOptions) Register(set *pflag.FlagSet) {
	set.StringArrayVarP(&opts.files, "file", "f", nil,
		"The path to the query template. If repeated, the specified files will be concatenated before YAML parsing.")
	set.StringToStringVar(&opts.vars, "var", nil, "Variable binding, e.g. --var interval=30s")
}

func (opts *templateOptions) Build() (*dql.Builder, error) {
	if len(opts.files) == 0 {
		return nil, errors.New("at least one template file is required")
	}
	tmpl, err := dqltemplate.LoadFromFiles(opts.files)
	if err != nil {
		return nil, errors.Wrap(err, "load template")
	}
	b, err := tmpl.Build(opts.vars)
	if err != nil {
		return nil, errors.Wrap(err, "build query")
	}
	return b, nil
}
