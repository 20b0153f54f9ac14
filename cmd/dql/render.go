package main

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	var tmpl templateOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print query rendered from template",
		Args:  cobra.NoArgs,
		Example: heredoc.Doc(`
# Render query.
dql render -f cpu.yml

# Render query binding a variable.
dql render -f cpu.yml --var interval=1m
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := tmpl.Build()
			if err != nil {
				return err
			}
			q, err := b.UserString()
			if err != nil {
				return errors.Wrap(err, "render query")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), q)
			return err
		},
	}
	tmpl.Register(cmd.Flags())
	return cmd
}
