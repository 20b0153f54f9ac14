package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-faster/dalmatinerql/internal/cliversion"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, _ := cliversion.GetInfo(cliversion.ModulePath)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dql %s\n", info)
		},
	}
}
