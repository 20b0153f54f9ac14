// Binary dql renders and runs DalmatinerDB query templates.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	lgCfg := zap.NewDevelopmentConfig()
	lgCfg.DisableStacktrace = true
	lgCfg.DisableCaller = true
	lgCfg.EncoderConfig.ConsoleSeparator = " "
	if !verbose {
		lgCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return lgCfg.Build()
}

func rootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "dql",
		Short: "dql renders and runs DalmatinerDB query templates",

		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lg, err := newLogger(verbose)
			if err != nil {
				return errors.Wrap(err, "create logger")
			}
			cmd.SetContext(zctx.Base(cmd.Context(), lg))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.AddCommand(
		renderCmd(),
		queryCmd(),
		versionCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, ctx.Err()) {
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
