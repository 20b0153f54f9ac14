package main

import (
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-faster/dalmatinerql/internal/dqlclient"
)

func queryCmd() *cobra.Command {
	var (
		tmpl       templateOptions
		addr       string
		last       time.Duration
		rawStart   string
		rawEnd     string
		maxRetries uint64
		render     renderOptions
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run query rendered from template",
		Args:  cobra.NoArgs,
		Example: heredoc.Doc(`
# Get CPU usage for last hour.
dql query -f cpu.yml --last 1h

# Get CPU usage for given range.
dql query -f cpu.yml --start 2024-01-01T00:00:00Z --end 2024-01-02T00:00:00Z
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			r, err := parseRange(last, rawStart, rawEnd)
			if err != nil {
				return errors.Wrap(err, "parse range")
			}
			b, err := tmpl.Build()
			if err != nil {
				return err
			}
			c, err := dqlclient.NewClient(addr, dqlclient.WithMaxRetries(maxRetries))
			if err != nil {
				return errors.Wrap(err, "create client")
			}
			res, err := c.QueryBuilder(ctx, b, r)
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), render, res)
		},
	}
	{
		flags := cmd.Flags()
		tmpl.Register(flags)
		flags.StringVar(&addr, "addr", "http://localhost:8080", "DalmatinerDB frontend address")
		flags.DurationVar(&last, "last", 0, "Query data for the last given duration")
		flags.StringVar(&rawStart, "start", "", "Start of query range, RFC3339 or unix timestamp")
		flags.StringVar(&rawEnd, "end", "", "End of query range, RFC3339 or unix timestamp, defaults to now")
		flags.Uint64Var(&maxRetries, "max-retries", 3, "Maximum number of query retries")
		render.Register(flags)
	}
	return cmd
}

func parseTime(s string) (time.Time, error) {
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid time %q", s)
	}
	return t, nil
}

func parseRange(last time.Duration, rawStart, rawEnd string) (dqlclient.Range, error) {
	switch {
	case last != 0 && (rawStart != "" || rawEnd != ""):
		return dqlclient.Range{}, errors.New("--last and --start/--end are mutually exclusive")
	case last != 0:
		return dqlclient.Last(last), nil
	case rawStart == "":
		return dqlclient.Last(time.Hour), nil
	}

	start, err := parseTime(rawStart)
	if err != nil {
		return dqlclient.Range{}, errors.Wrap(err, "start")
	}
	end := time.Now()
	if rawEnd != "" {
		end, err = parseTime(rawEnd)
		if err != nil {
			return dqlclient.Range{}, errors.Wrap(err, "end")
		}
	}
	r := dqlclient.Between(start, end)
	if err := r.Validate(); err != nil {
		return dqlclient.Range{}, err
	}
	return r, nil
}

type renderOptions struct {
	json  bool
	color bool
}

func (opts *renderOptions) Register(set *pflag.FlagSet) {
	set.BoolVar(&opts.json, "json", false, "Print raw JSON result")
	disableColor := os.Getenv("NO_COLOR") != "" ||
		os.Getenv("TERM") == "dumb" ||
		(!isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()))
	set.BoolVar(&opts.color, "color", !disableColor, "Enable color")
}

func renderResult(stdout io.Writer, opts renderOptions, res *dqlclient.Result) error {
	if opts.json {
		var e jx.Encoder
		res.Encode(&e)
		_, err := stdout.Write(append(e.Bytes(), '\n'))
		return err
	}

	name := color.New(color.FgHiBlue, color.Bold)
	missing := color.New(color.FgHiBlack)
	if opts.color {
		name.EnableColor()
		missing.EnableColor()
	} else {
		name.DisableColor()
		missing.DisableColor()
	}

	var buf []byte
	for _, s := range res.Series {
		buf = buf[:0]
		buf = append(buf, name.Sprint(s.Name)...)
		buf = append(buf, " ("...)
		buf = append(buf, s.Resolution.String()...)
		buf = append(buf, ")\n"...)
		for i, v := range s.Values {
			buf = append(buf, '\t')
			buf = strconv.AppendInt(buf, int64(i), 10)
			buf = append(buf, '\t')
			if math.IsNaN(v) {
				buf = append(buf, missing.Sprint("-")...)
			} else {
				buf = strconv.AppendFloat(buf, v, 'f', -1, 64)
			}
			buf = append(buf, '\n')
		}
		if _, err := stdout.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
