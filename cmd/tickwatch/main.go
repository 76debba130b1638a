package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tickwatch/pkg/tickwatch/app"
	"tickwatch/pkg/tickwatch/export"
	"tickwatch/pkg/tickwatch/extract"
	"tickwatch/pkg/tickwatch/filter"
	"tickwatch/pkg/tickwatch/market"
	"tickwatch/pkg/tickwatch/render"
	"tickwatch/pkg/tickwatch/scrape"
	"tickwatch/pkg/tickwatch/types"
	"tickwatch/pkg/tickwatch/watchlist"
)

const seedSymbol = "AAPL"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tickwatch",
		Short:         "Maintain a ticker watch-list, fetch fundamentals, and export them",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(viper.GetString("log-level"))
		},
	}

	pf := root.PersistentFlags()
	pf.String("file", "tickers.txt", "watch-list file, one symbol per line")
	pf.Duration("timeout", 10*time.Second, "per-request HTTP timeout")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.Bool("color", true, "colorize table output")
	pf.Bool("json", false, "render as JSON instead of a table")
	pf.Bool("pretty", false, "indent JSON output")
	pf.StringSlice("cols", nil, "column sets: all, basic, performance, profitability, valuation, balance")
	pf.String("filter", "", "symbol filter: exact set, glob, /regex/, or substring")
	pf.Bool("live", false, "append live price and day-change columns")
	pf.Int("max-col-width", 0, "max table column width (0 = derive from terminal)")

	viper.SetEnvPrefix("TICKWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(pf)

	root.AddCommand(
		newShowCmd(),
		newAddCmd(),
		newDetailCmd(),
		newClearCmd(),
		newExportCmd(),
		newSymsCmd(),
		newImportCmd(),
	)
	return root
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Fetch every watch-list ticker and render the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			// First run starts with a seed ticker rather than an empty table.
			if store.Len() == 0 {
				if _, err := store.Add(seedSymbol); err == nil {
					if err := store.Persist(); err != nil {
						return err
					}
				}
			}
			runner, opts, err := newRunner(store)
			if err != nil {
				return err
			}
			return runner.Refresh(cmd.Context(), opts)
		},
	}
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add SYM...",
		Short: "Add tickers to the watch-list, then render the refreshed table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			changed := false
			for _, arg := range args {
				ok, err := store.Add(arg)
				if err != nil {
					return fmt.Errorf("add %q: %w", arg, err)
				}
				if !ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s is already in the list\n", watchlist.Normalize(arg))
					continue
				}
				changed = true
			}
			if changed {
				if err := store.Persist(); err != nil {
					return err
				}
			}
			runner, opts, err := newRunner(store)
			if err != nil {
				return err
			}
			return runner.Refresh(cmd.Context(), opts)
		},
	}
}

func newDetailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detail SYM",
		Short: "Fetch one ticker and render its grouped detail panels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			runner, opts, err := newRunner(store)
			if err != nil {
				return err
			}
			if !viper.GetBool("json") {
				runner.Renderer = render.NewDetailRenderer()
			}
			return runner.Detail(cmd.Context(), args[0], opts)
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every ticker from the watch-list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			n := store.Len()
			store.Clear()
			if err := store.Persist(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d tickers.\n", n)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE.xlsx",
		Short: "Re-fetch every ticker and export the records to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			runner, opts, err := newRunner(store)
			if err != nil {
				return err
			}
			err = runner.Export(cmd.Context(), args[0], opts)
			switch {
			case errors.Is(err, export.ErrNoTickers):
				fmt.Fprintln(cmd.OutOrStdout(), "No tickers to export.")
				return nil
			case errors.Is(err, export.ErrNoData):
				fmt.Fprintln(cmd.OutOrStdout(), "No data to export.")
				return nil
			case err != nil:
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data exported to %s\n", args[0])
			return nil
		},
	}
}

func newSymsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "syms",
		Short: "Print the watch-list symbols as one comma-separated line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			runner, opts, err := newRunner(store)
			if err != nil {
				return err
			}
			runner.Renderer = render.NewSymsRenderer()
			return runner.Syms(opts)
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.yaml",
		Short: "Merge symbols from a YAML watchlist file into the watch-list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			added, err := store.ImportYAML(args[0])
			if err != nil {
				return err
			}
			if len(added) > 0 {
				if err := store.Persist(); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new symbols.\n", len(added))
			return nil
		},
	}
}

func openStore() (*watchlist.Store, error) {
	store := watchlist.NewStore(viper.GetString("file"))
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

// newRunner assembles the runner and options shared by the fetching
// commands from the bound flags.
func newRunner(store *watchlist.Store) (*app.Runner, app.ExecuteOptions, error) {
	timeout := viper.GetDuration("timeout")

	quotes := market.NewCachedQuotes(market.NewYahooQuotes(timeout), time.Minute, 256)
	extractor := extract.New(scrape.NewClient(timeout), market.NewClient(timeout))

	var renderer render.Renderer
	if viper.GetBool("json") {
		renderer = render.NewJSONRenderer()
	} else {
		renderer = &render.TableRenderer{Quotes: quotes}
	}

	cols, err := types.ExpandSets(viper.GetStringSlice("cols"))
	if err != nil {
		return nil, app.ExecuteOptions{}, err
	}
	filt, err := filter.Parse(viper.GetString("filter"))
	if err != nil {
		return nil, app.ExecuteOptions{}, fmt.Errorf("parse filter: %w", err)
	}

	runner := &app.Runner{
		Store:     store,
		Extractor: extractor,
		Renderer:  renderer,
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
		Log:       slog.Default(),
	}
	opts := app.ExecuteOptions{
		Options: render.Options{
			Columns:     cols,
			Color:       viper.GetBool("color"),
			Live:        viper.GetBool("live"),
			PrettyJSON:  viper.GetBool("pretty"),
			MaxColWidth: maxColWidth(len(cols)),
		},
		Filter: filt,
	}
	return runner, opts, nil
}

// maxColWidth honors the flag when set, otherwise spreads the detected
// terminal width over the rendered columns.
func maxColWidth(cols int) int {
	if w := viper.GetInt("max-col-width"); w > 0 {
		return w
	}
	tw := detectTerminalWidth()
	if tw <= 0 || cols == 0 {
		return 0
	}
	per := tw / cols
	if per < 12 {
		per = 12
	}
	return per
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}
