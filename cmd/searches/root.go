package main

import (
	"errors"
	"fmt"

	"facette.io/natsort"
	"github.com/amp-labs/searchhistory/cli"
	"github.com/amp-labs/searchhistory/envutil"
	"github.com/amp-labs/searchhistory/logger"
	"github.com/amp-labs/searchhistory/searches"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const defaultMaxRows = 20

var (
	errNoCatalog       = errors.New("no catalog given: use --catalog or set SEARCHES_CATALOG")
	errMaxRowsPositive = errors.New("must be at least 1")
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "searches",
		Short: "Search a photo catalog and keep a most-recent-first history",
		Long: `Starts an interactive prompt. Each search goes to the top of the
history; searching a term again moves it back to the top.`,
		Args: cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			_, err := logger.ConfigureLogging(cmd.Context(), "searches")

			return err
		},
		RunE: interactiveHandler,
	}

	cobra.EnableCommandSorting = false

	rootCmd.PersistentFlags().StringP("catalog", "c", "", "YAML catalog of search results (default $SEARCHES_CATALOG)")
	rootCmd.PersistentFlags().Int("max-rows", 0, "rows shown by list (default $SEARCHES_MAX_ROWS or 20)")

	rootCmd.AddCommand(newSearchCmd(), newTermsCmd())

	return rootCmd
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM [TERM...]",
		Short: "Run searches in order and print the resulting history",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSessionFromFlags(cmd)
			if err != nil {
				return err
			}

			for _, term := range args {
				if _, err := sess.search(cmd.Context(), term); err != nil {
					return err
				}
			}

			sess.list()

			return nil
		},
	}
}

func newTermsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terms",
		Short: "List the terms the catalog knows about",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			sorted, err := cmd.Flags().GetBool("sorted")
			if err != nil {
				return err
			}

			terms := cat.Terms()
			if sorted {
				natsort.Sort(terms)
			}

			renderTerms(cmd.OutOrStdout(), terms)

			return nil
		},
	}

	cmd.Flags().Bool("sorted", false, "sort terms in natural order instead of catalog order")

	return cmd
}

func interactiveHandler(cmd *cobra.Command, _ []string) error {
	sess, err := newSessionFromFlags(cmd)
	if err != nil {
		return err
	}

	prompter := &cli.Prompter{}
	sess.choose = prompter.Choose
	sess.confirm = prompter.Confirm

	ctx := logger.With(cmd.Context(), "session", uuid.NewString())
	logger.Get(ctx).Debug("starting session", "maxRows", sess.maxRows)

	return sess.loop(ctx, prompter.StringEmptyOk)
}

func newSessionFromFlags(cmd *cobra.Command) (*session, error) {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}

	maxRows, err := maxRows(cmd)
	if err != nil {
		return nil, err
	}

	return newSession(cat, cmd.OutOrStdout(), maxRows), nil
}

func loadCatalog(cmd *cobra.Command) (*searches.Catalog, error) {
	path, err := cmd.Flags().GetString("catalog")
	if err != nil {
		return nil, err
	}

	if path == "" {
		rdr := envutil.String(cmd.Context(), "SEARCHES_CATALOG")
		if !rdr.HasValue() {
			return nil, errNoCatalog
		}

		path = rdr.ValueOrElse("")
		logger.Get(cmd.Context()).Debug("catalog path from environment", "var", rdr.Key())
	}

	if path == "" {
		return nil, errNoCatalog
	}

	cat, err := searches.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}

	logger.Get(cmd.Context()).Info("loaded catalog", "path", path, "terms", len(cat.Terms()))

	return cat, nil
}

func maxRows(cmd *cobra.Command) (int, error) {
	rows, err := cmd.Flags().GetInt("max-rows")
	if err != nil {
		return 0, err
	}

	if rows > 0 {
		return rows, nil
	}

	if cmd.Flags().Changed("max-rows") {
		return 0, fmt.Errorf("--max-rows %w", errMaxRowsPositive)
	}

	return envutil.Int(cmd.Context(), "SEARCHES_MAX_ROWS",
		envutil.Default(defaultMaxRows),
		envutil.Validate(func(n int) error {
			if n < 1 {
				return errMaxRowsPositive
			}

			return nil
		})).Value()
}
