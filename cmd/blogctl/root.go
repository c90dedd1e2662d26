package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"devblog/internal/config"
	"devblog/internal/domain/entity"
	"devblog/internal/infra/strapi"
	"devblog/internal/observability/logging"
	catUC "devblog/internal/usecase/category"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "blogctl",
		Short:         "Inspect blog category pages",
		Long:          "blogctl builds content API queries, fetches category pages and browses them in the terminal.",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (default: $CONFIG_FILE)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log content API calls to stderr")

	cmd.AddCommand(newQueryCmd(opts))
	cmd.AddCommand(newPageCmd(opts))
	cmd.AddCommand(newBrowseCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blogctl %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// load reads the configuration the way the web server does.
func (o *rootOptions) load() (*config.WebConfig, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// service builds the category use case on top of the content API client.
func (o *rootOptions) service(cfg *config.WebConfig) (*catUC.Service, error) {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(logging.FormatConsole, level, os.Stderr)

	client, err := strapi.NewClient(cfg.ContentAPI, strapi.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return catUC.NewService(client, cfg.Pagination), nil
}

// routeArgs turns the positional category and the page/search flags into
// route parameters. A category that is not a slug is used as given, with a
// warning on stderr.
func routeArgs(cmd *cobra.Command, args []string, page, search string) catUC.RouteParams {
	if !entity.IsSlug(args[0]) {
		cmd.PrintErrf("warning: %q is not a category slug (e.g. web-development); the filter will likely match nothing\n", args[0])
	}
	return catUC.RouteParams{Category: args[0], Page: page, Search: search}
}
