package main

import (
	"github.com/spf13/cobra"

	"devblog/internal/tui"
	catUC "devblog/internal/usecase/category"
	"devblog/internal/view"
)

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "browse <category>",
		Short: "Browse category pages in the terminal",
		Long: `Browse category pages interactively.

Keys: h/l switch category, n/p change page, / search (debounced), r reload, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			svc, err := opts.service(cfg)
			if err != nil {
				return err
			}

			start := catUC.Path(args[0])
			if search != "" {
				start = catUC.SearchURL(args[0], search)
			}
			return tui.Run(tui.Options{
				Loader:   svc,
				Site:     view.Site{Name: cfg.Site.Name, Description: cfg.Site.Description, MediaBaseURL: cfg.MediaBase()},
				Start:    start,
				Debounce: cfg.Search.Debounce,
				Timeout:  cfg.Server.RequestTimeout,
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "start with a title search")
	return cmd
}
