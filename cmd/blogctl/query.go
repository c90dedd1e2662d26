package main

import (
	"fmt"

	"github.com/spf13/cobra"

	catUC "devblog/internal/usecase/category"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var page, search string
	var pageSize int

	cmd := &cobra.Command{
		Use:   "query <category>",
		Short: "Print the content API article query for a route",
		Long: `Print the article query string the server sends for a category route.

A non-empty --search replaces the category filter with a title search.`,
		Example: "  blogctl query javascript --page 2\n  blogctl query javascript --search hooks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			pc := cfg.Pagination
			if pageSize > 0 {
				pc.PageSize = pageSize
				if err := pc.Validate(); err != nil {
					return fmt.Errorf("invalid --page-size: %w", err)
				}
			}
			query := catUC.BuildQuery(routeArgs(cmd, args, page, search), pc).Encode()
			_, err = fmt.Fprintln(cmd.OutOrStdout(), query)
			return err
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "page number (invalid values mean 1)")
	cmd.Flags().StringVar(&search, "search", "", "title search term")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "override the configured page size")
	return cmd
}
