package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	hcategory "devblog/internal/handler/http/category"
	"devblog/internal/view"
)

const defaultFetchTimeout = 30 * time.Second

func newPageCmd(opts *rootOptions) *cobra.Command {
	var page, search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "page <category>",
		Short:   "Fetch a category page and print it",
		Example: "  blogctl page javascript --page 2\n  blogctl page javascript --search hooks --json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			svc, err := opts.service(cfg)
			if err != nil {
				return err
			}

			timeout := cfg.Server.RequestTimeout
			if timeout <= 0 {
				timeout = defaultFetchTimeout
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			loaded, err := svc.LoadPage(ctx, routeArgs(cmd, args, page, search))
			if err != nil {
				return fmt.Errorf("loading page: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(hcategory.Props(loaded))
			}
			site := view.Site{Name: cfg.Site.Name, Description: cfg.Site.Description, MediaBaseURL: cfg.MediaBase()}
			return printPage(out, view.Build(site, loaded, cfg.Search.Debounce))
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "page number (invalid values mean 1)")
	cmd.Flags().StringVar(&search, "search", "", "title search term")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page props as JSON")
	return cmd
}

// printPage writes a plain-text rendering of p.
func printPage(w io.Writer, p view.Page) error {
	var b strings.Builder
	fmt.Fprintln(&b, p.Title)

	tabs := make([]string, 0, len(p.Tabs))
	for _, t := range p.Tabs {
		if t.Active {
			tabs = append(tabs, "["+t.Title+"]")
			continue
		}
		tabs = append(tabs, t.Title)
	}
	if len(tabs) > 0 {
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(tabs, " | "))
	}
	if p.Search != "" {
		fmt.Fprintf(&b, "Search: %s\n", p.Search)
	}
	b.WriteString("\n")

	if p.Empty() {
		b.WriteString("No articles found.\n")
	}
	for i, a := range p.Articles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, a.Title)
		meta := a.Author
		if !a.Date.IsZero() {
			meta += " · " + a.Date.Format("Jan 2, 2006")
		}
		fmt.Fprintf(&b, "   %s\n", meta)
		if a.Excerpt != "" {
			fmt.Fprintf(&b, "   %s\n", a.Excerpt)
		}
		fmt.Fprintf(&b, "   %s\n", a.URL)
	}

	if l := p.Pagination; l.PageCount > 1 {
		fmt.Fprintf(&b, "\nPage %d of %d", l.Page, l.PageCount)
		if l.Prev != "" {
			fmt.Fprintf(&b, "  prev: %s", l.Prev)
		}
		if l.Next != "" {
			fmt.Fprintf(&b, "  next: %s", l.Next)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
