package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"devblog/internal/common/pagination"
	"devblog/internal/view"
)

func renderTabs(tabs []view.Tab, width int) string {
	var row string
	for i, t := range tabs {
		style := tabInactiveStyle
		if t.Active {
			style = tabActiveStyle
		}
		candidate := row
		if i > 0 {
			candidate += " "
		}
		candidate += style.Render(t.Title)
		// Stop before overflowing the terminal.
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}
	return " " + row
}

func renderCard(c view.ArticleCard, selected bool, width int) string {
	marker := "  "
	title := itemTitleStyle.Render(truncate(c.Title, width-4))
	if selected {
		marker = itemSelectedStyle.Render("> ")
		title = itemSelectedStyle.Render(truncate(c.Title, width-4))
	}

	var meta []string
	if c.Author != "" {
		meta = append(meta, c.Author)
	}
	if !c.Date.IsZero() {
		meta = append(meta, c.Date.Format("Jan 2, 2006"))
	}

	lines := []string{marker + title}
	if len(meta) > 0 {
		lines = append(lines, "    "+itemMetaStyle.Render(strings.Join(meta, " · ")))
	}
	if c.Excerpt != "" {
		lines = append(lines, excerptStyle.Render(truncate(c.Excerpt, width-6)))
	}
	return strings.Join(lines, "\n")
}

// renderPagination is empty when there is a single page.
func renderPagination(l pagination.Links) string {
	if l.PageCount <= 1 {
		return ""
	}
	prev, next := "  ", "  "
	if l.Prev != "" {
		prev = "‹ p"
	}
	if l.Next != "" {
		next = "n ›"
	}
	return itemMetaStyle.Render(fmt.Sprintf(" %s  page %d of %d  %s", prev, l.Page, l.PageCount, next))
}

// truncate shortens s to n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
