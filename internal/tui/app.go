// Package tui is a terminal browser for category pages. It shows the same
// view model as the HTML page: tabs, a debounced search box, the article
// list and the pagination control.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"devblog/internal/debounce"
	catUC "devblog/internal/usecase/category"
	"devblog/internal/view"
)

const defaultLoadTimeout = 15 * time.Second

// Loader loads a category page.
type Loader interface {
	LoadPage(ctx context.Context, params catUC.RouteParams) (*catUC.Page, error)
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
)

// Options configures the browser.
type Options struct {
	Loader Loader
	Site   view.Site
	// Start is the first page shown, e.g. /category/javascript.
	Start string
	// Debounce is the search quiet window. Zero means view.DefaultSearchDebounce.
	Debounce time.Duration
	// Timeout bounds one page load. Zero means 15s.
	Timeout time.Duration
	// Clock drives the search debounce. Nil means the system clock.
	Clock debounce.Clock
}

// App is the bubbletea model of the browser.
type App struct {
	loader  Loader
	site    view.Site
	window  time.Duration
	timeout time.Duration
	clock   debounce.Clock

	route   catUC.RouteParams
	page    view.Page
	loaded  bool
	loading bool
	err     error
	cursor  int
	mode    mode

	searchInput textinput.Model
	navigator   *view.SearchNavigator
	// send delivers debounced searches from the timer goroutine. It blocks
	// until the event loop reads the message, so Update never calls it.
	send func(tea.Msg)

	width  int
	height int
}

// NewApp returns a browser positioned at opts.Start.
func NewApp(opts Options) (*App, error) {
	if opts.Loader == nil {
		return nil, fmt.Errorf("tui: loader is required")
	}
	route, err := catUC.ParseRoute(opts.Start)
	if err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultLoadTimeout
	}
	if opts.Clock == nil {
		opts.Clock = debounce.SystemClock{}
	}

	ti := textinput.New()
	ti.Placeholder = "Search articles..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 200
	ti.SetValue(route.Search)

	return &App{
		loader:      opts.Loader,
		site:        opts.Site,
		window:      opts.Debounce,
		timeout:     opts.Timeout,
		clock:       opts.Clock,
		route:       route,
		loading:     true,
		searchInput: ti,
		send:        func(tea.Msg) {},
	}, nil
}

// Run starts the browser on the terminal and blocks until it quits.
func Run(opts Options) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	app.send = p.Send
	_, err = p.Run()
	return err
}

// Close drops any pending search navigation.
func (a *App) Close() {
	if a.navigator != nil {
		a.navigator.Close()
	}
}

func (a *App) Init() tea.Cmd {
	return a.load(a.route)
}

// load captures route and the loader in the closure so the command never
// touches the model from its goroutine.
func (a *App) load(route catUC.RouteParams) tea.Cmd {
	loader := a.loader
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		loaded, err := loader.LoadPage(ctx, route)
		if err != nil {
			return pageErrMsg{route: route, err: err}
		}
		return pageLoadedMsg{route: route, loaded: loaded}
	}
}

// navigate moves to target and starts loading it.
func (a *App) navigate(target string) tea.Cmd {
	route, err := catUC.ParseRoute(target)
	if err != nil {
		a.err = err
		return nil
	}
	a.route = route
	a.loading = true
	a.err = nil
	return a.load(route)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case navigateMsg:
		return a, a.navigate(msg.target)

	case pageLoadedMsg:
		if msg.route != a.route {
			return a, nil // superseded by a later navigation
		}
		a.showPage(msg.loaded)
		return a, nil

	case pageErrMsg:
		if msg.route != a.route {
			return a, nil
		}
		a.loading = false
		a.err = msg.err
		return a, nil
	}
	return a, nil
}

func (a *App) showPage(loaded *catUC.Page) {
	slugChanged := !a.loaded || loaded.Slug != a.page.Slug

	a.page = view.Build(a.site, loaded, a.window)
	a.loaded = true
	a.loading = false
	a.err = nil
	a.cursor = 0
	if a.mode == modeBrowse {
		a.searchInput.SetValue(a.route.Search)
	}

	if slugChanged || a.navigator == nil {
		if a.navigator != nil {
			a.navigator.Close()
		}
		send := a.send
		a.navigator = view.NewSearchNavigator(loaded.Slug, a.window, a.clock, func(target string) {
			send(navigateMsg{target: target})
		})
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.mode == modeSearch {
		return a.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.page.Articles)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "l", "right", "tab":
		return a, a.switchTab(1)
	case "h", "left", "shift+tab":
		return a, a.switchTab(-1)
	case "n":
		if a.page.Pagination.Next != "" {
			return a, a.navigate(a.page.Pagination.Next)
		}
		return a, nil
	case "p":
		if a.page.Pagination.Prev != "" {
			return a, a.navigate(a.page.Pagination.Prev)
		}
		return a, nil
	case "r":
		a.loading = true
		return a, a.load(a.route)
	case "/":
		if a.navigator == nil {
			return a, nil
		}
		a.mode = modeSearch
		return a, a.searchInput.Focus()
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.navigator.Cancel()
		a.mode = modeBrowse
		a.searchInput.Blur()
		a.searchInput.SetValue(a.route.Search)
		return a, nil
	case "enter":
		// Update must not call send: the loop that would receive it is this one.
		pending := a.navigator.Cancel()
		a.mode = modeBrowse
		a.searchInput.Blur()
		if !pending {
			return a, nil
		}
		return a, a.navigate(catUC.SearchURL(a.page.Slug, a.searchInput.Value()))
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if a.searchInput.Value() != before {
		a.navigator.Submit(a.searchInput.Value())
	}
	return a, cmd
}

// switchTab navigates to the category tab delta positions away, wrapping.
func (a *App) switchTab(delta int) tea.Cmd {
	tabs := a.page.Tabs
	if len(tabs) == 0 {
		return nil
	}
	current := -1
	for i, t := range tabs {
		if t.Active {
			current = i
			break
		}
	}
	next := (current + delta + len(tabs)) % len(tabs)
	if current == -1 && delta > 0 {
		next = 0
	}
	return a.navigate(tabs[next].URL)
}

func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	if !a.loaded {
		if a.err != nil {
			b.WriteString(errorStyle.Render("Error: "+a.err.Error()) + "\n")
		} else {
			b.WriteString(itemMetaStyle.Render(" Loading "+catUC.Path(a.route.Category)+"...") + "\n")
		}
		b.WriteString(a.statusBar(width))
		return b.String()
	}

	b.WriteString(titleStyle.Render(a.page.Title) + "\n")
	b.WriteString(renderTabs(a.page.Tabs, width) + "\n")
	b.WriteString(a.searchLine() + "\n\n")

	if a.page.Empty() {
		b.WriteString(itemMetaStyle.Render(" No articles found.") + "\n")
	}
	for i, c := range a.page.Articles {
		b.WriteString(renderCard(c, i == a.cursor, width) + "\n")
	}

	if line := renderPagination(a.page.Pagination); line != "" {
		b.WriteString("\n" + line + "\n")
	}
	if a.err != nil {
		b.WriteString(errorStyle.Render("Error: "+a.err.Error()) + "\n")
	}
	b.WriteString(a.statusBar(width))
	return b.String()
}

func (a *App) searchLine() string {
	if a.mode == modeSearch {
		return " " + a.searchInput.View()
	}
	if a.page.Search != "" {
		return itemMetaStyle.Render(" search: " + a.page.Search)
	}
	return itemMetaStyle.Render(" / to search")
}

func (a *App) statusBar(width int) string {
	left := " " + catUC.Path(a.route.Category)
	if a.loading {
		left += " (loading...)"
	}
	right := " h/l tabs  n/p pages  / search  r reload  q quit "
	if a.mode == modeSearch {
		right = " esc cancel  enter search now "
	}
	gap := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
