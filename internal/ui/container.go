// Package ui is the terminal front end: a bubbletea program whose root model,
// the Container, shows popular books or personalized recommendations for the
// user named in the current location.
package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/logger"
	"github.com/yildizm/bookrec/internal/recommender"
	"github.com/yildizm/bookrec/internal/route"
	"github.com/yildizm/bookrec/internal/store"
	"github.com/yildizm/bookrec/internal/ui/components"
)

// Dispatcher is the part of the store the container talks to
type Dispatcher interface {
	Dispatch(a store.Action) tea.Cmd
	State() store.State
}

// SessionRecorder persists navigation between runs
type SessionRecorder interface {
	SaveLocation(loc route.Location) error
	SaveModel(m recommender.ModelType) error
	AddVisit(loc route.Location) (int, error)
}

type focus int

const (
	focusUser focus = iota
	focusModel
	focusContent
	focusCount
)

const (
	defaultWidth = 80
	maxWidth     = 100
)

// Options configures a Container
type Options struct {
	Title        string
	Start        route.Location
	HistoryLimit int
	Session      SessionRecorder
	Logger       *logger.Logger
	Theme        *Theme
}

// Container is the root view. It owns navigation history, the
// history-modified flag and focus; everything else lives in the store.
type Container struct {
	store   Dispatcher
	history *route.History
	session SessionRecorder
	log     *logger.Logger

	user            route.Selection
	historyModified bool
	seed            []int64
	added           []int64

	focus   focus
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	styles  *Styles

	header          *components.Header
	userSelect      *components.UserSelect
	modelSelect     *components.ModelSelect
	creator         *components.Creator
	popular         *components.Popular
	target          *components.Target
	recommendations *components.Recommendations
	notice          *components.ModifiedHistory
	skeleton        *components.Skeleton

	width    int
	height   int
	quitting bool
}

// NewContainer creates the root view over d
func NewContainer(d Dispatcher, opts Options) *Container {
	if opts.Title == "" {
		opts.Title = "bookrec"
	}
	if opts.Start.Path == "" {
		opts.Start = route.Root
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	theme := GetTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	palette := theme.Palette()
	keys := DefaultKeyMap()

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
	)

	c := &Container{
		store:   d,
		history: route.NewHistory(opts.Start, opts.HistoryLimit),
		session: opts.Session,
		log:     opts.Logger.WithComponent("ui"),

		focus:   focusContent,
		keys:    keys,
		help:    help.New(),
		spinner: s,
		styles:  GetStyles(),

		header:          components.NewHeader(opts.Title, palette),
		userSelect:      components.NewUserSelect(keys.List, palette),
		modelSelect:     components.NewModelSelect(recommender.DefaultRegistry().List(), keys.List, palette),
		creator:         components.NewCreator(keys.List, palette),
		popular:         components.NewPopular(palette),
		target:          components.NewTarget(palette),
		recommendations: components.NewRecommendations(keys.List, palette),
		notice:          components.NewModifiedHistory(palette),
		skeleton:        components.NewSkeleton(palette),
	}
	c.sync()
	c.applyFocus()
	return c
}

// Init loads the catalog and announces the start location
func (c *Container) Init() tea.Cmd {
	return tea.Batch(
		c.dispatch(store.LoadBooksRequest{}),
		c.history.Notify(),
		c.spinner.Tick,
	)
}

// Update handles messages and navigation
func (c *Container) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width, c.height = msg.Width, msg.Height
		c.help.Width = msg.Width
		return c, nil
	case tea.KeyMsg:
		return c.handleKeyPress(msg)
	case LocationChangedMsg:
		return c, c.handleLocationChanged(msg)
	case UserSelectedMsg:
		return c, c.handlePredict(msg.Selection)
	case ModelChangedMsg:
		return c, c.handleModelChanged(msg.Model)
	case HistoryModifiedMsg:
		return c, c.handleHistoryModified(msg.Books)
	case CreateRequestedMsg:
		return c, c.handleCreate(msg.Books)
	case CatalogReloadedMsg:
		return c, tea.Batch(c.dispatch(store.LoadBooksRequest{}), c.history.Reload())
	case store.ActionMsg:
		return c, c.dispatch(msg.Action)
	case spinner.TickMsg:
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd
	}
	return c, nil
}

// User returns the user parsed from the most recent location
func (c *Container) User() route.Selection {
	return c.user
}

// HistoryModified reports whether the shown history diverged from the request
func (c *Container) HistoryModified() bool {
	return c.historyModified
}

// Location returns the current location
func (c *Container) Location() route.Location {
	return c.history.Current()
}

// Blocks returns what the content area currently shows
func (c *Container) Blocks() []Block {
	return ContentBlocks(c.snapshot())
}

func (c *Container) snapshot() Snapshot {
	st := c.store.State()
	return Snapshot{
		Mode:            store.SelectContentMode(st),
		Loading:         store.SelectIsLoadingContent(st),
		HistoryModified: c.historyModified,
	}
}

// handleLocationChanged makes the location the single source of the
// selected user and asks for matching content. Reloads are not recorded as
// visits.
func (c *Container) handleLocationChanged(msg LocationChangedMsg) tea.Cmd {
	loc := msg.Location
	sel := route.ParseUser(loc.RawQuery)
	c.user = sel
	c.resetModified()
	c.seed = nil
	c.userSelect.Bind(sel)
	if !msg.Reload {
		c.record(loc)
	}

	id, ok := sel.ID()
	if !ok {
		id = recommender.NoHistory
	}
	c.log.DebugWithFields("location changed", []logger.Field{
		logger.F("location", loc.String()),
		logger.User(id),
	})
	return c.dispatch(store.FetchRecommendationsRequest{User: id})
}

// handlePredict navigates to the location for sel; the fetch follows from
// the resulting LocationChangedMsg
func (c *Container) handlePredict(sel route.Selection) tea.Cmd {
	return c.history.Push(route.WithUser(c.history.Current(), sel))
}

func (c *Container) handleModelChanged(m recommender.ModelType) tea.Cmd {
	c.resetModified()
	cmds := []tea.Cmd{c.dispatch(store.SetModelType{Model: m})}
	c.modelSelect.Bind(m)

	if c.session != nil {
		if err := c.session.SaveModel(m); err != nil {
			c.log.WarnWithFields("failed to save model", []logger.Field{logger.Error(err)})
		}
	}

	if id, ok := c.user.ID(); ok {
		cmds = append(cmds, c.dispatch(store.FetchRecommendationsRequest{User: id}))
	}
	return tea.Batch(cmds...)
}

// handleHistoryModified raises the flag and, when books were added,
// re-predicts over the edited history without touching the target
func (c *Container) handleHistoryModified(books []int64) tea.Cmd {
	c.historyModified = true
	if len(books) == 0 {
		return nil
	}
	for _, id := range books {
		if !contains(c.added, id) {
			c.added = append(c.added, id)
		}
	}

	user := recommender.NoHistory
	if id, ok := c.user.ID(); ok {
		user = id
	}
	history := make([]int64, 0, len(c.seed)+len(c.added))
	history = append(history, c.seed...)
	history = append(history, c.added...)
	return c.dispatch(store.ModifyHistoryRequest{User: user, Books: history})
}

func (c *Container) handleCreate(books []int64) tea.Cmd {
	c.resetModified()
	c.seed = append([]int64(nil), books...)
	return c.dispatch(store.CreateRecommendationsRequest{Books: books})
}

func (c *Container) resetModified() {
	c.historyModified = false
	c.added = nil
}

// dispatch forwards a to the store and refreshes what children display
func (c *Container) dispatch(a store.Action) tea.Cmd {
	cmd := c.store.Dispatch(a)
	c.sync()
	return cmd
}

func (c *Container) sync() {
	st := c.store.State()
	c.userSelect.SetUsers(st.Users)
	c.modelSelect.SetModels(st.Models)
	c.modelSelect.Bind(store.SelectCurrentModel(st))
	c.creator.SetBooks(st.Books)
	c.recommendations.SetItems(st.Recommendations)
}

func (c *Container) record(loc route.Location) {
	if c.session == nil {
		return
	}
	if err := c.session.SaveLocation(loc); err != nil {
		c.log.WarnWithFields("failed to save location", []logger.Field{logger.Error(err)})
	}
	if _, err := c.session.AddVisit(loc); err != nil {
		c.log.WarnWithFields("failed to record visit", []logger.Field{logger.Error(err)})
	}
}

// handleKeyPress routes keys: focus keys first, then everything goes to the
// user input while it has focus, otherwise global keys, then the child
func (c *Container) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		c.quitting = true
		return c, tea.Quit
	}

	switch {
	case key.Matches(msg, c.keys.NextFocus):
		return c, c.moveFocus(1)
	case key.Matches(msg, c.keys.PrevFocus):
		return c, c.moveFocus(-1)
	}

	if c.focus == focusUser {
		return c, c.userSelect.Update(msg)
	}

	switch {
	case key.Matches(msg, c.keys.Quit):
		c.quitting = true
		return c, tea.Quit
	case key.Matches(msg, c.keys.Back):
		return c, c.history.Back()
	case key.Matches(msg, c.keys.Forward):
		return c, c.history.Forward()
	case key.Matches(msg, c.keys.Reload):
		return c, c.history.Reload()
	case key.Matches(msg, c.keys.Help):
		c.help.ShowAll = !c.help.ShowAll
		return c, nil
	}

	switch c.focus {
	case focusModel:
		return c, c.modelSelect.Update(msg, store.SelectCurrentModel(c.store.State()))
	case focusContent:
		return c, c.updateContent(msg)
	}
	return c, nil
}

func (c *Container) updateContent(msg tea.KeyMsg) tea.Cmd {
	snap := c.snapshot()
	if snap.Loading {
		return nil
	}
	switch snap.Mode {
	case store.ModePopular:
		return c.creator.Update(msg)
	case store.ModeRecommendations:
		return c.recommendations.Update(msg)
	}
	return nil
}

func (c *Container) moveFocus(step int) tea.Cmd {
	c.focus = focus((int(c.focus) + step + int(focusCount)) % int(focusCount))
	return c.applyFocus()
}

func (c *Container) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	if c.focus == focusUser {
		cmd = c.userSelect.Focus()
	} else {
		c.userSelect.Blur()
	}
	c.modelSelect.SetFocused(c.focus == focusModel)
	c.creator.SetFocused(c.focus == focusContent)
	c.recommendations.SetFocused(c.focus == focusContent)
	return cmd
}

// View renders the header, both selectors and the content blocks
func (c *Container) View() string {
	if c.quitting {
		return ""
	}

	st := c.store.State()
	width := c.contentWidth()

	sections := []string{
		c.header.Render(components.HeaderProps{
			Width:      width,
			Location:   c.history.Current(),
			User:       c.user,
			Model:      store.SelectCurrentModel(st),
			CanBack:    c.history.CanBack(),
			CanForward: c.history.CanForward(),
			Refreshing: st.Refreshing,
			Spinner:    c.spinner.View(),
			Err:        st.Err,
		}),
		"",
		c.userSelect.View(),
		c.modelSelect.View(store.SelectCurrentModel(st)),
		"",
	}

	for i, block := range c.Blocks() {
		sections = append(sections, c.renderBlock(block, st, i, width))
	}

	sections = append(sections, c.styles.Footer.Render(c.help.View(c.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (c *Container) renderBlock(b Block, st store.State, index, width int) string {
	listHeight := 0
	if c.height > 0 {
		listHeight = max(6, c.height-14)
	}

	switch b {
	case BlockSkeleton:
		return c.skeleton.Render(width, c.spinner.View(), index)
	case BlockCreator:
		return c.creator.Render(width, listHeight)
	case BlockPopular:
		return c.popular.Render(st.Popular, width)
	case BlockTarget:
		return c.target.Render(st.Target, c.user, width)
	case BlockModifiedHistory:
		return c.notice.Render(lookupBooks(st.Books, c.added), width)
	case BlockRecommendations:
		return c.recommendations.Render(width, listHeight)
	}
	return ""
}

func (c *Container) contentWidth() int {
	if c.width <= 0 {
		return defaultWidth
	}
	return min(c.width, maxWidth)
}

func lookupBooks(books []catalog.Book, ids []int64) []catalog.Book {
	found := make([]catalog.Book, 0, len(ids))
	for _, id := range ids {
		for _, b := range books {
			if b.ID == id {
				found = append(found, b)
				break
			}
		}
	}
	return found
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// NewProgram wraps c in a full-screen bubbletea program
func NewProgram(c *Container, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(c, opts...)
}
