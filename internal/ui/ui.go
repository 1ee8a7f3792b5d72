package ui

import (
	"context"
	"errors"

	"github.com/akasheyy/navajuvala-frontend/internal/catalog"
	"github.com/akasheyy/navajuvala-frontend/internal/favorites"
	"github.com/akasheyy/navajuvala-frontend/internal/flows"
	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/services"
	"github.com/akasheyy/navajuvala-frontend/internal/session"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	DetailView
	LikedView
	LoginView
	ManageView
	RecordsView
	StatsView
	ConfirmDeleteView
)

// Notices adapts the flows notifier to the message loop. Engine callbacks
// drop their notice into a buffered channel which a repeating command
// drains into the model.
type Notices struct {
	ch chan flows.Notice
}

var _ flows.Notifier = (*Notices)(nil)

func NewNotices() *Notices {
	return &Notices{ch: make(chan flows.Notice, 16)}
}

func (n *Notices) Notify(notice flows.Notice) {
	select {
	case n.ch <- notice:
	default:
	}
}

// deletion is a pending destructive action awaiting its confirmation.
type deletion struct {
	record bool
	id     string
	title  string
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	returnTo  ViewState
	catalog   services.Catalog
	browser   *catalog.Browser
	engine    *flows.Engine
	guard     *session.Guard
	favorites *favorites.Store
	notices   *Notices

	// seq tags every fetch; responses carrying a stale seq are dropped.
	seq int

	width  int
	height int

	books      []models.Book
	facets     catalog.FacetState
	categories []string
	catIndex   int
	bookList   list.Model
	listReady  bool

	search    textinput.Model
	searching bool

	card    *BookCard
	missing bool

	adminBooks []models.Book
	adminList  list.Model
	adminReady bool

	records     []models.BorrowRecord
	recordList  list.Model
	recordReady bool

	stats *models.DashboardStats

	email    textinput.Model
	password textinput.Model
	loginErr error

	pending *deletion
	notice  *flows.Notice
	flow    flows.Flow

	favCh     chan favorites.Change
	favCancel func()

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, cat services.Catalog, browser *catalog.Browser, engine *flows.Engine, guard *session.Guard, store *favorites.Store, notices *Notices) *Model {
	search := textinput.New()
	search.Placeholder = "title, author or ISBN"
	search.CharLimit = 80

	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	return &Model{
		ctx:       ctx,
		view:      BrowseView,
		catalog:   cat,
		browser:   browser,
		engine:    engine,
		guard:     guard,
		favorites: store,
		notices:   notices,
		facets:    catalog.DefaultFacets(),
		search:    search,
		email:     email,
		password:  password,
		favCh:     make(chan favorites.Change, 16),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init subscribes to favorites broadcasts and kicks off the first catalog
// fetch.
func (m *Model) Init() tea.Cmd {
	_, cancel := m.favorites.Subscribe(func(change favorites.Change) {
		select {
		case m.favCh <- change:
		default:
		}
	})
	m.favCancel = cancel

	return tea.Batch(m.fetchBooks(), m.waitForNotice(), m.waitForFavorites())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.bookList, &m.adminList, &m.recordList} {
			if l.Width() != 0 {
				l.SetSize(msg.Width-4, msg.Height-8)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case booksFetchedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.admin {
			m.adminBooks = msg.books
			m.rebuildAdminList()
		} else {
			m.books = msg.books
			m.categories = append([]string{catalog.AllCategories}, catalog.Vocabulary(msg.books)...)
			m.rebuildBookList()
		}
		return m, nil

	case bookFetchedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.missing = msg.missing
		if msg.book != nil {
			m.mountCard(*msg.book)
		}
		return m, nil

	case recordsFetchedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.records = msg.records
		m.rebuildRecordList()
		return m, nil

	case statsFetchedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.stats = msg.stats
		return m, nil

	case loginResultMsg:
		if msg.err != nil {
			m.loginErr = msg.err
			return m, nil
		}
		m.loginErr = nil
		m.password.SetValue("")
		return m.navigate(m.returnTo)

	case mutationDoneMsg:
		// Notices carry the outcome; a success already invalidated the
		// cache, so refetch whatever the current view shows.
		return m, m.refetchCurrent()

	case noticeMsg:
		notice := flows.Notice(msg)
		m.notice = &notice
		return m, m.waitForNotice()

	case favoritesChangedMsg:
		m.rebuildBookList()
		return m, m.waitForFavorites()
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case BrowseView, LikedView:
		return m.renderBrowse()
	case DetailView:
		return m.renderDetail()
	case LoginView:
		return m.renderLogin()
	case ManageView:
		return m.renderManage()
	case RecordsView:
		return m.renderRecords()
	case StatsView:
		return m.renderStats()
	case ConfirmDeleteView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.view == LoginView {
		return m.handleLoginKeys(msg)
	}
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if m.favCancel != nil {
			m.favCancel()
		}
		return m, tea.Quit
	case "1":
		return m.navigate(BrowseView)
	case "2":
		return m.navigate(LikedView)
	case "3":
		return m.enterAdmin(ManageView)
	case "4":
		return m.enterAdmin(RecordsView)
	case "5":
		return m.enterAdmin(StatsView)
	}

	switch m.view {
	case BrowseView, LikedView:
		return m.handleBrowseKeys(msg)
	case DetailView:
		return m.handleDetailKeys(msg)
	case ManageView:
		return m.handleManageKeys(msg)
	case RecordsView:
		return m.handleRecordKeys(msg)
	case StatsView:
		if msg.String() == "esc" {
			return m.navigate(BrowseView)
		}
	case ConfirmDeleteView:
		return m.handleConfirmKeys(msg)
	}
	return m, nil
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "c":
		m.cycleCategory()
		return m, nil
	case "f":
		if item, ok := m.bookList.SelectedItem().(bookItem); ok {
			m.favorites.Toggle(item.book.ID)
		}
		return m, nil
	case "enter":
		if item, ok := m.bookList.SelectedItem().(bookItem); ok {
			m.view = DetailView
			m.missing = false
			m.seq++
			return m, m.fetchBook(item.book.ID)
		}
		return m, nil
	case "r":
		m.seq++
		return m, m.fetchBooks()
	}

	var cmd tea.Cmd
	m.bookList, cmd = m.bookList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.facets.Query = m.search.Value()
	m.rebuildBookList()
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.unmountCard()
		return m.navigate(BrowseView)
	case "f":
		if m.card != nil {
			m.card.Toggle()
		}
		return m, nil
	case "b":
		if m.card == nil || !m.card.Book().InStock() {
			return m, nil
		}
		if !m.guard.RequireSession().Authenticated {
			m.returnTo = DetailView
			m.view = LoginView
			return m, nil
		}
		book := m.card.Book()
		return m, m.mutate(func() error {
			return m.engine.BorrowBook(m.ctx, book.ID, book.Title)
		})
	}
	return m, nil
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.favCancel != nil {
			m.favCancel()
		}
		return m, tea.Quit
	case "esc":
		return m.navigate(BrowseView)
	case "tab", "down", "up":
		if m.email.Focused() {
			m.email.Blur()
			return m, m.password.Focus()
		}
		m.password.Blur()
		return m, m.email.Focus()
	case "enter":
		return m, m.submitLogin()
	}

	var cmd tea.Cmd
	if m.email.Focused() {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleManageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(BrowseView)
	case "x":
		if item, ok := m.adminList.SelectedItem().(bookItem); ok {
			m.pending = &deletion{id: item.book.ID, title: item.book.Title}
			m.view = ConfirmDeleteView
		}
		return m, nil
	case "r":
		m.seq++
		return m, m.fetchAdminBooks()
	}

	var cmd tea.Cmd
	m.adminList, cmd = m.adminList.Update(msg)
	return m, cmd
}

func (m *Model) handleRecordKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(BrowseView)
	case "t":
		if item, ok := m.recordList.SelectedItem().(recordItem); ok {
			record := item.record
			return m, m.mutate(func() error {
				return m.engine.ReturnBorrowRecord(m.ctx, record.ID, record.BookTitle)
			})
		}
		return m, nil
	case "x":
		if item, ok := m.recordList.SelectedItem().(recordItem); ok {
			m.pending = &deletion{record: true, id: item.record.ID, title: item.record.BookTitle}
			m.view = ConfirmDeleteView
		}
		return m, nil
	case "r":
		m.seq++
		return m, m.fetchRecords()
	}

	var cmd tea.Cmd
	m.recordList, cmd = m.recordList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.pending
	switch msg.String() {
	case "y":
		if pending == nil {
			return m.navigate(ManageView)
		}
		m.pending = nil
		if pending.record {
			m.view = RecordsView
			return m, m.mutate(func() error {
				return m.engine.DeleteBorrowRecord(m.ctx, pending.id, true)
			})
		}
		m.view = ManageView
		return m, m.mutate(func() error {
			return m.engine.DeleteBook(m.ctx, pending.id, pending.title, true)
		})
	case "n", "esc":
		m.pending = nil
		if pending != nil && pending.record {
			m.view = RecordsView
		} else {
			m.view = ManageView
		}
		return m, nil
	}
	return m, nil
}

// navigate switches views, bumping the sequence so in-flight responses for
// the old view are dropped on arrival.
func (m *Model) navigate(view ViewState) (tea.Model, tea.Cmd) {
	m.unmountCard()
	m.view = view
	m.seq++

	switch view {
	case BrowseView, LikedView:
		m.rebuildBookList()
		if m.books == nil {
			return m, m.fetchBooks()
		}
		return m, nil
	case ManageView:
		return m, m.fetchAdminBooks()
	case RecordsView:
		return m, m.fetchRecords()
	case StatsView:
		return m, m.fetchStats()
	}
	return m, nil
}

// enterAdmin re-checks the session guard on every admin view entry and
// detours through login when no token is present.
func (m *Model) enterAdmin(view ViewState) (tea.Model, tea.Cmd) {
	if !m.guard.RequireSession().Authenticated {
		m.returnTo = view
		m.view = LoginView
		return m, nil
	}
	return m.navigate(view)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BrowseView, LikedView:
		if m.listReady {
			m.bookList, cmd = m.bookList.Update(msg)
		}
	case ManageView:
		if m.adminReady {
			m.adminList, cmd = m.adminList.Update(msg)
		}
	case RecordsView:
		if m.recordReady {
			m.recordList, cmd = m.recordList.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) cycleCategory() {
	if len(m.categories) == 0 {
		return
	}
	m.catIndex = (m.catIndex + 1) % len(m.categories)
	m.facets.Category = m.categories[m.catIndex]
	m.rebuildBookList()
}

// visibleBooks applies the facet state, then the liked subset when the
// liked view is active.
func (m *Model) visibleBooks() []models.Book {
	filtered := catalog.Filter(m.books, m.facets)
	if m.view != LikedView {
		return filtered
	}

	liked := make([]models.Book, 0, len(filtered))
	for _, book := range filtered {
		if m.favorites.IsLiked(book.ID) {
			liked = append(liked, book)
		}
	}
	return liked
}

func (m *Model) rebuildBookList() {
	books := m.visibleBooks()
	items := make([]list.Item, len(books))
	for i, book := range books {
		items[i] = bookItem{book: book, liked: m.favorites.IsLiked(book.ID)}
	}

	title := "Community Library"
	if m.view == LikedView {
		title = "Liked Books"
	}

	m.bookList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.bookList.Title = title
	m.bookList.SetFilteringEnabled(false)
	m.bookList.SetSize(m.width-4, m.height-8)
	m.listReady = true
}

func (m *Model) rebuildAdminList() {
	items := make([]list.Item, len(m.adminBooks))
	for i, book := range m.adminBooks {
		items[i] = bookItem{book: book, liked: m.favorites.IsLiked(book.ID)}
	}
	m.adminList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.adminList.Title = "Inventory"
	m.adminList.SetFilteringEnabled(false)
	m.adminList.SetSize(m.width-4, m.height-8)
	m.adminReady = true
}

func (m *Model) rebuildRecordList() {
	items := make([]list.Item, len(m.records))
	for i, record := range m.records {
		items[i] = recordItem{record: record, now: timeNow()}
	}
	m.recordList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.recordList.Title = "Borrow Records"
	m.recordList.SetFilteringEnabled(false)
	m.recordList.SetSize(m.width-4, m.height-8)
	m.recordReady = true
}

func (m *Model) mountCard(book models.Book) {
	m.unmountCard()
	m.card = NewBookCard(m.favorites, book)
	m.card.Mount(func(change favorites.Change) {
		select {
		case m.favCh <- change:
		default:
		}
	})
}

func (m *Model) unmountCard() {
	if m.card != nil {
		m.card.Unmount()
		m.card = nil
	}
}

func (m *Model) fetchBooks() tea.Cmd {
	seq := m.seq
	return func() tea.Msg {
		books, err := m.browser.Books(m.ctx)
		return booksFetchedMsg{seq: seq, books: books, err: err}
	}
}

func (m *Model) fetchAdminBooks() tea.Cmd {
	seq := m.seq
	return func() tea.Msg {
		books, err := m.browser.AdminBooks(m.ctx)
		return booksFetchedMsg{seq: seq, admin: true, books: books, err: err}
	}
}

func (m *Model) fetchBook(id string) tea.Cmd {
	seq := m.seq
	return func() tea.Msg {
		book, err := m.browser.Book(m.ctx, id)
		if errors.Is(err, shared.ErrBookNotFound) {
			return bookFetchedMsg{seq: seq, missing: true}
		}
		return bookFetchedMsg{seq: seq, book: book, err: err}
	}
}

func (m *Model) fetchRecords() tea.Cmd {
	seq := m.seq
	return func() tea.Msg {
		records, err := m.browser.Records(m.ctx)
		return recordsFetchedMsg{seq: seq, records: records, err: err}
	}
}

func (m *Model) fetchStats() tea.Cmd {
	seq := m.seq
	return func() tea.Msg {
		stats, err := m.catalog.Stats(m.ctx)
		return statsFetchedMsg{seq: seq, stats: stats, err: err}
	}
}

func (m *Model) submitLogin() tea.Cmd {
	email, password := m.email.Value(), m.password.Value()
	return func() tea.Msg {
		resp, err := m.catalog.Login(m.ctx, email, password)
		return loginResultMsg{resp: resp, err: err}
	}
}

// mutate runs an engine operation under the submission guard. A rejected
// re-entry is silent; the in-flight request keeps its controls disabled.
func (m *Model) mutate(op func() error) tea.Cmd {
	return func() tea.Msg {
		err := m.flow.Run(op)
		if errors.Is(err, flows.ErrInFlight) {
			return nil
		}
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) refetchCurrent() tea.Cmd {
	m.seq++
	switch m.view {
	case BrowseView, LikedView:
		return m.fetchBooks()
	case DetailView:
		if m.card != nil {
			return m.fetchBook(m.card.Book().ID)
		}
	case ManageView:
		return m.fetchAdminBooks()
	case RecordsView:
		return m.fetchRecords()
	case StatsView:
		return m.fetchStats()
	}
	return nil
}

func (m *Model) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-m.notices.ch)
	}
}

func (m *Model) waitForFavorites() tea.Cmd {
	return func() tea.Msg {
		return favoritesChangedMsg(<-m.favCh)
	}
}
