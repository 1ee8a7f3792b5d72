package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akasheyy/navajuvala-frontend/internal/catalog"
	"github.com/akasheyy/navajuvala-frontend/internal/flows"
	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/session"
	tu "github.com/akasheyy/navajuvala-frontend/internal/testing"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, mock *tu.MockCatalog, loggedIn bool) *Model {
	t.Helper()

	dir := t.TempDir()
	store := session.NewStore(filepath.Join(dir, "token"))
	if loggedIn {
		if err := store.Set("tok"); err != nil {
			t.Fatalf("seeding token: %v", err)
		}
	}

	favs := newTestStore(t)
	cache := tu.NewMemoryCache()
	notices := NewNotices()
	browser := catalog.NewBrowser(mock, cache, nil)
	engine := flows.NewEngine(mock, cache, notices, nil)

	return NewModel(context.Background(), mock, browser, engine, session.NewGuard(store), favs, notices)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func sampleBooks() []models.Book {
	return []models.Book{
		{ID: "b1", Title: "Gitanjali", Author: "Tagore", Available: 2, Qty: 3, Categories: []string{"Poetry"}},
		{ID: "b2", Title: "Gora", Author: "Tagore", Available: 0, Qty: 1, Categories: []string{"Fiction"}},
	}
}

func TestModel(t *testing.T) {
	t.Run("Admin Entry Redirects To Login Before Any Remote Call", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, false)

		updated, cmd := m.Update(keyMsg("3"))
		m = updated.(*Model)

		if m.view != LoginView {
			t.Errorf("expected LoginView, got %v", m.view)
		}
		if cmd != nil {
			t.Error("no fetch may be issued while unauthenticated")
		}
		if mock.CallCount("Books") != 0 {
			t.Error("guard must run before any remote call")
		}
		if m.returnTo != ManageView {
			t.Errorf("login should return to the requested view, got %v", m.returnTo)
		}
	})

	t.Run("Authenticated Admin Entry Fetches", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, true)

		updated, cmd := m.Update(keyMsg("4"))
		m = updated.(*Model)

		if m.view != RecordsView {
			t.Errorf("expected RecordsView, got %v", m.view)
		}
		if cmd == nil {
			t.Fatal("expected a records fetch command")
		}
		if _, ok := cmd().(recordsFetchedMsg); !ok {
			t.Error("command should yield a records message")
		}
	})

	t.Run("Login Success Navigates To Target", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, false)
		m.view = LoginView
		m.returnTo = ManageView

		updated, cmd := m.Update(loginResultMsg{resp: &models.LoginResponse{Token: "tok"}})
		m = updated.(*Model)

		if m.view != ManageView {
			t.Errorf("expected ManageView after login, got %v", m.view)
		}
		if cmd == nil {
			t.Error("expected an inventory fetch after login")
		}
		if m.password.Value() != "" {
			t.Error("password input should be cleared")
		}
	})

	t.Run("Stale Responses Are Dropped", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, false)
		m.seq = 3

		updated, _ := m.Update(booksFetchedMsg{seq: 1, books: sampleBooks()})
		m = updated.(*Model)

		if m.books != nil {
			t.Error("a response issued under an old sequence must be ignored")
		}
	})

	t.Run("Fetched Books Build The List And Vocabulary", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, false)

		updated, _ := m.Update(booksFetchedMsg{books: sampleBooks()})
		m = updated.(*Model)

		if !m.listReady {
			t.Fatal("list should be ready after the fetch lands")
		}
		if len(m.bookList.Items()) != 2 {
			t.Errorf("expected 2 items, got %d", len(m.bookList.Items()))
		}
		want := []string{"all", "Fiction", "Poetry"}
		if len(m.categories) != len(want) {
			t.Fatalf("categories = %v, want %v", m.categories, want)
		}
		for i, c := range want {
			if m.categories[i] != c {
				t.Errorf("categories[%d] = %q, want %q", i, m.categories[i], c)
			}
		}
	})

	t.Run("Category Cycle Narrows The List", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, false)
		updated, _ := m.Update(booksFetchedMsg{books: sampleBooks()})
		m = updated.(*Model)

		updated, _ = m.Update(keyMsg("c"))
		m = updated.(*Model)

		if m.facets.Category != "Fiction" {
			t.Errorf("expected first cycle past the sentinel, got %q", m.facets.Category)
		}
		if len(m.bookList.Items()) != 1 {
			t.Errorf("expected 1 item after narrowing, got %d", len(m.bookList.Items()))
		}
	})

	t.Run("Liked View Shows The Liked Subset", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, false)
		updated, _ := m.Update(booksFetchedMsg{books: sampleBooks()})
		m = updated.(*Model)
		m.favorites.Toggle("b2")

		updated, _ = m.Update(keyMsg("2"))
		m = updated.(*Model)

		if m.view != LikedView {
			t.Fatalf("expected LikedView, got %v", m.view)
		}
		items := m.bookList.Items()
		if len(items) != 1 {
			t.Fatalf("expected the single liked book, got %d items", len(items))
		}
		if items[0].(bookItem).book.ID != "b2" {
			t.Errorf("wrong book in liked view: %+v", items[0])
		}
	})

	t.Run("Detail Not Found Renders A Dedicated State", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, false)
		m.view = DetailView

		updated, _ := m.Update(bookFetchedMsg{missing: true})
		m = updated.(*Model)

		if !strings.Contains(m.View(), "no longer in the catalog") {
			t.Error("missing book should render the not-found state")
		}
	})

	t.Run("Borrow Is Disabled At Zero Available", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, true)
		m.view = DetailView
		m.mountCard(models.Book{ID: "b2", Title: "Gora", Available: 0})
		defer m.unmountCard()

		_, cmd := m.Update(keyMsg("b"))
		if cmd != nil {
			t.Error("borrow must be inert when nothing is available")
		}
		if mock.CallCount("BorrowBook") != 0 {
			t.Error("no borrow request may be issued for an out-of-stock book")
		}
	})

	t.Run("Borrow Requires A Session", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, false)
		m.view = DetailView
		m.mountCard(models.Book{ID: "b1", Title: "Gitanjali", Available: 1})
		defer m.unmountCard()

		updated, _ := m.Update(keyMsg("b"))
		m = updated.(*Model)

		if m.view != LoginView {
			t.Errorf("expected detour to LoginView, got %v", m.view)
		}
		if mock.CallCount("BorrowBook") != 0 {
			t.Error("guard must run before the borrow request")
		}
	})

	t.Run("Delete Needs Confirmation", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, true)
		m.view = ManageView
		m.adminBooks = sampleBooks()
		m.rebuildAdminList()

		updated, _ := m.Update(keyMsg("x"))
		m = updated.(*Model)
		if m.view != ConfirmDeleteView || m.pending == nil {
			t.Fatal("delete should park on the confirmation view")
		}

		updated, _ = m.Update(keyMsg("n"))
		m = updated.(*Model)
		if m.view != ManageView || m.pending != nil {
			t.Error("declining should return without a pending deletion")
		}
		if mock.CallCount("DeleteBook") != 0 {
			t.Error("declined delete must not reach the service")
		}
	})

	t.Run("Confirmed Delete Calls Through", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, true)
		m.view = ManageView
		m.adminBooks = sampleBooks()
		m.rebuildAdminList()

		updated, _ := m.Update(keyMsg("x"))
		m = updated.(*Model)
		updated, cmd := m.Update(keyMsg("y"))
		m = updated.(*Model)

		if cmd == nil {
			t.Fatal("expected a delete command")
		}
		if _, ok := cmd().(mutationDoneMsg); !ok {
			t.Error("delete command should complete with a mutation message")
		}
		if mock.CallCount("DeleteBook") != 1 {
			t.Errorf("expected exactly one delete call, got %d", mock.CallCount("DeleteBook"))
		}
		if m.view != ManageView {
			t.Errorf("expected return to ManageView, got %v", m.view)
		}
	})

	t.Run("Mutation Completion Refetches The Current View", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, true)
		m.view = RecordsView

		_, cmd := m.Update(mutationDoneMsg{})
		if cmd == nil {
			t.Fatal("expected a refetch command")
		}
		if _, ok := cmd().(recordsFetchedMsg); !ok {
			t.Error("refetch should target the record list")
		}
	})

	t.Run("Notices Surface In The Status Line", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		m := newTestModel(t, mock, false)
		updated, _ := m.Update(booksFetchedMsg{books: sampleBooks()})
		m = updated.(*Model)

		updated, _ = m.Update(noticeMsg(flows.Notice{Success: true, Title: "Book deleted", Detail: "done"}))
		m = updated.(*Model)

		if !strings.Contains(m.View(), "Book deleted") {
			t.Error("notice should render in the active view")
		}
	})
}

func TestBookItem(t *testing.T) {
	t.Run("Description Carries The Year As Written", func(t *testing.T) {
		item := bookItem{book: models.Book{Author: "Tagore", Year: "c. 1910", Available: 2}}

		desc := item.Description()
		if !strings.Contains(desc, "c. 1910") {
			t.Errorf("expected the year verbatim in %q", desc)
		}
	})

	t.Run("Omits An Unset Year", func(t *testing.T) {
		item := bookItem{book: models.Book{Author: "Tagore", Available: 2}}

		if strings.Contains(item.Description(), "•  •") {
			t.Errorf("unset year should not leave an empty segment: %q", item.Description())
		}
	})
}
