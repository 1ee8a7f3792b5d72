package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

func (m *Model) statusLine() string {
	if m.notice != nil {
		render := styles.ok.Render
		if !m.notice.Success {
			render = styles.err.Render
		}
		return render(fmt.Sprintf("%s: %s", m.notice.Title, m.notice.Detail))
	}
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}
	return ""
}

func (m *Model) renderBrowse() string {
	var b strings.Builder

	if m.searching || m.facets.Query != "" {
		b.WriteString(fmt.Sprintf("Search: %s\n", m.search.View()))
	}
	if m.facets.Category != "" {
		b.WriteString(styles.help.Render(fmt.Sprintf("category: %s", m.facets.Category)))
		b.WriteString("\n")
	}

	if m.listReady {
		b.WriteString(m.bookList.View())
	} else {
		b.WriteString("Loading catalog...")
	}

	if status := m.statusLine(); status != "" {
		b.WriteString("\n" + status)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.category, m.keys.like, m.keys.quit}
	b.WriteString("\n\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderDetail() string {
	if m.missing {
		msg := styles.warn.Render("This book is no longer in the catalog.")
		return fmt.Sprintf("%s\n\n%s", msg, m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}))
	}
	if m.card == nil {
		return "Loading book..."
	}

	book := m.card.Book()
	title := book.Title
	if m.card.Liked() {
		title = fmt.Sprintf("%s %s", title, styles.liked.Render("♥ liked"))
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(title) + "\n")
	b.WriteString(fmt.Sprintf("Author: %s\n", book.Author))
	if book.ISBN != "" {
		b.WriteString(fmt.Sprintf("ISBN: %s\n", book.ISBN))
	}
	if book.Year != "" {
		b.WriteString(fmt.Sprintf("Year: %s\n", book.Year))
	}
	if len(book.Categories) > 0 {
		b.WriteString(fmt.Sprintf("Categories: %s\n", strings.Join(book.Categories, ", ")))
	}

	if book.InStock() {
		b.WriteString(styles.ok.Render(fmt.Sprintf("%d of %d available", book.Available, book.Qty)) + "\n")
	} else {
		b.WriteString(styles.err.Render("Out of stock") + "\n")
	}

	if book.Description != "" {
		b.WriteString("\n" + book.Description + "\n")
	}

	if status := m.statusLine(); status != "" {
		b.WriteString("\n" + status)
	}

	helpKeys := []key.Binding{m.keys.like, m.keys.back, m.keys.quit}
	if book.InStock() {
		helpKeys = append([]key.Binding{m.keys.borrow}, helpKeys...)
	}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Admin Login") + "\n")
	b.WriteString(fmt.Sprintf("Email:    %s\n", m.email.View()))
	b.WriteString(fmt.Sprintf("Password: %s\n", m.password.View()))

	if m.loginErr != nil {
		b.WriteString("\n" + styles.err.Render("Login failed. Check your credentials."))
	}

	b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit}))
	return b.String()
}

func (m *Model) renderManage() string {
	var b strings.Builder
	if m.adminReady {
		b.WriteString(m.adminList.View())
	} else {
		b.WriteString("Loading inventory...")
	}

	if status := m.statusLine(); status != "" {
		b.WriteString("\n" + status)
	}

	helpKeys := []key.Binding{m.keys.del, m.keys.refresh, m.keys.back, m.keys.quit}
	b.WriteString("\n\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderRecords() string {
	var b strings.Builder
	if m.recordReady {
		b.WriteString(m.recordList.View())
	} else {
		b.WriteString("Loading records...")
	}

	if status := m.statusLine(); status != "" {
		b.WriteString("\n" + status)
	}

	helpKeys := []key.Binding{m.keys.returned, m.keys.del, m.keys.refresh, m.keys.back, m.keys.quit}
	b.WriteString("\n\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderStats() string {
	title := styles.title.Render("Dashboard")
	if m.stats == nil {
		return title + "\nLoading stats..."
	}

	body := fmt.Sprintf(
		"Books: %d\nUsers: %d\nBorrowed: %d\nAvailable: %d",
		m.stats.TotalBooks, m.stats.TotalUsers, m.stats.BorrowedBooks, m.stats.AvailableBooks,
	)

	return fmt.Sprintf("%s\n%s\n\n%s", title, body, m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}))
}

func (m *Model) renderConfirm() string {
	if m.pending == nil {
		return ""
	}

	entity := "book"
	if m.pending.record {
		entity = "borrow record"
	}
	title := styles.title.Render(fmt.Sprintf("Delete %s %q?", entity, m.pending.title))
	warn := styles.warn.Render("This cannot be undone.")

	return fmt.Sprintf("%s\n%s\n\n%s", title, warn, m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no}))
}
