package ui

import (
	"github.com/akasheyy/navajuvala-frontend/internal/favorites"
	"github.com/akasheyy/navajuvala-frontend/internal/flows"
	"github.com/akasheyy/navajuvala-frontend/internal/models"
)

// Fetch messages carry the navigation sequence they were issued under so
// the model can drop responses for views the user already left.

type booksFetchedMsg struct {
	seq   int
	admin bool
	books []models.Book
	err   error
}

type bookFetchedMsg struct {
	seq     int
	book    *models.Book
	missing bool
	err     error
}

type recordsFetchedMsg struct {
	seq     int
	records []models.BorrowRecord
	err     error
}

type statsFetchedMsg struct {
	seq   int
	stats *models.DashboardStats
	err   error
}

type loginResultMsg struct {
	resp *models.LoginResponse
	err  error
}

// mutationDoneMsg reports a completed flows engine call. The user-facing
// outcome travels separately as a [noticeMsg]; this one only drives the
// refetch of whichever list the mutation touched.
type mutationDoneMsg struct {
	err error
}

type noticeMsg flows.Notice

type favoritesChangedMsg favorites.Change
