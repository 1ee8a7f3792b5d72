// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the library catalog:
//  1. [BrowseView] : Search and filter the public catalog
//  2. [DetailView] : Inspect a single book, toggle its liked state, borrow it
//  3. [LikedView] : Browse the locally liked subset
//  4. [LoginView] : Admin credential entry
//  5. [ManageView] : Admin inventory list with delete confirmation
//  6. [RecordsView] : Borrow-record ledger with derived status badges
//  7. [StatsView] : Dashboard counters
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Favorites changes and mutation notifications flow through channels drained by
// repeating commands, keeping remote work off the render loop. Every fetch is
// tagged with the navigation sequence so responses arriving after the user has
// moved on are dropped.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
