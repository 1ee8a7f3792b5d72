// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// browseCommand lists the public catalog with optional search and category
// facets.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"ls"},
		Usage:   "Browse the public catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Search by title, author or ISBN",
			},
			&cli.StringFlag{
				Name:  "category",
				Usage: "Filter by category",
				Value: "all",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.BoolFlag{
				Name:  "share",
				Usage: "Print a shareable catalog URL for the active filters",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the shareable URL in the system browser",
			},
			&cli.BoolFlag{
				Name:  "categories",
				Usage: "List the category vocabulary instead of books",
			},
		},
		Action: r.Browse,
	}
}

// bookCommand shows a single book.
func bookCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "Show one book by id",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Book,
	}
}

// likedCommand manages the device-local liked set.
func likedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "liked",
		Usage: "Locally liked books",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List liked books",
				Action: r.LikedList,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
			},
			{
				Name:  "toggle",
				Usage: "Toggle a book's liked state",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.LikedToggle,
			},
		},
	}
}

// loginCommand starts an admin session.
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate as a library admin",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Usage:    "Admin email",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Usage:    "Admin password",
				Required: true,
			},
		},
		Action: r.Login,
	}
}

// logoutCommand clears the admin session.
func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Clear the stored admin session",
		Action: r.Logout,
	}
}

// booksCommand handles admin inventory operations.
func booksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "books",
		Usage: "Admin inventory operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the full inventory",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.BooksList,
			},
			{
				Name:  "add",
				Usage: "Add a book to the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "author", Required: true},
					&cli.StringFlag{Name: "isbn", Required: true},
					&cli.StringFlag{Name: "year", Required: true},
					&cli.IntFlag{Name: "qty", Usage: "Copies owned", Value: 1},
					&cli.StringFlag{
						Name:     "categories",
						Usage:    "Comma-separated category list",
						Required: true,
					},
					&cli.StringFlag{Name: "description", Required: true},
					&cli.StringFlag{
						Name:  "cover",
						Usage: "Path to a cover image (max 2 MiB)",
					},
				},
				Action: r.BooksAdd,
			},
			{
				Name:  "edit",
				Usage: "Update fields on a book; omitted flags stay untouched",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title"},
					&cli.StringFlag{Name: "author"},
					&cli.StringFlag{Name: "isbn"},
					&cli.StringFlag{Name: "year"},
					&cli.IntFlag{Name: "qty"},
					&cli.StringFlag{Name: "categories", Usage: "Comma-separated category list"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "cover", Usage: "Path to a new cover image"},
				},
				Action: r.BooksEdit,
			},
			{
				Name:  "delete",
				Usage: "Remove a book from the catalog",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Confirm the deletion",
					},
				},
				Action: r.BooksDelete,
			},
			{
				Name:  "borrow",
				Usage: "Decrement availability without a borrower record",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.BooksBorrow,
			},
			{
				Name:  "return",
				Usage: "Increment availability without a borrower record",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.BooksReturn,
			},
		},
	}
}

// recordsCommand handles the borrow-record ledger.
func recordsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "records",
		Usage: "Borrow-record ledger",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all borrow records with derived status",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.RecordsList,
			},
			{
				Name:  "show",
				Usage: "Show one record and the book it references",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.RecordsShow,
			},
			{
				Name:  "create",
				Usage: "Lend a book to a borrower",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "book-id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "borrower", Required: true},
					&cli.StringFlag{Name: "phone", Required: true},
					&cli.StringFlag{Name: "address"},
					&cli.StringFlag{Name: "borrow-date", Usage: "YYYY-MM-DD, defaults to today"},
					&cli.StringFlag{Name: "return-date", Usage: "YYYY-MM-DD, defaults to 14 days out"},
					&cli.StringFlag{Name: "notes"},
				},
				Action: r.RecordsCreate,
			},
			{
				Name:  "return",
				Usage: "Mark a record as returned",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.RecordsReturn,
			},
			{
				Name:  "delete",
				Usage: "Delete a record from the ledger",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Confirm the deletion",
					},
				},
				Action: r.RecordsDelete,
			},
		},
	}
}

// statsCommand prints the admin dashboard counters.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show dashboard statistics",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Stats,
	}
}

// exportCommand writes catalog data to local files.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export catalog data to local files",
		Commands: []*cli.Command{
			{
				Name:  "books",
				Usage: "Export the public catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: csv, md or txt",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file or directory path",
					},
				},
				Action: r.ExportBooks,
			},
			{
				Name:  "records",
				Usage: "Export the borrow-record ledger as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.ExportRecords,
			},
			{
				Name:  "all",
				Usage: "Snapshot the catalog to one file per category plus a manifest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: csv, md or txt",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: catalog_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent file writers",
					},
					&cli.BoolFlag{
						Name:  "records",
						Usage: "Include the borrow-record ledger (requires login)",
					},
				},
				Action: r.ExportAll,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "cache",
				Usage: "Initialize the query cache database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupCache,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive catalog browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive catalog browser",
		Action:  r.TUI,
	}
}
