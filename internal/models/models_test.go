package models

import (
	"testing"
	"time"
)

func TestBook(t *testing.T) {
	t.Run("InStock", func(t *testing.T) {
		if (Book{Qty: 5, Available: 0}).InStock() {
			t.Error("book with zero available copies should be out of stock")
		}
		if !(Book{Qty: 5, Available: 1}).InStock() {
			t.Error("book with an available copy should be in stock")
		}
	})

	t.Run("PrimaryCategory", func(t *testing.T) {
		tc := []struct {
			name       string
			categories []string
			want       string
		}{
			{name: "first category wins", categories: []string{"Poetry", "Classics"}, want: "Poetry"},
			{name: "no categories", categories: nil, want: "General"},
			{name: "empty first category", categories: []string{""}, want: "General"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				got := Book{Categories: tt.categories}.PrimaryCategory()
				if got != tt.want {
					t.Errorf("PrimaryCategory() = %v, want %v", got, tt.want)
				}
			})
		}
	})
}

func TestRecordStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tc := []struct {
		name   string
		record BorrowRecord
		want   Status
	}{
		{
			name:   "returned wins over past due date",
			record: BorrowRecord{Returned: true, ReturnDate: "2025-01-01"},
			want:   StatusReturned,
		},
		{
			name:   "past due date is overdue",
			record: BorrowRecord{ReturnDate: "2025-06-01"},
			want:   StatusOverdue,
		},
		{
			name:   "future due date is borrowed",
			record: BorrowRecord{ReturnDate: "2025-07-01"},
			want:   StatusBorrowed,
		},
		{
			name:   "unparseable due date is borrowed",
			record: BorrowRecord{ReturnDate: "not-a-date"},
			want:   StatusBorrowed,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := RecordStatus(tt.record, now)
			if got != tt.want {
				t.Errorf("RecordStatus() = %v, want %v", got, tt.want)
			}
			wantOverdue := tt.want == StatusOverdue
			if tt.record.Overdue(now) != wantOverdue {
				t.Errorf("Overdue() = %v, want %v", tt.record.Overdue(now), wantOverdue)
			}
		})
	}

	t.Run("String", func(t *testing.T) {
		if StatusReturned.String() != "Returned" || StatusOverdue.String() != "Overdue" || StatusBorrowed.String() != "Borrowed" {
			t.Error("status strings should match display labels")
		}
	})
}

func TestParseCategories(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "basic split", input: "Poetry, Classics", want: []string{"Poetry", "Classics"}},
		{name: "extra whitespace", input: "  Poetry ,  Classics  ", want: []string{"Poetry", "Classics"}},
		{name: "empty segments dropped", input: "Poetry,,Classics,", want: []string{"Poetry", "Classics"}},
		{name: "empty input", input: "", want: nil},
		{name: "only separators", input: " , , ", want: nil},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCategories(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseCategories(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseCategories(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
