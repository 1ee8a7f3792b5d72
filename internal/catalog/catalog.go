// package catalog computes the browsable view of the book list: the
// category vocabulary, the filtered subset for the active search/facet
// state, and the URL mirror of that state.
//
// Everything here is read-only over the model; mutations live in flows.
package catalog

import (
	"net/url"
	"sort"
	"strings"

	"github.com/akasheyy/navajuvala-frontend/internal/models"
)

// AllCategories is the sentinel facet value meaning "no category filter".
const AllCategories = "all"

// URL query parameter names for facet mirroring.
const (
	paramQuery    = "q"
	paramCategory = "cat"
)

// FacetState is the active search text and category filter. It is
// ephemeral per view but mirrored into the navigable URL so it survives
// reload and sharing.
type FacetState struct {
	Query    string
	Category string
}

// DefaultFacets returns the state used when the URL carries no parameters.
func DefaultFacets() FacetState {
	return FacetState{Query: "", Category: AllCategories}
}

// IsDefault reports whether the state equals the defaults.
func (f FacetState) IsDefault() bool {
	return f.Query == "" && (f.Category == "" || f.Category == AllCategories)
}

// Values mirrors the state into URL query parameters. Default values are
// omitted rather than written as literal defaults.
func (f FacetState) Values() url.Values {
	values := url.Values{}
	if f.Query != "" {
		values.Set(paramQuery, f.Query)
	}
	if f.Category != "" && f.Category != AllCategories {
		values.Set(paramCategory, f.Category)
	}
	return values
}

// FacetsFromValues seeds state from URL parameters; absent means default.
func FacetsFromValues(values url.Values) FacetState {
	state := DefaultFacets()
	if q := values.Get(paramQuery); q != "" {
		state.Query = q
	}
	if cat := values.Get(paramCategory); cat != "" {
		state.Category = cat
	}
	return state
}

// ShareURL builds the navigable URL for the state against a base page URL.
func (f FacetState) ShareURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.RawQuery = f.Values().Encode()
	return u.String(), nil
}

// Vocabulary computes the category vocabulary: the sorted set union of
// every book's categories. An empty book list yields an empty vocabulary.
func Vocabulary(books []models.Book) []string {
	seen := make(map[string]bool)
	var vocabulary []string
	for _, book := range books {
		for _, category := range book.Categories {
			if category == "" || seen[category] {
				continue
			}
			seen[category] = true
			vocabulary = append(vocabulary, category)
		}
	}
	sort.Strings(vocabulary)
	return vocabulary
}

// Matches reports whether a book satisfies both the free-text query and
// the category facet. The query matches case-insensitively against title
// and author and by plain substring against the ISBN; an empty query
// matches everything. The facet matches when it is the sentinel or the
// book's categories contain it exactly.
func Matches(book models.Book, state FacetState) bool {
	q := strings.ToLower(strings.TrimSpace(state.Query))

	matchesQuery := q == "" ||
		strings.Contains(strings.ToLower(book.Title), q) ||
		strings.Contains(strings.ToLower(book.Author), q) ||
		strings.Contains(book.ISBN, q)
	if !matchesQuery {
		return false
	}

	if state.Category == "" || state.Category == AllCategories {
		return true
	}
	for _, category := range book.Categories {
		if category == state.Category {
			return true
		}
	}
	return false
}

// Filter returns the books satisfying the state, preserving source order.
func Filter(books []models.Book, state FacetState) []models.Book {
	filtered := make([]models.Book, 0, len(books))
	for _, book := range books {
		if Matches(book, state) {
			filtered = append(filtered, book)
		}
	}
	return filtered
}
