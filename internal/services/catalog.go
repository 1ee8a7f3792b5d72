// HTTP implementation of [Catalog].
//
// Endpoint paths follow the catalog service's REST surface; the base URL
// comes from deployment configuration.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"golang.org/x/time/rate"
)

var _ Catalog = (*CatalogService)(nil)

// CatalogService implements [Catalog] against the HTTP service.
type CatalogService struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	limiter    *rate.Limiter
}

// NewCatalogService creates a catalog client for the given base URL.
// tokens may be nil for a purely public client. A non-positive requests
// per second disables rate limiting.
func NewCatalogService(baseURL string, client *http.Client, tokens TokenStore, rps float64) *CatalogService {
	if baseURL == "" {
		baseURL = "http://localhost:5000/api"
	}
	if client == nil {
		client = http.DefaultClient
	}

	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &CatalogService{
		baseURL:    baseURL,
		httpClient: client,
		tokens:     tokens,
		limiter:    limiter,
	}
}

// request describes one call to the catalog service.
type request struct {
	method      string
	endpoint    string
	action      string // coarse failure label, e.g. "failed to fetch books"
	body        io.Reader
	contentType string
	result      any
	notFound    error // returned for a 404 instead of the generic failure
}

// do performs the request, attaching the bearer token when one is stored.
// Transport failures and non-2xx statuses collapse into one error naming
// the attempted action; server error bodies are never parsed.
func (c *CatalogService) do(ctx context.Context, r request) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: %w", r.action, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.endpoint, r.body)
	if err != nil {
		return fmt.Errorf("%s: %w", r.action, err)
	}

	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	if c.tokens != nil {
		// Absent token means an unauthenticated request, not an error.
		if tok, err := c.tokens.Token(); err == nil && tok.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", r.action, shared.ErrAPIRequest)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && r.notFound != nil {
		return r.notFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: %w", r.action, shared.ErrAPIRequest)
	}

	if r.result != nil {
		if err := json.NewDecoder(resp.Body).Decode(r.result); err != nil {
			return fmt.Errorf("%s: %w", r.action, err)
		}
	}

	return nil
}

// jsonBody encodes v for a JSON request body.
func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

// Login authenticates the administrator and persists the returned token.
func (c *CatalogService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	body, err := jsonBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	var result models.LoginResponse
	err = c.do(ctx, request{
		method:      http.MethodPost,
		endpoint:    "/admin/login",
		action:      "login failed",
		body:        body,
		contentType: "application/json",
		result:      &result,
	})
	if err != nil {
		return nil, err
	}

	if c.tokens != nil {
		if err := c.tokens.Set(result.Token); err != nil {
			return nil, fmt.Errorf("failed to persist session token: %w", err)
		}
	}

	return &result, nil
}

// Books retrieves the full book list through the admin endpoint.
func (c *CatalogService) Books(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/admin/books",
		action:   "failed to fetch books",
		result:   &books,
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// Book retrieves a single book through the admin endpoint.
func (c *CatalogService) Book(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/admin/books/" + id,
		action:   "failed to fetch book",
		result:   &book,
		notFound: shared.ErrBookNotFound,
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// PublicBooks retrieves the book list without credentials.
func (c *CatalogService) PublicBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/books",
		action:   "failed to fetch books",
		result:   &books,
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// PublicBook retrieves a single book without credentials.
func (c *CatalogService) PublicBook(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/books/" + id,
		action:   "failed to fetch book",
		result:   &book,
		notFound: shared.ErrBookNotFound,
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook creates a book from a multipart form.
func (c *CatalogService) CreateBook(ctx context.Context, input BookInput) (*models.Book, error) {
	body, contentType, err := encodeBookForm(bookFormFields(input))
	if err != nil {
		return nil, err
	}

	var book models.Book
	err = c.do(ctx, request{
		method:      http.MethodPost,
		endpoint:    "/admin/books",
		action:      "failed to create book",
		body:        body,
		contentType: contentType,
		result:      &book,
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook applies a partial patch; only supplied fields enter the form.
func (c *CatalogService) UpdateBook(ctx context.Context, id string, patch BookPatch) (*models.Book, error) {
	body, contentType, err := encodeBookForm(patchFormFields(patch))
	if err != nil {
		return nil, err
	}

	var book models.Book
	err = c.do(ctx, request{
		method:      http.MethodPut,
		endpoint:    "/admin/books/" + id,
		action:      "failed to update book",
		body:        body,
		contentType: contentType,
		result:      &book,
		notFound:    shared.ErrBookNotFound,
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a book.
func (c *CatalogService) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		endpoint: "/admin/books/" + id,
		action:   "failed to delete book",
	})
}

// Stats retrieves aggregate counts for the admin dashboard.
func (c *CatalogService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/admin/stats",
		action:   "failed to fetch stats",
		result:   &stats,
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// BorrowBook decrements a book's available count (legacy operation).
func (c *CatalogService) BorrowBook(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method:   http.MethodPut,
		endpoint: "/admin/books/" + id + "/borrow",
		action:   "failed to borrow book",
		notFound: shared.ErrBookNotFound,
	})
}

// ReturnBook restores a book's available count (legacy operation).
func (c *CatalogService) ReturnBook(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method:   http.MethodPut,
		endpoint: "/admin/books/" + id + "/return",
		action:   "failed to return book",
		notFound: shared.ErrBookNotFound,
	})
}

// CreateBorrowRecord opens a borrow ledger entry against a book.
func (c *CatalogService) CreateBorrowRecord(ctx context.Context, bookID string, req models.BorrowRequest) (*models.BorrowRecord, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	var record models.BorrowRecord
	err = c.do(ctx, request{
		method:      http.MethodPost,
		endpoint:    "/admin/books/" + bookID + "/borrow",
		action:      "failed to create borrow record",
		body:        body,
		contentType: "application/json",
		result:      &record,
		notFound:    shared.ErrBookNotFound,
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// BorrowRecords retrieves all borrow ledger entries.
func (c *CatalogService) BorrowRecords(ctx context.Context) ([]models.BorrowRecord, error) {
	var records []models.BorrowRecord
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/admin/borrow-records",
		action:   "failed to fetch borrow records",
		result:   &records,
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// BorrowRecord retrieves one ledger entry joined with its book.
func (c *CatalogService) BorrowRecord(ctx context.Context, id string) (*models.BorrowDetail, error) {
	var detail models.BorrowDetail
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/admin/borrow-records/" + id,
		action:   "failed to fetch borrow record",
		result:   &detail,
		notFound: shared.ErrRecordNotFound,
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// ReturnBorrowRecord marks a ledger entry returned.
func (c *CatalogService) ReturnBorrowRecord(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method:   http.MethodPut,
		endpoint: "/admin/borrow-records/" + id + "/return",
		action:   "failed to mark as returned",
		notFound: shared.ErrRecordNotFound,
	})
}

// DeleteBorrowRecord removes a ledger entry.
func (c *CatalogService) DeleteBorrowRecord(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		endpoint: "/admin/borrow-records/" + id,
		action:   "failed to delete borrow record",
		notFound: shared.ErrRecordNotFound,
	})
}

// formField is one entry of a multipart book form.
type formField struct {
	name  string
	value string
	file  *CoverFile
}

// bookFormFields lays out a creation form; every scalar field is present.
func bookFormFields(input BookInput) []formField {
	fields := []formField{
		{name: "title", value: input.Title},
		{name: "author", value: input.Author},
		{name: "isbn", value: input.ISBN},
		{name: "year", value: input.Year},
		{name: "qty", value: strconv.Itoa(input.Qty)},
		{name: "description", value: input.Description},
	}
	fields = append(fields, categoriesField(input.Categories))
	if input.Cover != nil {
		fields = append(fields, formField{name: "cover", file: input.Cover})
	}
	return fields
}

// patchFormFields lays out an update form; nil pointers are omitted so
// untouched server state is never overwritten, while a pointer to the
// empty string clears the field.
func patchFormFields(patch BookPatch) []formField {
	var fields []formField
	appendString := func(name string, v *string) {
		if v != nil {
			fields = append(fields, formField{name: name, value: *v})
		}
	}

	appendString("title", patch.Title)
	appendString("author", patch.Author)
	appendString("isbn", patch.ISBN)
	appendString("year", patch.Year)
	if patch.Qty != nil {
		fields = append(fields, formField{name: "qty", value: strconv.Itoa(*patch.Qty)})
	}
	appendString("description", patch.Description)
	if patch.Categories != nil {
		fields = append(fields, categoriesField(patch.Categories))
	}
	if patch.Cover != nil {
		fields = append(fields, formField{name: "cover", file: patch.Cover})
	}
	return fields
}

// categoriesField marshals the category list as a JSON-array string, the
// shape the service expects inside the form.
func categoriesField(categories []string) formField {
	if categories == nil {
		categories = []string{}
	}
	data, _ := json.Marshal(categories)
	return formField{name: "categories", value: string(data)}
}

// encodeBookForm writes the fields into a multipart body.
func encodeBookForm(fields []formField) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, field := range fields {
		if field.file != nil {
			part, err := writer.CreateFormFile(field.name, field.file.Name)
			if err != nil {
				return nil, "", fmt.Errorf("failed to create form file: %w", err)
			}
			if _, err := part.Write(field.file.Data); err != nil {
				return nil, "", fmt.Errorf("failed to write cover data: %w", err)
			}
			continue
		}
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", field.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
