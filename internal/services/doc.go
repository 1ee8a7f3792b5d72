// Package services defines the [Catalog] interface for the remote
// community-library service and implements it over HTTP.
//
// # Catalog Interface
//
// [Catalog] is the sole boundary translating in-process calls into HTTP
// requests; every other component depends on the interface, never on the
// transport.
//
// # Authentication
//
// The client attaches `Authorization: Bearer <token>` whenever the
// configured [TokenStore] holds a credential, with no pre-check of
// validity; authorization failures surface per-request. A successful
// login persists the returned token through the same store. A 401 never
// clears the token; the session guard handles that on the next admin
// navigation.
//
// # Wire Shapes
//
// Reads return JSON decoded into [models] types. Login, borrow-record
// creation, and the record actions send JSON bodies; book create/update
// send multipart form data because they may carry a cover image, with
// categories marshaled as a JSON-array string field. Partial updates send
// exactly the fields the caller supplied ([BookPatch]): an explicitly-set
// empty string is transmitted, an untouched field is omitted.
//
// # Error Handling
//
// Every non-success status and every transport failure collapses into one
// coarse error naming the attempted action (e.g. "failed to fetch books"),
// wrapping [shared.ErrAPIRequest]. Server error bodies are not parsed.
// Single-entity reads map 404 to [shared.ErrBookNotFound] or
// [shared.ErrRecordNotFound] so callers can render a dedicated not-found
// state distinct from a request failure.
package services
