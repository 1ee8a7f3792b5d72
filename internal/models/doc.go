// Package models defines the wire-level entities of the community-library catalog service.
//
//   - [Book] : catalog entry with stock counts; `available` is server-computed
//     and treated as authoritative on every fetch
//   - [BorrowRecord] : ledger entry linking a borrower to a book for a date range
//   - [LoginResponse], [Admin] : admin login payloads
//   - [DashboardStats] : aggregate counts for the admin dashboard
//   - [BorrowDetail] : single borrow record joined with its book
//
// Dates cross the wire as YYYY-MM-DD strings; helpers parse them for
// client-side status derivation ([RecordStatus]). The client never writes
// computed fields back to the server.
package models
