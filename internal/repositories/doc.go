// Package repositories provides the device-local persistence layer.
//
// The only table is the query cache: payloads fetched from the catalog
// service keyed by query name, served until a mutation invalidates the
// key. It exists for snappy navigation between views, not as an offline
// copy; the server stays the source of truth and every invalidation
// forces a refetch.
package repositories
