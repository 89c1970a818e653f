// Package catalog holds the book and profile domain types plus the SQLite
// store that supplies them to the discovery pipeline.
//
// The pipeline itself only sees the Provider interface; the store is the
// default implementation and keeps catalog indices stable by always ordering
// books by title.
package catalog
