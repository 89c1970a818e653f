// Package tmdb provides the movie metadata lookups behind theme resolution.
//
// The Searcher interface is the seam for tests; the concrete Client talks to
// The Movie Database's multi-search endpoint and resolves genre IDs to names
// via a memoized genre table fetch.
package tmdb
