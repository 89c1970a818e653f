// Package themes resolves extracted movie references to theme, trope, and
// mood tags.
//
// Resolution order per title: fresh cache entry, metadata lookup plus one
// summarization call, built-in table of well-known titles, empty bundle.
// Every produced bundle, including empty ones, is cached with a 24 hour TTL.
// All titles of one query resolve concurrently and join before enrichment.
package themes
