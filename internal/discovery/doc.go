// Package discovery is the pipeline orchestrator: it runs a query through
// validation, movie-reference resolution, enrichment, matching, parsing, and
// categorization, applying the deterministic fallback for any generative
// stage that fails, and caches whole results for a short window.
package discovery
