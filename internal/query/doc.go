// Package query validates raw search text and extracts movie/show references
// from it.
//
// Normalize is the pipeline's single source of user-facing validation errors.
// ExtractMovieRefs is a pure ordered-pattern scan with no failure mode beyond
// an empty result.
package query
