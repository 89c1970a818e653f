// Package textutil provides text processing utilities shared by the query,
// matching, and categorization stages.
//
// The tokenization process lowercases text, splits on non-alphanumeric
// characters, and filters tokens below a caller-chosen length.
package textutil
