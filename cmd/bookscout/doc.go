// Command bookscout runs the book discovery pipeline: an HTTP server, a
// one-shot CLI search, and catalog/config utilities.
package main
