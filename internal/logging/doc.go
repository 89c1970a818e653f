// Package logging provides slog construction and shared attribute helpers.
//
// Console output is selected automatically when stdout is a terminal; JSON
// otherwise. Components derive child loggers via NewComponentLogger so every
// record carries a stable "component" field.
package logging
