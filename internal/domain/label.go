// Package domain contains the core data types for the document annotator.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (workspace, render, repo, service, handler).
package domain

// Label is a user-defined, colored category assignable to annotations.
// Value is both the identifier and the display text; it is not required to be
// unique. Color is any CSS color expression ("red", "#ffcc00", ...).
type Label struct {
	Value string `json:"value"`
	Color string `json:"color"`
}
