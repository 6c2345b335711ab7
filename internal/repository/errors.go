// Package repository defines the persistence layer for venue layouts and
// per-event seat state, plus sentinel error values that allow handlers
// to distinguish failure scenarios without inspecting SQL errors.
package repository

import "errors"

// ErrLayoutNotFound is returned when the requested layout id does not
// exist. Handlers should translate this into an HTTP 404 response.
var ErrLayoutNotFound = errors.New("layout not found")

// ErrEventNotFound is returned when the requested event id has no seat
// state for the layout. Handlers should translate this into 404.
var ErrEventNotFound = errors.New("event not found")
