// Package selection turns seat clicks into grouped-by-ticket selection
// lines with computed pricing, enforces the selection limit, drives the
// hold countdown and absorbs authoritative status corrections.
package selection

import "errors"

// ErrUnknownSeat is returned when a clicked seat id is not part of the
// loaded layout.  Handlers should translate this into a 404 response.
var ErrUnknownSeat = errors.New("unknown seat")

// ErrNoTicket is returned when the clicked seat has no ticket attached
// and therefore can never be sold.  No state is changed.
var ErrNoTicket = errors.New("seat has no ticket")

// ErrSeatUnavailable is returned when the clicked seat is booked,
// disabled, locked, or held by another viewer.  No state is changed.
var ErrSeatUnavailable = errors.New("seat unavailable")

// ErrSelectionLimit is returned when the selection already holds the
// configured maximum number of seats.  No state is changed.
var ErrSelectionLimit = errors.New("selection limit reached")
