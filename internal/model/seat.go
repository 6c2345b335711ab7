package model

// SeatStatus enumerates every state a seat can be in from the point of
// view of one browsing session.  The lowercase values double as the wire
// representation used by the layout endpoint and the status push channel.
type SeatStatus string

const (
	StatusAvailable SeatStatus = "available" // free for this viewer to select
	StatusSelected  SeatStatus = "selected"  // part of this viewer's current selection
	StatusHold      SeatStatus = "hold"      // temporarily claimed by another viewer
	StatusLocked    SeatStatus = "locked"    // another viewer has it in an active checkout
	StatusBooked    SeatStatus = "booked"    // sold; permanently unavailable
	StatusDisabled  SeatStatus = "disabled"  // not sellable (broken, restricted view)
	StatusBlank     SeatStatus = "blank"     // layout filler; rendered as empty space
)

// Blocking reports whether the status makes a seat unselectable for the
// current viewer regardless of who triggered it.  A plain "hold" only
// blocks when it belongs to someone else, so callers must additionally
// compare Seat.HoldBy against the viewer id.
func (s SeatStatus) Blocking() bool {
	switch s {
	case StatusBooked, StatusDisabled, StatusLocked:
		return true
	}
	return false
}

// Ticket is the price class attached to a sellable seat.  Seats without a
// ticket are visible in the layout but can never be selected.
//
// Fields:
//  ID         – ticket type identifier, the grouping key for selection lines.
//  Name       – display name, e.g. "Gold" or "Balcony".
//  PriceCents – base price per seat in cents.
type Ticket struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	PriceCents uint32 `json:"price"`
}

// Seat is a single selectable position in the venue.  Seats are created
// once when the layout is loaded and afterwards replaced (never edited in
// place) by the layout store so renderers can rely on reference equality.
//
// Fields:
//  ID     – unique id across the whole layout.
//  Number – label shown to the buyer, e.g. "A5".
//  X, Y   – center position in canvas coordinates.
//  Radius – render radius in canvas units.
//  Status – current SeatStatus for this session.
//  HoldBy – viewer id owning an active hold, empty otherwise.
//  Ticket – price class, nil for decorative/unsellable seats.
type Seat struct {
	ID     uint64     `json:"id"`
	Number string     `json:"number"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Radius float64    `json:"radius"`
	Status SeatStatus `json:"status"`
	HoldBy string     `json:"hold_by,omitempty"`
	Ticket *Ticket    `json:"ticket"`
}

// Row is an ordered run of seats inside a section.
type Row struct {
	ID    uint64  `json:"id"`
	Title string  `json:"title"`
	Seats []*Seat `json:"seats"`
}

// Section groups rows and carries the geometry used for culling and for
// "go to section" view targets.
//
// Fields:
//  ID     – unique section id within the layout.
//  Name   – display name, e.g. "Orchestra Left".
//  X, Y   – top-left corner in canvas coordinates.
//  Width  – bounding width in canvas units.
//  Height – bounding height in canvas units.
//  Rows   – ordered rows, front to back.
type Section struct {
	ID     uint64  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rows   []*Row  `json:"rows"`
}

// Stage is the non-interactive anchor of the layout.  It participates in
// the default fit-view bounding box but accepts no input.
type Stage struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Shape  string  `json:"shape"`
	Curve  float64 `json:"curve,omitempty"`
	Name   string  `json:"name"`
}

// Layout is the full venue tree served by the layout endpoint: one stage
// plus the sections the viewer can interact with.
type Layout struct {
	Stage    Stage      `json:"stage"`
	Sections []*Section `json:"sections"`
}
