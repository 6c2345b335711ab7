package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hessamz/seatmap-session/internal/queue"
	"github.com/hessamz/seatmap-session/internal/repository"
	"github.com/hessamz/seatmap-session/internal/selection"
	queue_publisher "github.com/hessamz/seatmap-session/internal/service"
	"github.com/hessamz/seatmap-session/internal/session"
	"github.com/hessamz/seatmap-session/internal/viewcache"
	"github.com/hessamz/seatmap-session/internal/viewport"
)

// EventSeatStore persists per-event seat status changes durably.
// Satisfied by *repository.EventSeatRepo.
type EventSeatStore interface {
	BulkUpdateStatus(ctx context.Context, eventID uint64, seatIDs []uint64, status string) error
}

// SessionHandler owns the session lifecycle plus every interaction
// endpoint: seat clicks, pointer gestures, view commands and checkout
// results.  All methods assume JWT authentication has been performed by
// middleware; sessions can only be touched by the viewer who opened
// them.
type SessionHandler struct {
	LayoutRepo    *repository.LayoutRepo
	EventSeatRepo EventSeatStore
	Sessions      *session.Manager
	Views         viewcache.Store
	SelectionCfg  selection.Config
	ViewportCfg   viewport.Config

	// publishBooking is swappable in tests; the default publishes to
	// the booking.confirmed queue.
	publishBooking func(c echo.Context, ev queue.BookingConfirmedEvent) error
}

// NewSessionHandler constructs a SessionHandler with the provided
// dependencies.  Repos and the manager must be non-nil.
func NewSessionHandler(layoutRepo *repository.LayoutRepo, eventSeatRepo EventSeatStore, sessions *session.Manager, views viewcache.Store, selCfg selection.Config, vpCfg viewport.Config) *SessionHandler {
	if layoutRepo == nil || eventSeatRepo == nil || sessions == nil {
		panic("nil dependency passed to NewSessionHandler")
	}
	return &SessionHandler{
		LayoutRepo:    layoutRepo,
		EventSeatRepo: eventSeatRepo,
		Sessions:      sessions,
		Views:         views,
		SelectionCfg:  selCfg,
		ViewportCfg:   vpCfg,
		publishBooking: func(c echo.Context, ev queue.BookingConfirmedEvent) error {
			return queue_publisher.PublishBookingConfirmed(c.Request().Context(), ev)
		},
	}
}

// createSessionRequest is the body of POST /v1/sessions.  Deep-link
// parameters are optional and consumed only at initialization.
type createSessionRequest struct {
	LayoutID       uint64  `json:"layout_id"`
	EventID        uint64  `json:"event_id"`
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
	SectionID      *uint64 `json:"section_id,omitempty"`
	SectionIndex   *int    `json:"section_index,omitempty"`
	RowTitle       string  `json:"row_title,omitempty"`
}

// CreateSession handles POST /v1/sessions.  It loads the layout, builds
// the session engines and computes the initial view: deep link target
// first, then any saved view for this viewer+layout, then the default
// fit.  Returns 201 with the full initial state.
func (h *SessionHandler) CreateSession(c echo.Context) error {
	viewerID, ok := getViewerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body createSessionRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.LayoutID == 0 || body.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "layout_id and event_id are required"})
	}
	if body.ViewportWidth <= 0 || body.ViewportHeight <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "viewport dimensions are required"})
	}

	ctx := c.Request().Context()
	l, err := h.LayoutRepo.FetchLayout(ctx, body.LayoutID, body.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) || errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var link *viewport.DeepLink
	if body.SectionID != nil || body.SectionIndex != nil {
		link = &viewport.DeepLink{
			SectionID:    body.SectionID,
			SectionIndex: body.SectionIndex,
			RowTitle:     body.RowTitle,
		}
	}

	s := session.New(uuid.NewString(), viewerID, body.LayoutID, body.EventID, l, h.SelectionCfg, h.ViewportCfg, h.Views)
	if err := s.InitializeView(ctx, body.ViewportWidth, body.ViewportHeight, link); err != nil {
		if errors.Is(err, viewport.ErrDeepLinkTarget) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "deep link target not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to initialize view"})
	}
	h.Sessions.Add(s)

	return c.JSON(http.StatusCreated, s.Snapshot())
}

// GetSession handles GET /v1/sessions/:id and returns the current
// render snapshot: tree, visible sections, lines, timer and view.
func (h *SessionHandler) GetSession(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, s.Snapshot())
}

// DeleteSession handles DELETE /v1/sessions/:id.  Unmounting releases
// the selection and drops the engine state; the saved view survives in
// the view cache for the rest of the browser session.
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	_ = h.Sessions.Remove(s.ID)
	return c.NoContent(http.StatusNoContent)
}

// clickRequest is the body of POST /v1/sessions/:id/click.
type clickRequest struct {
	SeatID uint64 `json:"seat_id"`
}

// Click handles POST /v1/sessions/:id/click.  Validation and limit
// rejections return with zero state change; a successful toggle returns
// the updated seat, lines and countdown.
func (h *SessionHandler) Click(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var body clickRequest
	if err := c.Bind(&body); err != nil || body.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
	}
	res, err := s.Click(body.SeatID)
	if err != nil {
		switch {
		case errors.Is(err, selection.ErrUnknownSeat):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		case errors.Is(err, selection.ErrNoTicket):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat has no ticket"})
		case errors.Is(err, selection.ErrSeatUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat unavailable"})
		case errors.Is(err, selection.ErrSelectionLimit):
			return c.JSON(http.StatusConflict, echo.Map{"error": "selection limit reached"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "click failed"})
	}
	return c.JSON(http.StatusOK, res)
}

// session resolves the :id parameter into a session owned by the
// authenticated viewer.  When it returns false a response has already
// been written.  Foreign sessions are reported as not found rather than
// forbidden so ids cannot be probed.
func (h *SessionHandler) session(c echo.Context) (*session.Session, bool) {
	viewerID, ok := getViewerID(c)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, false
	}
	s, err := h.Sessions.Get(c.Param("id"))
	if err != nil || s.ViewerID != viewerID {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		return nil, false
	}
	return s, true
}
