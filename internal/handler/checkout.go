package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hessamz/seatmap-session/internal/conflict"
	"github.com/hessamz/seatmap-session/internal/model"
	"github.com/hessamz/seatmap-session/internal/queue"
)

// checkoutRequest is the body of POST /v1/sessions/:id/checkout.  The
// payment flow itself lives outside this service; callers report its
// outcome here so the engine state can follow.
type checkoutRequest struct {
	Result        string   `json:"result"` // "success" or "conflict"
	FailedSeatIDs []uint64 `json:"failed_seat_ids,omitempty"`
}

// Checkout handles POST /v1/sessions/:id/checkout.
//
// On success the booked statuses are persisted first, then every
// selected seat is marked booked in the session (the viewer's own
// action, never a conflict notice) and a booking.confirmed event is
// published for fan-out to other viewers.  A failed persist leaves the
// selection untouched so the checkout can be retried.
// On a seat-conflict failure the reported seat ids are routed
// through the authoritative correction path and a blocking notice names
// the seats that were lost, before the caller is allowed to retry with
// the rest.
func (h *SessionHandler) Checkout(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var body checkoutRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	switch body.Result {
	case "success":
		ids, labels, total := s.SelectionSummary()
		if len(ids) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no seats selected"})
		}
		ctx := c.Request().Context()
		// Durable write first.  If it fails the selection is still
		// intact and the caller can retry the checkout.
		if err := h.EventSeatRepo.BulkUpdateStatus(ctx, s.EventID, ids, string(model.StatusBooked)); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to persist booking"})
		}
		s.CheckoutSuccess()
		// Publish failures must not undo a booking the viewer already paid for.
		_ = h.publishBooking(c, queue.BookingConfirmedEvent{
			SessionID:       s.ID,
			ViewerID:        s.ViewerID,
			LayoutID:        s.LayoutID,
			EventID:         s.EventID,
			SeatIDs:         ids,
			SeatLabels:      labels,
			TotalFinalCents: total,
			ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
		})
		return c.JSON(http.StatusOK, echo.Map{
			"booked_seat_ids": ids,
			"seats":           labels,
			"total_final":     total,
		})

	case "conflict":
		if len(body.FailedSeatIDs) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed_seat_ids is required"})
		}
		lost := s.ApplyStatusPush(body.FailedSeatIDs, model.StatusBooked)
		if len(lost) > 0 {
			s.Board().Publish(conflict.LostSeatsNotice(lost, model.StatusBooked))
		}
		return c.JSON(http.StatusConflict, echo.Map{
			"removed": lost,
			"state":   s.Snapshot(),
		})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "result must be success or conflict"})
}
