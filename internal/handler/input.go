package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// pointerEvent is one raw input event from the client.  Events arrive in
// batches and are applied in order, which is what lets the gesture state
// machine see pointer-count transitions exactly as they happened.
type pointerEvent struct {
	Type      string  `json:"type"` // down, move, up, wheel, hover, hover_end
	PointerID int     `json:"pointer_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	DeltaY    float64 `json:"delta_y,omitempty"`
	SeatID    uint64  `json:"seat_id,omitempty"`
}

type pointerRequest struct {
	Events []pointerEvent `json:"events"`
}

// Pointer handles POST /v1/sessions/:id/pointer.  It feeds the event
// batch through the viewport engine and returns the resulting view plus
// any tooltip that should be visible.
func (h *SessionHandler) Pointer(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var body pointerRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	for _, ev := range body.Events {
		switch ev.Type {
		case "down":
			s.PointerDown(ev.PointerID, ev.X, ev.Y)
		case "move":
			s.PointerMove(ev.PointerID, ev.X, ev.Y)
		case "up":
			s.PointerUp(ev.PointerID)
		case "wheel":
			s.Wheel(ev.X, ev.Y, ev.DeltaY)
		case "hover":
			s.HoverSeat(ev.SeatID, ev.X, ev.Y)
		case "hover_end":
			s.HoverEnd()
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown event type: " + ev.Type})
		}
	}

	resp := echo.Map{"view": s.Snapshot().View}
	if seat, x, y, visible := s.Tooltip(); visible {
		resp["tooltip"] = echo.Map{"seat": seat, "x": x, "y": y}
	}
	return c.JSON(http.StatusOK, resp)
}

// viewRequest is the body of POST /v1/sessions/:id/view.
type viewRequest struct {
	Action    string `json:"action"` // zoom_in, zoom_out, reset, goto_section
	SectionID uint64 `json:"section_id,omitempty"`
}

// View handles POST /v1/sessions/:id/view: the zoom buttons, the
// "go to section" chips and the reset control.  All of them animate.
func (h *SessionHandler) View(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var body viewRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	switch body.Action {
	case "zoom_in":
		s.ZoomIn()
	case "zoom_out":
		s.ZoomOut()
	case "reset":
		s.ResetView()
	case "goto_section":
		if body.SectionID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "section_id is required"})
		}
		if err := s.GoToSection(body.SectionID); err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "section not found: " + strconv.FormatUint(body.SectionID, 10)})
		}
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown action: " + body.Action})
	}
	return c.JSON(http.StatusOK, echo.Map{"view": s.Snapshot().View})
}
