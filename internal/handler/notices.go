package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hessamz/seatmap-session/internal/session"
)

// Notices handles GET /v1/sessions/:id/notices and returns the current
// notice board: the running selection toast, any limit/expiry toasts and
// blocking conflict dialogs awaiting dismissal.
func (h *SessionHandler) Notices(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{"items": s.Board().List()})
}

// DismissNotice handles POST /v1/sessions/:id/notices/:noticeId/dismiss.
// Blocking notices require this explicit acknowledgement.
func (h *SessionHandler) DismissNotice(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	if err := s.Board().Dismiss(c.Param("noticeId")); err != nil {
		if errors.Is(err, session.ErrNoticeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notice not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to dismiss notice"})
	}
	return c.NoContent(http.StatusNoContent)
}
