package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hessamz/seatmap-session/internal/layout"
	"github.com/hessamz/seatmap-session/internal/model"
	"github.com/hessamz/seatmap-session/internal/repository"
)

// LayoutHandler serves the raw venue tree for a layout+event pair so
// clients can preview a map before opening a session.
type LayoutHandler struct {
	LayoutRepo *repository.LayoutRepo
}

// NewLayoutHandler constructs a LayoutHandler.  The repo must be non-nil.
func NewLayoutHandler(repo *repository.LayoutRepo) *LayoutHandler {
	if repo == nil {
		panic("nil repository passed to NewLayoutHandler")
	}
	return &LayoutHandler{LayoutRepo: repo}
}

// GetLayout handles GET /v1/layouts/:layoutId/events/:eventId.  The tree
// is passed through the layout store once so geometry is coerced and any
// hold belonging to the requesting viewer is normalized to available.
func (h *LayoutHandler) GetLayout(c echo.Context) error {
	layoutID, err := strconv.ParseUint(c.Param("layoutId"), 10, 64)
	if err != nil || layoutID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid layout id"})
	}
	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	l, err := h.LayoutRepo.FetchLayout(c.Request().Context(), layoutID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) || errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	viewerID, _ := getViewerID(c)
	store := layout.New(l, viewerID)
	return c.JSON(http.StatusOK, model.Layout{
		Stage:    store.Stage(),
		Sections: store.Sections(),
	})
}
