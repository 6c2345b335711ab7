package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hessamz/seatmap-session/internal/utils"
)

// ViewerHandler issues guest viewer tokens.  Logged-in buyers arrive
// with platform-issued tokens; everyone else needs a stable identity so
// seat holds and self-hold normalization can be attributed to them.
type ViewerHandler struct {
	JWTSecret string
	TTLMin    int
}

// NewViewerHandler constructs a ViewerHandler.
func NewViewerHandler(secret string, ttlMin int) *ViewerHandler {
	return &ViewerHandler{JWTSecret: secret, TTLMin: ttlMin}
}

// GuestToken handles POST /v1/viewers/guest.  It mints a fresh viewer id
// and returns a signed bearer token for it.
func (h *ViewerHandler) GuestToken(c echo.Context) error {
	viewerID := "guest-" + uuid.NewString()
	tok, err := utils.NewViewerToken(h.JWTSecret, viewerID, h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"viewer_id":  viewerID,
		"token":      tok.Token,
		"expires_at": tok.Exp,
	})
}

// getViewerID extracts the authenticated viewer id stored by the JWT
// middleware.
func getViewerID(c echo.Context) (string, bool) {
	v, ok := c.Get("viewer_id").(string)
	return v, ok && v != ""
}
