package handler

import (
	"net/http"
	"os"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/hessamz/seatmap-session/internal/assets"
)

// AssetHandler serves the seat glyphs and stage decorations the map
// renders, memoized through an explicit cache so each file is read once.
type AssetHandler struct {
	Cache *assets.Cache
}

// NewAssetHandler constructs an AssetHandler over a cache.
func NewAssetHandler(cache *assets.Cache) *AssetHandler {
	if cache == nil {
		panic("nil cache passed to NewAssetHandler")
	}
	return &AssetHandler{Cache: cache}
}

// GetAsset handles GET /v1/assets/:name.
func (h *AssetHandler) GetAsset(c echo.Context) error {
	name := c.Param("name")
	data, err := h.Cache.Get(c.Request().Context(), name)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load asset"})
	}
	return c.Blob(http.StatusOK, contentTypeFor(name), data)
}

func contentTypeFor(name string) string {
	switch path.Ext(name) {
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return "application/octet-stream"
}
