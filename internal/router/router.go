package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/hessamz/seatmap-session/internal/handler"    // import the handlers that implement business logic
	"github.com/hessamz/seatmap-session/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the health check, the guest viewer token
// endpoint and the asset endpoint.
func RegisterRoutes(e *echo.Echo, v *handler.ViewerHandler, a *handler.AssetHandler) {
	// Load balancers and monitoring systems probe this endpoint.
	e.GET("/healthz", handler.Health)
	// Anonymous buyers obtain a viewer identity here before opening a session.
	e.POST("/v1/viewers/guest", v.GuestToken)
	// Seat glyphs and stage decorations; content is immutable per name.
	e.GET("/v1/assets/:name", a.GetAsset)
}

// RegisterLayout registers the public layout browse endpoint.  The extra
// middleware (Redis response cache and rate limiting, when configured)
// is applied only here because layout payloads are large, identical for
// every viewer and cheap to cache.
func RegisterLayout(e *echo.Echo, l *handler.LayoutHandler, extra ...echo.MiddlewareFunc) {
	e.GET("/v1/layouts/:layoutId/events/:eventId", l.GetLayout, extra...)
}

// RegisterSessions registers every session endpoint under JWT
// authentication.  All interaction with the selection and viewport
// engines flows through these routes.
func RegisterSessions(e *echo.Echo, s *handler.SessionHandler, jwtSecret string) {
	g := e.Group("/v1/sessions")
	g.Use(middleware.JWTAuth(jwtSecret))

	g.POST("", s.CreateSession)
	g.GET("/:id", s.GetSession)
	g.DELETE("/:id", s.DeleteSession)

	g.POST("/:id/click", s.Click)
	g.POST("/:id/pointer", s.Pointer)
	g.POST("/:id/view", s.View)
	g.POST("/:id/checkout", s.Checkout)

	g.GET("/:id/notices", s.Notices)
	g.POST("/:id/notices/:noticeId/dismiss", s.DismissNotice)
}
