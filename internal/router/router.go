// Package router wires the HTTP routes of the API onto an Echo
// instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eabrosimov/fstr-pereval-api/internal/handler"
)

// RegisterRoutes registers the health check and the /SubmitData
// endpoint group.  The optional middleware (response cache, rate
// limiting) is applied to the group by the caller before registration
// via the mw variadic.
func RegisterRoutes(e *echo.Echo, h *handler.SubmitDataHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	g := e.Group("/SubmitData", mw...)
	g.POST("", h.Submit)
	g.GET("", h.GetByID)
	g.PATCH("", h.Update)
	g.GET("/:user_email", h.ListByEmail)
}
