package http

import (
	"log/slog"
	"net/http"

	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the HTTP application: the API routes behind request
// validation plus /health, /metrics and the swagger UI.
func NewEcho(server *Server, logger *slog.Logger) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(swagger)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))
	e.Use(RequestMetrics())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", validator)
	servers.RegisterHandlers(api, server)

	return e, nil
}
