package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fulfillment/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

// RequestValidator checks API requests against the OpenAPI document before
// they reach a handler. Paths outside the document pass through untouched.
func RequestValidator(swagger *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(swagger)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
			}

			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return "invalid parameter " + reqErr.Parameter.Name + ": " + reqErr.Reason
		}
		if reqErr.RequestBody != nil && reqErr.Err != nil {
			return "invalid request body: " + reqErr.Err.Error()
		}
	}
	return err.Error()
}

// RequestMetrics records http_requests_total and http_request_duration_seconds
// per route template.
func RequestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			handler := c.Path()
			method := c.Request().Method
			metrics.HTTPRequestDuration.WithLabelValues(handler, method).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(handler, method, strconv.Itoa(c.Response().Status)).Inc()
			return nil
		}
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(req.Context(), level, "http request",
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.Int("status", status),
				slog.Duration("latency", time.Since(start)),
				slog.String("tenant_id", req.Header.Get("X-Tenant-ID")))
			return nil
		}
	}
}
