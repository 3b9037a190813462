package http

import (
	"log/slog"
	"net/http"

	_ "dispatch/internal/generated/docs"
	"dispatch/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const dispatchPath = "/api/v1/dispatch"

// RouterOptions carries the optional parts of the router. Zero values disable them.
type RouterOptions struct {
	Logger   *slog.Logger
	Observer RequestObserver
	Metrics  http.Handler
}

// NewRouter builds the echo instance serving the dispatch API, health, metrics and swagger.
func NewRouter(si servers.ServerInterface, doc *openapi3.T, opts RouterOptions) (*echo.Echo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	if opts.Observer != nil {
		e.Use(Observability(opts.Observer))
	}
	e.Use(RequestLogger(logger.With("component", "http")))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderAccept},
	}))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, si)

	e.OPTIONS(dispatchPath, func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.Match(
		[]string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodDelete},
		dispatchPath,
		func(c echo.Context) error {
			return writeError(c, http.StatusMethodNotAllowed, "Method not allowed")
		},
	)

	return e, nil
}
