// Package http is the inbound REST adapter. Requests under /api are checked
// against the OpenAPI document before they reach a handler.
package http

import (
	"errors"
	"net/http"
	"sync"

	"fulfillment/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var registerDocsOnce sync.Once

// NewRouter builds the echo instance serving the API, the health probe and the
// Swagger UI.
func NewRouter(server *Server) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	registerDocsOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			Version:          doc.Info.Version,
			Title:            doc.Info.Title,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(servers.RawSpec()),
		})
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", validator)
	servers.RegisterHandlers(api, server)

	return e, nil
}

// RequestValidator rejects requests whose parameters or body do not match doc.
// Requests for paths the document does not describe pass through untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusMethodNotAllowed, err.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}

			return next(c)
		}
	}, nil
}
