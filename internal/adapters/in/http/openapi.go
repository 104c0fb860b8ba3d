package http

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"parcellocker/internal/core/application/usecases/commands"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// SwaggerInstance is the swag registry name the /swagger UI reads from.
const SwaggerInstance = "parcellocker"

var registerSwagger sync.Once

type swaggerDocument string

func (d swaggerDocument) ReadDoc() string { return string(d) }

// publishDocument makes doc readable by the swagger UI. The first document
// published wins; swag refuses a second registration under one name.
func publishDocument(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	registerSwagger.Do(func() {
		swag.Register(SwaggerInstance, swaggerDocument(raw))
	})
	return nil
}

// ValidateRequests checks every request that matches an operation in doc
// against its parameters and body before a handler runs. Requests outside
// the document pass through so echo can answer 404 or 405 itself.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				var routeErr *routers.RouteError
				if errors.As(err, &routeErr) {
					return next(c)
				}
				return err
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Kind:    commands.KindValidation,
					Message: validationMessage(err),
				})
			}

			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return "invalid request"
	}
	switch {
	case reqErr.Parameter != nil:
		return fmt.Sprintf("invalid %s parameter %q", reqErr.Parameter.In, reqErr.Parameter.Name)
	case reqErr.RequestBody != nil:
		return "invalid request body"
	default:
		return reqErr.Reason
	}
}
