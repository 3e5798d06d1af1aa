package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/interfaces/rest"
)

// Operations carrying this extension are passed through unchecked.
const unvalidatedExtension = "x-unvalidated"

// OpenAPIValidator checks each request against the operation it matches in
// doc and answers 400 VALIDATION_ERROR on mismatch. Requests that match no
// operation are passed through.
func OpenAPIValidator(doc *openapi3.T, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if skip, _ := route.Operation.Extensions[unvalidatedExtension].(bool); skip {
				next.ServeHTTP(w, r)
				return
			}

			err = openapi3filter.ValidateRequest(r.Context(), &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				rest.WriteError(w, application.NewValidationError(conciseValidationError(err)), logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

// conciseValidationError keeps the field and reason and drops the schema dump.
func conciseValidationError(err error) error {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		if ptr := schemaErr.JSONPointer(); len(ptr) > 0 {
			return fmt.Errorf("%s: %s", strings.Join(ptr, "."), schemaErr.Reason)
		}
		return errors.New(schemaErr.Reason)
	}

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) && reqErr.Reason != "" {
		return errors.New(reqErr.Reason)
	}

	return err
}
