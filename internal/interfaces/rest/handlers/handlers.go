package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vouh/Spectre-payment-server/internal/api"
	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/application/services"
	"github.com/vouh/Spectre-payment-server/internal/domain"
	"github.com/vouh/Spectre-payment-server/internal/interfaces/rest"
	"github.com/vouh/Spectre-payment-server/internal/interfaces/rest/middleware"
)

type PushInitiator interface {
	Initiate(ctx context.Context, cmd services.PushCommand) (*services.PushResult, error)
}

type StatusResolver interface {
	Resolve(ctx context.Context, correlationID string) (*services.StatusResult, error)
	Lookup(ctx context.Context, correlationID string) (*domain.OutcomeRecord, bool, error)
}

type CallbackHandler interface {
	Handle(ctx context.Context, raw []byte) (*domain.OutcomeRecord, error)
}

// PaymentHandler implements the OpenAPI StrictServerInterface
type PaymentHandler struct {
	pushService     PushInitiator
	statusResolver  StatusResolver
	callbackService CallbackHandler
	logger          *slog.Logger
}

func NewPaymentHandler(
	pushService PushInitiator,
	statusResolver StatusResolver,
	callbackService CallbackHandler,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		pushService:     pushService,
		statusResolver:  statusResolver,
		callbackService: callbackService,
		logger:          logger,
	}
}

// Ensure PaymentHandler implements StrictServerInterface
var _ api.StrictServerInterface = (*PaymentHandler)(nil)

// RegisterRoutes mounts every operation of the API document on mux, with
// request validation and a body cap, plus the document itself and /metrics.
// pushGuard wraps POST /push only; pass nil to leave it unguarded.
func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux, pushGuard func(http.Handler) http.Handler) error {
	doc, err := api.GetSwagger()
	if err != nil {
		return err
	}

	validate, err := middleware.OpenAPIValidator(doc, h.logger)
	if err != nil {
		return err
	}

	badRequest := func(w http.ResponseWriter, _ *http.Request, err error) {
		rest.WriteError(w, application.NewValidationError(err), h.logger)
	}

	strictHandler := api.NewStrictHandlerWithOptions(h, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc: badRequest,
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			rest.WriteError(w, err, h.logger)
		},
	})

	router := guardedMux{ServeMux: mux, guards: map[string]func(http.Handler) http.Handler{}}
	if pushGuard != nil {
		router.guards["POST /push"] = pushGuard
	}

	api.HandlerWithOptions(strictHandler, api.StdHTTPServerOptions{
		BaseRouter:       router,
		Middlewares:      []api.MiddlewareFunc{validate, rest.LimitBody},
		ErrorHandlerFunc: badRequest,
	})

	if err := api.RegisterDocsRoutes(mux); err != nil {
		return err
	}
	mux.Handle("GET /metrics", promhttp.Handler())

	return nil
}

func (h *PaymentHandler) GetHealth(context.Context, api.GetHealthRequestObject) (api.GetHealthResponseObject, error) {
	return api.GetHealth200JSONResponse{Status: "ok"}, nil
}

// guardedMux wraps selected patterns in their own middleware as the
// generated code registers them.
type guardedMux struct {
	*http.ServeMux
	guards map[string]func(http.Handler) http.Handler
}

func (m guardedMux) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	if guard, ok := m.guards[pattern]; ok {
		m.ServeMux.Handle(pattern, guard(http.HandlerFunc(handler)))
		return
	}
	m.ServeMux.HandleFunc(pattern, handler)
}
