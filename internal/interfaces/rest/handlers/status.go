package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vouh/Spectre-payment-server/internal/api"
	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/domain"
	"github.com/vouh/Spectre-payment-server/internal/interfaces/rest"
)

// GetStatus never fails for an unresolved transaction; it reports pending.
func (h *PaymentHandler) GetStatus(
	ctx context.Context,
	request api.GetStatusRequestObject,
) (api.GetStatusResponseObject, error) {

	correlationID := strings.TrimSpace(request.Body.CorrelationId)
	if correlationID == "" {
		return mapStatusServiceErrorToAPIResponse(ctx, h.logger,
			application.NewValidationError(domain.NewMissingRequiredFieldError("correlationId")))
	}

	res, err := h.statusResolver.Resolve(ctx, correlationID)
	if err != nil {
		return mapStatusServiceErrorToAPIResponse(ctx, h.logger, err)
	}

	return api.GetStatus200JSONResponse(rest.ToAPIStatus(res)), nil
}

// GetResult returns the stored callback outcome without querying the provider.
func (h *PaymentHandler) GetResult(
	ctx context.Context,
	request api.GetResultRequestObject,
) (api.GetResultResponseObject, error) {

	rec, ok, err := h.statusResolver.Lookup(ctx, request.CorrelationId)
	if err != nil {
		rest.LogError(ctx, h.logger, err)
		statusCode, errorResponse := rest.BuildErrorResponse(err)
		return api.GetResultdefaultJSONResponse{StatusCode: statusCode, Body: errorResponse}, nil
	}

	return api.GetResult200JSONResponse{
		Success: true,
		Found:   ok,
		Data:    rest.ToAPIOutcome(rec),
	}, nil
}

func mapStatusServiceErrorToAPIResponse(ctx context.Context, logger *slog.Logger, err error) (api.GetStatusResponseObject, error) {
	rest.LogError(ctx, logger, err)
	statusCode, errorResponse := rest.BuildErrorResponse(err)

	switch statusCode {
	case http.StatusBadRequest:
		return api.GetStatus400JSONResponse(errorResponse), nil
	default:
		return api.GetStatusdefaultJSONResponse{StatusCode: statusCode, Body: errorResponse}, nil
	}
}
