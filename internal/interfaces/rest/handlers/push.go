package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vouh/Spectre-payment-server/internal/api"
	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/application/services"
	"github.com/vouh/Spectre-payment-server/internal/domain"
	"github.com/vouh/Spectre-payment-server/internal/interfaces/rest"
)

const defaultPushMessage = "STK push sent successfully"

func (h *PaymentHandler) InitiatePush(
	ctx context.Context,
	request api.InitiatePushRequestObject,
) (api.InitiatePushResponseObject, error) {

	req := request.Body

	amount, err := req.Amount.Int64()
	if err != nil {
		return mapPushServiceErrorToAPIResponse(ctx, h.logger, application.NewValidationError(domain.NewInvalidAmountError(0)))
	}

	cmd := services.PushCommand{
		Phone:  req.Phone,
		Amount: amount,
	}
	if req.Reference != nil {
		cmd.Reference = *req.Reference
	}
	if req.Description != nil {
		cmd.Description = *req.Description
	}

	result, err := h.pushService.Initiate(ctx, cmd)
	if err != nil {
		return mapPushServiceErrorToAPIResponse(ctx, h.logger, err)
	}

	message := result.CustomerMessage
	if message == "" {
		message = defaultPushMessage
	}

	return api.InitiatePush200JSONResponse{
		Success:           true,
		CorrelationId:     result.CorrelationID,
		PeerCorrelationId: result.PeerCorrelationID,
		Message:           message,
	}, nil
}

func mapPushServiceErrorToAPIResponse(ctx context.Context, logger *slog.Logger, err error) (api.InitiatePushResponseObject, error) {
	rest.LogError(ctx, logger, err)
	statusCode, errorResponse := rest.BuildErrorResponse(err)

	switch statusCode {
	case http.StatusBadRequest:
		return api.InitiatePush400JSONResponse(errorResponse), nil
	default:
		return api.InitiatePushdefaultJSONResponse{StatusCode: statusCode, Body: errorResponse}, nil
	}
}
