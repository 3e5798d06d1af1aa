package handlers

import (
	"context"
	"errors"
	"io"

	"github.com/vouh/Spectre-payment-server/internal/api"
	"github.com/vouh/Spectre-payment-server/internal/domain"
)

const (
	webhookProcessed = "Callback processed successfully"
	webhookReceived  = "Callback received"
)

// ReceiveCallback always acknowledges. Failures are logged and counted.
func (h *PaymentHandler) ReceiveCallback(
	ctx context.Context,
	request api.ReceiveCallbackRequestObject,
) (api.ReceiveCallbackResponseObject, error) {

	body, err := io.ReadAll(request.Body)
	if err != nil {
		h.logger.Warn("webhook body unreadable", "error", err)
		return api.ReceiveCallback200JSONResponse{ResultDesc: webhookReceived}, nil
	}

	if _, err := h.callbackService.Handle(ctx, body); err != nil {
		if errors.Is(err, domain.ErrMalformedCallback) {
			h.logger.Warn("malformed webhook ignored", "error", err, "bytes", len(body))
		} else {
			h.logger.Error("webhook not stored", "error", err)
		}
		return api.ReceiveCallback200JSONResponse{ResultDesc: webhookReceived}, nil
	}

	return api.ReceiveCallback200JSONResponse{ResultDesc: webhookProcessed}, nil
}
