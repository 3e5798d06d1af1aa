package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vouh/Spectre-payment-server/internal/api"
	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/application/services"
	"github.com/vouh/Spectre-payment-server/internal/domain"
	"github.com/vouh/Spectre-payment-server/internal/interfaces/rest"
)

type mockPushService struct {
	initiateFn func(ctx context.Context, cmd services.PushCommand) (*services.PushResult, error)
}

func (m *mockPushService) Initiate(ctx context.Context, cmd services.PushCommand) (*services.PushResult, error) {
	return m.initiateFn(ctx, cmd)
}

type mockStatusResolver struct {
	resolveFn func(ctx context.Context, id string) (*services.StatusResult, error)
	lookupFn  func(ctx context.Context, id string) (*domain.OutcomeRecord, bool, error)
}

func (m *mockStatusResolver) Resolve(ctx context.Context, id string) (*services.StatusResult, error) {
	return m.resolveFn(ctx, id)
}

func (m *mockStatusResolver) Lookup(ctx context.Context, id string) (*domain.OutcomeRecord, bool, error) {
	return m.lookupFn(ctx, id)
}

type mockCallbackService struct {
	handleFn func(ctx context.Context, raw []byte) (*domain.OutcomeRecord, error)
}

func (m *mockCallbackService) Handle(ctx context.Context, raw []byte) (*domain.OutcomeRecord, error) {
	return m.handleFn(ctx, raw)
}

func newTestMux(t *testing.T, h *PaymentHandler) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	require.NoError(t, h.RegisterRoutes(mux, nil))
	return mux
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func do(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	return resp
}

// ============================================================================
// POST /push
// ============================================================================

func TestHandlePush_Success(t *testing.T) {
	var got services.PushCommand
	push := &mockPushService{
		initiateFn: func(_ context.Context, cmd services.PushCommand) (*services.PushResult, error) {
			got = cmd
			return &services.PushResult{
				CorrelationID:     "ws_CO_1",
				PeerCorrelationID: "29115-1",
				CustomerMessage:   "Success. Request accepted for processing",
			}, nil
		},
	}
	mux := newTestMux(t, NewPaymentHandler(push, nil, nil, discardLogger()))

	rr := do(t, mux, http.MethodPost, "/push", `{"phone":"0712345678","amount":50,"reference":"INV-1"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp api.PushResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ws_CO_1", resp.CorrelationId)
	assert.Equal(t, "29115-1", resp.PeerCorrelationId)
	assert.Equal(t, "Success. Request accepted for processing", resp.Message)

	assert.Equal(t, "0712345678", got.Phone)
	assert.EqualValues(t, 50, got.Amount)
	assert.Equal(t, "INV-1", got.Reference)
}

func TestHandlePush_AmountAsString(t *testing.T) {
	push := &mockPushService{
		initiateFn: func(_ context.Context, cmd services.PushCommand) (*services.PushResult, error) {
			assert.EqualValues(t, 75, cmd.Amount)
			return &services.PushResult{CorrelationID: "ws_CO_2"}, nil
		},
	}
	mux := newTestMux(t, NewPaymentHandler(push, nil, nil, discardLogger()))

	rr := do(t, mux, http.MethodPost, "/push", `{"phone":"0712345678","amount":"75"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandlePush_RejectsBadInputBeforeService(t *testing.T) {
	push := &mockPushService{
		initiateFn: func(context.Context, services.PushCommand) (*services.PushResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	mux := newTestMux(t, NewPaymentHandler(push, nil, nil, discardLogger()))

	cases := map[string]struct {
		body string
		code string
	}{
		"invalid json":       {`{"phone":`, application.ErrCodeValidation},
		"missing phone":      {`{"amount":50}`, application.ErrCodeValidation},
		"missing amount":     {`{"phone":"0712345678"}`, application.ErrCodeValidation},
		"fractional amount":  {`{"phone":"0712345678","amount":10.5}`, domain.ErrCodeInvalidAmount},
		"non numeric amount": {`{"phone":"0712345678","amount":"ten"}`, application.ErrCodeValidation},
		"amount as object":   {`{"phone":"0712345678","amount":{"value":5}}`, application.ErrCodeValidation},
		"phone as number":    {`{"phone":712345678,"amount":5}`, application.ErrCodeValidation},
		"oversized body":     {`{"phone":"0712345678","amount":5,"description":"` + strings.Repeat("x", rest.MaxBodyBytes) + `"}`, application.ErrCodeValidation},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rr := do(t, mux, http.MethodPost, "/push", tc.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tc.code, decodeError(t, rr).Error.Code)
		})
	}
}

func TestHandlePush_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"invalid phone", application.NewValidationError(domain.NewInvalidPhoneError("0812")), http.StatusBadRequest, domain.ErrCodeInvalidPhone, ""},
		{"rejected", application.NewInitiationRejectedError("Unable to lock subscriber"), http.StatusBadRequest, application.ErrCodeInitiationRejected, "Unable to lock subscriber"},
		{"auth", application.NewUpstreamAuthError(errBoom), http.StatusServiceUnavailable, application.ErrCodeUpstreamAuth, "Payment service temporarily unavailable"},
		{"unavailable", application.NewUpstreamUnavailableError(errBoom), http.StatusInternalServerError, application.ErrCodeUpstreamUnavailable, "Payment service temporarily unavailable"},
		{"timeout", application.NewTimeoutError(context.DeadlineExceeded), http.StatusGatewayTimeout, application.ErrCodeTimeout, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			push := &mockPushService{
				initiateFn: func(context.Context, services.PushCommand) (*services.PushResult, error) {
					return nil, tc.err
				},
			}
			mux := newTestMux(t, NewPaymentHandler(push, nil, nil, discardLogger()))

			rr := do(t, mux, http.MethodPost, "/push", `{"phone":"0712345678","amount":50}`)

			assert.Equal(t, tc.wantStatus, rr.Code)
			resp := decodeError(t, rr)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
			assert.NotContains(t, resp.Error.Message, "boom")
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, resp.Error.Message)
			}
		})
	}
}

func TestRegisterRoutes_GuardWrapsPushOnly(t *testing.T) {
	guarded := 0
	guard := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			guarded++
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}

	mux := http.NewServeMux()
	require.NoError(t, NewPaymentHandler(nil, nil, nil, discardLogger()).RegisterRoutes(mux, guard))

	assert.Equal(t, http.StatusTooManyRequests, do(t, mux, http.MethodPost, "/push", `{}`).Code)
	assert.Equal(t, http.StatusOK, do(t, mux, http.MethodGet, "/health", "").Code)
	assert.Equal(t, 1, guarded)
}

// ============================================================================
// POST /status and GET /result
// ============================================================================

func TestHandleStatus_Success(t *testing.T) {
	code := 0
	receipt := "ABC123"
	amount := 50.0
	resolver := &mockStatusResolver{
		resolveFn: func(_ context.Context, id string) (*services.StatusResult, error) {
			assert.Equal(t, "ws_CO_1", id)
			return &services.StatusResult{
				Status:        domain.StatusSuccess,
				ResultCode:    &code,
				Message:       "Payment completed successfully",
				ReceiptNumber: &receipt,
				Amount:        &amount,
				Source:        services.SourceCallback,
			}, nil
		},
	}
	mux := newTestMux(t, NewPaymentHandler(nil, resolver, nil, discardLogger()))

	rr := do(t, mux, http.MethodPost, "/status", `{"correlationId":"ws_CO_1"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "success", body["status"])
	assert.EqualValues(t, 0, body["resultCode"])
	assert.Equal(t, "ABC123", body["receiptNumber"])
	assert.EqualValues(t, 50, body["amount"])
	assert.Equal(t, "callback", body["source"])
	assert.NotContains(t, body, "phone")
}

func TestHandleStatus_PendingOmitsResultCode(t *testing.T) {
	resolver := &mockStatusResolver{
		resolveFn: func(context.Context, string) (*services.StatusResult, error) {
			return &services.StatusResult{
				Status:  domain.StatusPending,
				Message: domain.MessageStillProcessing,
				Source:  services.SourceQuery,
			}, nil
		},
	}
	mux := newTestMux(t, NewPaymentHandler(nil, resolver, nil, discardLogger()))

	rr := do(t, mux, http.MethodPost, "/status", `{"correlationId":"ws_CO_1"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "pending", body["status"])
	assert.NotContains(t, body, "resultCode")
}

func TestHandleStatus_MissingCorrelationID(t *testing.T) {
	mux := newTestMux(t, NewPaymentHandler(nil, &mockStatusResolver{}, nil, discardLogger()))

	t.Run("absent field fails schema validation", func(t *testing.T) {
		rr := do(t, mux, http.MethodPost, "/status", `{}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, application.ErrCodeValidation, decodeError(t, rr).Error.Code)
	})

	t.Run("blank value is a missing field", func(t *testing.T) {
		rr := do(t, mux, http.MethodPost, "/status", `{"correlationId":"  "}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, domain.ErrCodeMissingRequiredField, decodeError(t, rr).Error.Code)
	})
}

func TestHandleResult(t *testing.T) {
	rec, err := domain.NewOutcomeRecord("ws_CO_1", "29115-1", 1032, "Request cancelled by user", time.Now())
	require.NoError(t, err)

	resolver := &mockStatusResolver{
		lookupFn: func(_ context.Context, id string) (*domain.OutcomeRecord, bool, error) {
			if id == "ws_CO_1" {
				return rec, true, nil
			}
			return nil, false, nil
		},
	}
	mux := newTestMux(t, NewPaymentHandler(nil, resolver, nil, discardLogger()))

	t.Run("found", func(t *testing.T) {
		rr := do(t, mux, http.MethodGet, "/result/ws_CO_1", "")

		require.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Success bool                 `json:"success"`
			Found   bool                 `json:"found"`
			Data    domain.OutcomeRecord `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.Found)
		assert.Equal(t, 1032, body.Data.ResultCode)
	})

	t.Run("not found", func(t *testing.T) {
		rr := do(t, mux, http.MethodGet, "/result/ws_CO_2", "")

		require.Equal(t, http.StatusOK, rr.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, false, body["found"])
		assert.NotContains(t, body, "data")
	})
}

// ============================================================================
// POST /webhook
// ============================================================================

func TestHandleWebhook_AlwaysAcknowledges(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantDesc string
	}{
		{"processed", nil, webhookProcessed},
		{"malformed", domain.NewMalformedCallbackError("missing Body", nil), webhookReceived},
		{"store failure", errBoom, webhookReceived},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			cb := &mockCallbackService{
				handleFn: func(_ context.Context, raw []byte) (*domain.OutcomeRecord, error) {
					calls++
					assert.Equal(t, `{"Body":{}}`, string(raw))
					return nil, tc.err
				},
			}
			mux := newTestMux(t, NewPaymentHandler(nil, nil, cb, discardLogger()))

			rr := do(t, mux, http.MethodPost, "/webhook", `{"Body":{}}`)

			require.Equal(t, http.StatusOK, rr.Code)
			var ack api.WebhookAck
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ack))
			assert.Equal(t, 0, ack.ResultCode)
			assert.Equal(t, tc.wantDesc, ack.ResultDesc)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestHandleWebhook_IsNotSchemaValidated(t *testing.T) {
	var got string
	cb := &mockCallbackService{
		handleFn: func(_ context.Context, raw []byte) (*domain.OutcomeRecord, error) {
			got = string(raw)
			return nil, domain.NewMalformedCallbackError("not json", nil)
		},
	}
	mux := newTestMux(t, NewPaymentHandler(nil, nil, cb, discardLogger()))

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "not json", got)
}

// ============================================================================
// GET /health, GET /openapi.json and GET /metrics
// ============================================================================

func TestHealthAndMetrics(t *testing.T) {
	mux := newTestMux(t, NewPaymentHandler(nil, nil, nil, discardLogger()))

	rr := do(t, mux, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = do(t, mux, http.MethodGet, "/openapi.json", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	info := doc["info"].(map[string]any)
	assert.Equal(t, "Spectre Payment Gateway", info["title"])
	assert.Equal(t, "1.0.0", info["version"])
	assert.Contains(t, doc["paths"], "/push")

	rr = do(t, mux, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

var errBoom = errors.New("boom")
