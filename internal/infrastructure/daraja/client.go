// Package daraja talks to the Safaricom Daraja API and decodes its webhooks.
package daraja

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/config"
	"github.com/vouh/Spectre-payment-server/internal/metrics"
)

const (
	tokenPath = "/oauth/v1/generate?grant_type=client_credentials"
	pushPath  = "/mpesa/stkpush/v1/processrequest"
	queryPath = "/mpesa/stkpushquery/v1/query"

	maxErrorBody = 64 << 10
)

type HTTPClient struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	httpClient     *http.Client
	logger         *slog.Logger
}

var _ application.DarajaClient = (*HTTPClient)(nil)

func NewClient(cfg config.DarajaConfig, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

func (c *HTTPClient) GenerateToken(ctx context.Context) (*application.TokenResponse, error) {
	basic := func(r *http.Request) { r.SetBasicAuth(c.consumerKey, c.consumerSecret) }
	return sendRequest[any, application.TokenResponse](c, ctx, "token", http.MethodGet, tokenPath, nil, basic)
}

func (c *HTTPClient) STKPush(ctx context.Context, token string, req application.STKPushRequest) (*application.STKPushResponse, error) {
	return sendRequest[application.STKPushRequest, application.STKPushResponse](c, ctx, "stk_push", http.MethodPost, pushPath, &req, bearer(token))
}

func (c *HTTPClient) STKQuery(ctx context.Context, token string, req application.STKQueryRequest) (*application.STKQueryResponse, error) {
	return sendRequest[application.STKQueryRequest, application.STKQueryResponse](c, ctx, "stk_query", http.MethodPost, queryPath, &req, bearer(token))
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func sendRequest[Req any, Resp any](c *HTTPClient, ctx context.Context, op, method, path string, reqBody *Req, auth func(*http.Request)) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	auth(httpReq)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.UpstreamLatency.WithLabelValues(op).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("error making %s request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("upstream returned error",
			"operation", op,
			"status", resp.StatusCode,
			"body", string(body),
		)

		var errResp application.UpstreamErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || (errResp.ErrorCode == "" && errResp.ErrorMessage == "") {
			return nil, &application.UpstreamError{
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(body)),
			}
		}
		return nil, &application.UpstreamError{
			Code:       errResp.ErrorCode,
			Message:    errResp.ErrorMessage,
			StatusCode: resp.StatusCode,
		}
	}

	var upstreamResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&upstreamResp); err != nil {
		return nil, fmt.Errorf("error decoding %s response: %w", op, err)
	}

	return &upstreamResp, nil
}
