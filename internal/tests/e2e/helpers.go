package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vouh/Spectre-payment-server/internal/application/services"
	"github.com/vouh/Spectre-payment-server/internal/config"
	"github.com/vouh/Spectre-payment-server/internal/infrastructure/daraja"
	"github.com/vouh/Spectre-payment-server/internal/infrastructure/ratelimit"
	"github.com/vouh/Spectre-payment-server/internal/infrastructure/store"
	"github.com/vouh/Spectre-payment-server/internal/interfaces/rest/handlers"
	"github.com/vouh/Spectre-payment-server/internal/interfaces/rest/middleware"
	"github.com/vouh/Spectre-payment-server/internal/testhelpers"
)

// FakeDaraja serves the three provider endpoints the gateway calls.
type FakeDaraja struct {
	Server *httptest.Server

	TokenCalls atomic.Int32
	PushCalls  atomic.Int32
	QueryCalls atomic.Int32

	mu        sync.Mutex
	nextID    int
	queryResp func(checkoutID string) (int, any)
}

func NewFakeDaraja(t *testing.T) *FakeDaraja {
	t.Helper()
	f := &FakeDaraja{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		f.TokenCalls.Add(1)
		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "e2e-token", "expires_in": "3599"})
	})
	mux.HandleFunc("POST /mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		f.PushCalls.Add(1)
		f.mu.Lock()
		f.nextID++
		id := f.nextID
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{
			"MerchantRequestID":   "29115-" + strconv.Itoa(id),
			"CheckoutRequestID":   "ws_CO_" + strconv.Itoa(id),
			"ResponseCode":        "0",
			"ResponseDescription": "Success. Request accepted for processing",
			"CustomerMessage":     "Success. Request accepted for processing",
		})
	})
	mux.HandleFunc("POST /mpesa/stkpushquery/v1/query", func(w http.ResponseWriter, r *http.Request) {
		f.QueryCalls.Add(1)
		var req struct {
			CheckoutRequestID string
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		respond := f.queryResp
		f.mu.Unlock()
		if respond == nil {
			respond = StillProcessing
		}
		status, body := respond(req.CheckoutRequestID)
		writeJSON(w, status, body)
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// OnQuery replaces the STK query answer.
func (f *FakeDaraja) OnQuery(fn func(checkoutID string) (int, any)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryResp = fn
}

// StillProcessing is the provider's answer while the customer has not responded.
func StillProcessing(string) (int, any) {
	return http.StatusInternalServerError, map[string]string{
		"requestId":    "e2e",
		"errorCode":    "500.001.1001",
		"errorMessage": "The transaction is being processed",
	}
}

// AllowedOrigin is the browser origin the test gateway accepts.
const AllowedOrigin = "https://spectre-tech.netlify.app"

// Gateway is the full HTTP stack wired as cmd/gateway wires it, on memory storage.
type Gateway struct {
	Server  *httptest.Server
	Store   *store.MemoryStore
	Clock   *testhelpers.Clock
	Limiter *ratelimit.FixedWindowLimiter
}

func NewGateway(t *testing.T, upstream *FakeDaraja, maxRequests int) *Gateway {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := testhelpers.NewClock(time.Now())

	cfg := config.DarajaConfig{
		BaseURL:            upstream.Server.URL,
		ConsumerKey:        "key",
		ConsumerSecret:     "secret",
		ShortCode:          "174379",
		Passkey:            "passkey",
		TransactionType:    "CustomerBuyGoodsOnline",
		PartyB:             "5555555",
		CallbackURL:        "https://gateway.example.com/webhook",
		Timeout:            5 * time.Second,
		TokenSafetyMargin:  time.Minute,
		DefaultReference:   "SpectreTech",
		DefaultDescription: "Payment",
	}

	client := daraja.NewClient(cfg, logger)
	tokens := services.NewTokenCache(client, cfg.TokenSafetyMargin, cfg.Timeout, clock.Now, logger)
	mem := store.NewMemoryStore(store.DefaultRetention, clock.Now)
	limiter := ratelimit.NewFixedWindowLimiter(time.Minute, maxRequests, clock.Now)

	h := handlers.NewPaymentHandler(
		services.NewPushService(client, tokens, nil, cfg, clock.Now, logger),
		services.NewStatusResolver(mem, client, tokens, cfg, clock.Now, logger),
		services.NewCallbackService(daraja.NewCallbackParser(), mem, nil, clock.Now, logger),
		logger,
	)

	mux := http.NewServeMux()
	require.NoError(t, h.RegisterRoutes(mux, middleware.RateLimit(limiter, false, logger)))

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Timeout(10 * time.Second)(handler)
	handler = middleware.CORS([]string{AllowedOrigin})(handler)
	handler = middleware.Logging(logger)(handler)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Gateway{Server: srv, Store: mem, Clock: clock, Limiter: limiter}
}

// Post sends a JSON body and decodes the JSON response into a map.
func (g *Gateway) Post(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()

	var raw []byte
	switch b := body.(type) {
	case []byte:
		raw = b
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}

	resp, err := http.Post(g.Server.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, decodeBody(t, resp)
}

func (g *Gateway) Get(t *testing.T, path string) (int, map[string]any) {
	t.Helper()

	resp, err := http.Get(g.Server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func bytesReader(s string) io.Reader {
	return bytes.NewReader([]byte(s))
}
