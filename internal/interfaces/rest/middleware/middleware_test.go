package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vouh/Spectre-payment-server/internal/api"
	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/infrastructure/ratelimit"
	"github.com/vouh/Spectre-payment-server/internal/testhelpers"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRecovery(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})

	rr := httptest.NewRecorder()
	Recovery(discardLogger())(panicking).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, application.ErrCodeInternal, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "kaboom")
}

func TestTimeout(t *testing.T) {
	t.Run("slow handler gets 504", func(t *testing.T) {
		slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			w.WriteHeader(http.StatusOK)
		})

		rr := httptest.NewRecorder()
		Timeout(20*time.Millisecond)(slow).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/status", nil))

		assert.Equal(t, http.StatusGatewayTimeout, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, application.ErrCodeTimeout, resp.Error.Code)
	})

	t.Run("fast handler passes through", func(t *testing.T) {
		var deadlineSet bool
		fast := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, deadlineSet = r.Context().Deadline()
			w.Header().Set("X-Handler", "yes")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		rr := httptest.NewRecorder()
		Timeout(time.Second)(fast).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/push", nil))

		assert.True(t, deadlineSet)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "yes", rr.Header().Get("X-Handler"))
		assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
	})

	t.Run("panics reach the caller goroutine", func(t *testing.T) {
		boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		})

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			Timeout(time.Second)(boom).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}

func TestLogging_RequestID(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusAccepted)
	})
	h := Logging(discardLogger())(inner)

	t.Run("assigns a uuid", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		id := rr.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)
		assert.Equal(t, http.StatusAccepted, rr.Code)
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, "req-42", rr.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-42", seen)
	})
}

func TestRateLimit(t *testing.T) {
	clock := testhelpers.NewClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	limiter := ratelimit.NewFixedWindowLimiter(time.Minute, 2, clock.Now)
	h := RateLimit(limiter, false, discardLogger())(okHandler)

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/push", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5001").Code)

	rr := send("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, application.ErrCodeRateLimited, resp.Error.Code)

	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000").Code, "other clients are unaffected")

	clock.Advance(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5003").Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/push", nil)
	req.RemoteAddr = "10.0.0.9:4321"
	req.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")

	assert.Equal(t, "10.0.0.9", ClientIP(req, false))
	assert.Equal(t, "203.0.113.7", ClientIP(req, true))

	req.Header.Del("X-Forwarded-For")
	assert.Equal(t, "10.0.0.9", ClientIP(req, true))
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://spectre-tech.netlify.app"})(okHandler)

	t.Run("preflight from an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/push", nil)
		req.Header.Set("Origin", "https://spectre-tech.netlify.app")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "https://spectre-tech.netlify.app", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})

	t.Run("simple request from an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/status", nil)
		req.Header.Set("Origin", "https://spectre-tech.netlify.app")
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://spectre-tech.netlify.app", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origins get no allow header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/status", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed methods fail preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/push", nil)
		req.Header.Set("Origin", "https://spectre-tech.netlify.app")
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestOpenAPIValidator(t *testing.T) {
	doc, err := api.GetSwagger()
	require.NoError(t, err)
	validate, err := OpenAPIValidator(doc, discardLogger())
	require.NoError(t, err)
	h := validate(okHandler)

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	t.Run("valid push passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send(http.MethodPost, "/push", `{"phone":"0712345678","amount":"50"}`).Code)
	})

	t.Run("domain rules are left to the handler", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send(http.MethodPost, "/push", `{"phone":"0812345678","amount":150001}`).Code)
	})

	t.Run("missing amount is rejected", func(t *testing.T) {
		rr := send(http.MethodPost, "/push", `{"phone":"0712345678"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, application.ErrCodeValidation, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "amount")
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, send(http.MethodPost, "/status", `{"correlationId":`).Code)
	})

	t.Run("webhook is passed through", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send(http.MethodPost, "/webhook", `garbage`).Code)
	})

	t.Run("routes outside the document are passed through", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send(http.MethodGet, "/metrics", "").Code)
	})
}
