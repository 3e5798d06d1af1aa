package rest

import (
	"encoding/json"
	"net/http"

	"github.com/vouh/Spectre-payment-server/internal/api"
	"github.com/vouh/Spectre-payment-server/internal/application/services"
	"github.com/vouh/Spectre-payment-server/internal/domain"
)

// MaxBodyBytes bounds every request body. Provider callbacks are well under it.
const MaxBodyBytes = 10 << 10

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// LimitBody caps the request body at MaxBodyBytes. Reads past the cap fail.
func LimitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

func ToAPIOutcome(rec *domain.OutcomeRecord) *api.OutcomeRecord {
	if rec == nil {
		return nil
	}
	return &api.OutcomeRecord{
		CorrelationId:        rec.CorrelationID,
		PeerCorrelationId:    rec.PeerCorrelationID,
		ResultCode:           rec.ResultCode,
		ResultDescription:    rec.ResultDescription,
		Succeeded:            rec.Succeeded,
		ReceiptNumber:        rec.ReceiptNumber,
		Amount:               rec.Amount,
		Phone:                rec.Phone,
		TransactionTimestamp: rec.TransactionTimestamp,
		RecordedAt:           rec.RecordedAt,
	}
}

func ToAPIStatus(res *services.StatusResult) api.StatusResponse {
	return api.StatusResponse{
		Success:         true,
		Status:          api.StatusResponseStatus(res.Status),
		ResultCode:      res.ResultCode,
		Message:         res.Message,
		ReceiptNumber:   res.ReceiptNumber,
		Amount:          res.Amount,
		Phone:           res.Phone,
		TransactionDate: res.TransactionDate,
		Source:          api.StatusResponseSource(res.Source),
	}
}
