package postgres

import (
	"time"

	"github.com/vouh/Spectre-payment-server/internal/domain"
)

// TransactionModel is a row of mpesa_transactions. Initiation columns and
// outcome columns are filled by separate upserts, in either order.
type TransactionModel struct {
	CheckoutRequestID string
	MerchantRequestID string
	Phone             *string
	Amount            *int64
	Reference         *string
	Description       *string
	Status            string
	ResultCode        *int
	ResultDesc        *string
	ReceiptNumber     *string
	PaidAmount        *float64
	PaidPhone         *string
	TransactionDate   *string
	InitiatedAt       *time.Time
	CompletedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func fromPushRequest(req *domain.PushRequest) *TransactionModel {
	return &TransactionModel{
		CheckoutRequestID: req.CorrelationID,
		MerchantRequestID: req.PeerCorrelationID,
		Phone:             &req.Phone,
		Amount:            &req.Amount,
		Reference:         &req.Reference,
		Description:       &req.Description,
		Status:            string(domain.StatusPending),
		InitiatedAt:       &req.InitiatedAt,
	}
}

func fromOutcome(rec *domain.OutcomeRecord) *TransactionModel {
	code := rec.ResultCode
	desc := rec.ResultDescription
	return &TransactionModel{
		CheckoutRequestID: rec.CorrelationID,
		MerchantRequestID: rec.PeerCorrelationID,
		Status:            string(rec.Status()),
		ResultCode:        &code,
		ResultDesc:        &desc,
		ReceiptNumber:     rec.ReceiptNumber,
		PaidAmount:        rec.Amount,
		PaidPhone:         rec.Phone,
		TransactionDate:   rec.TransactionTimestamp,
		CompletedAt:       &rec.RecordedAt,
	}
}
