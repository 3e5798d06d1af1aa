// Package domain holds the STK push transaction model and its rules
package domain

import (
	"time"
)

// TransactionDateLayout is the upstream YYYYMMDDHHmmss timestamp format.
const TransactionDateLayout = "20060102150405"

// OutcomeRecord is the normalized result of an STK push, built from the
// provider callback. It is never mutated after creation.
type OutcomeRecord struct {
	CorrelationID     string `json:"correlationId"`
	PeerCorrelationID string `json:"peerCorrelationId"`
	ResultCode        int    `json:"resultCode"`
	ResultDescription string `json:"resultDescription"`
	Succeeded         bool   `json:"succeeded"`

	// Present only when Succeeded and the callback carried metadata.
	ReceiptNumber        *string  `json:"receiptNumber,omitempty"`
	Amount               *float64 `json:"amount,omitempty"`
	Phone                *string  `json:"phone,omitempty"`
	TransactionTimestamp *string  `json:"transactionTimestamp,omitempty"`

	RecordedAt time.Time `json:"recordedAt"`
}

// NewOutcomeRecord builds a record with the Succeeded flag derived from the code.
func NewOutcomeRecord(correlationID, peerCorrelationID string, resultCode int, resultDescription string, recordedAt time.Time) (*OutcomeRecord, error) {
	if correlationID == "" {
		return nil, NewMissingRequiredFieldError("correlation ID")
	}
	return &OutcomeRecord{
		CorrelationID:     correlationID,
		PeerCorrelationID: peerCorrelationID,
		ResultCode:        resultCode,
		ResultDescription: resultDescription,
		Succeeded:         resultCode == ResultCodeSuccess,
		RecordedAt:        recordedAt,
	}, nil
}

// Status maps the stored result code through the result code table.
func (r *OutcomeRecord) Status() PushStatus {
	return StatusForResultCode(r.ResultCode)
}

// TransactionTime parses TransactionTimestamp in the given location.
func (r *OutcomeRecord) TransactionTime(loc *time.Location) (time.Time, bool) {
	if r.TransactionTimestamp == nil {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(TransactionDateLayout, *r.TransactionTimestamp, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PushRequest describes an accepted STK push before its outcome is known.
type PushRequest struct {
	CorrelationID     string
	PeerCorrelationID string
	Phone             string
	Amount            int64
	Reference         string
	Description       string
	InitiatedAt       time.Time
}
