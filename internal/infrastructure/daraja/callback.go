package daraja

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/domain"
)

// Metadata item names carried by a successful callback.
const (
	itemReceipt         = "MpesaReceiptNumber"
	itemAmount          = "Amount"
	itemTransactionDate = "TransactionDate"
	itemPhone           = "PhoneNumber"
)

type callbackEnvelope struct {
	Body *struct {
		STKCallback *stkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type stkCallback struct {
	MerchantRequestID *string           `json:"MerchantRequestID"`
	CheckoutRequestID *string           `json:"CheckoutRequestID"`
	ResultCode        any               `json:"ResultCode"`
	ResultDesc        *string           `json:"ResultDesc"`
	CallbackMetadata  *callbackMetadata `json:"CallbackMetadata"`
}

type callbackMetadata struct {
	Item []metadataItem `json:"Item"`
}

type metadataItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// CallbackParser decodes STK push webhook bodies. It holds no state.
type CallbackParser struct{}

var _ application.CallbackParser = CallbackParser{}

func NewCallbackParser() CallbackParser {
	return CallbackParser{}
}

// Parse validates the envelope and normalizes it into an OutcomeRecord.
// Metadata is only read when the result code is 0.
func (CallbackParser) Parse(raw []byte, receivedAt time.Time) (*domain.OutcomeRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var env callbackEnvelope
	if err := dec.Decode(&env); err != nil {
		return nil, domain.NewMalformedCallbackError("invalid JSON", err)
	}

	if env.Body == nil {
		return nil, domain.NewMalformedCallbackError("missing Body", nil)
	}
	cb := env.Body.STKCallback
	if cb == nil {
		return nil, domain.NewMalformedCallbackError("missing Body.stkCallback", nil)
	}
	if cb.CheckoutRequestID == nil || *cb.CheckoutRequestID == "" {
		return nil, domain.NewMalformedCallbackError("missing CheckoutRequestID", nil)
	}

	code, err := resultCode(cb.ResultCode)
	if err != nil {
		return nil, err
	}

	desc := domain.DescribeResultCode(code)
	if cb.ResultDesc != nil {
		desc = *cb.ResultDesc
	}

	var peerID string
	if cb.MerchantRequestID != nil {
		peerID = *cb.MerchantRequestID
	}

	rec, err := domain.NewOutcomeRecord(*cb.CheckoutRequestID, peerID, code, desc, receivedAt)
	if err != nil {
		return nil, err
	}

	if rec.Succeeded && cb.CallbackMetadata != nil {
		applyMetadata(rec, cb.CallbackMetadata.Item)
	}

	return rec, nil
}

func resultCode(v any) (int, error) {
	switch code := v.(type) {
	case nil:
		return 0, domain.NewMalformedCallbackError("missing ResultCode", nil)
	case json.Number:
		n, err := strconv.Atoi(code.String())
		if err != nil {
			return 0, domain.NewMalformedCallbackError("ResultCode is not an integer", err)
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil {
			return 0, domain.NewMalformedCallbackError("ResultCode is not an integer", err)
		}
		return n, nil
	default:
		return 0, domain.NewMalformedCallbackError("ResultCode has unexpected type", errors.New("want number or string"))
	}
}

func applyMetadata(rec *domain.OutcomeRecord, items []metadataItem) {
	values := make(map[string]any, len(items))
	for _, item := range items {
		if item.Value != nil {
			values[item.Name] = item.Value
		}
	}

	if s, ok := stringValue(values[itemReceipt]); ok {
		rec.ReceiptNumber = &s
	}
	if f, ok := floatValue(values[itemAmount]); ok {
		rec.Amount = &f
	}
	if s, ok := stringValue(values[itemTransactionDate]); ok {
		rec.TransactionTimestamp = &s
	}
	if s, ok := stringValue(values[itemPhone]); ok {
		rec.Phone = &s
	}
}

func stringValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, val != ""
	case json.Number:
		return val.String(), true
	}
	return "", false
}

func floatValue(v any) (float64, bool) {
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}
