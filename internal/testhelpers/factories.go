package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vouh/Spectre-payment-server/internal/domain"
)

// SuccessCallback renders a provider callback body for a paid push.
func SuccessCallback(checkoutID, receipt string, amount int64, phone string) []byte {
	return []byte(fmt.Sprintf(`{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "29115-%s",
				"CheckoutRequestID": %q,
				"ResultCode": 0,
				"ResultDesc": "The service request is processed successfully.",
				"CallbackMetadata": {
					"Item": [
						{"Name": "Amount", "Value": %d},
						{"Name": "MpesaReceiptNumber", "Value": %q},
						{"Name": "TransactionDate", "Value": 20250301120000},
						{"Name": "PhoneNumber", "Value": %s}
					]
				}
			}
		}
	}`, checkoutID, checkoutID, amount, receipt, phone))
}

// FailedCallback renders a provider callback body with a non-zero result.
func FailedCallback(checkoutID string, code int, desc string) []byte {
	return []byte(fmt.Sprintf(`{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "29115-%s",
				"CheckoutRequestID": %q,
				"ResultCode": %d,
				"ResultDesc": %q
			}
		}
	}`, checkoutID, checkoutID, code, desc))
}

// SuccessOutcome builds a stored record equivalent to SuccessCallback.
func SuccessOutcome(t *testing.T, checkoutID, receipt string, amount float64, phone string, at time.Time) *domain.OutcomeRecord {
	t.Helper()
	rec, err := domain.NewOutcomeRecord(checkoutID, "29115-"+checkoutID, 0, "The service request is processed successfully.", at)
	require.NoError(t, err)

	ts := "20250301120000"
	rec.ReceiptNumber = &receipt
	rec.Amount = &amount
	rec.Phone = &phone
	rec.TransactionTimestamp = &ts
	return rec
}
