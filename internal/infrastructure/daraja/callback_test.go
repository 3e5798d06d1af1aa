package daraja_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vouh/Spectre-payment-server/internal/domain"
	"github.com/vouh/Spectre-payment-server/internal/infrastructure/daraja"
)

const successCallback = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 0,
      "ResultDesc": "The service request is processed successfully.",
      "CallbackMetadata": {
        "Item": [
          {"Name": "Amount", "Value": 1.00},
          {"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
          {"Name": "Balance"},
          {"Name": "TransactionDate", "Value": 20191219102115},
          {"Name": "PhoneNumber", "Value": 254708374149}
        ]
      }
    }
  }
}`

func TestCallbackParser_Parse(t *testing.T) {
	parser := daraja.NewCallbackParser()
	receivedAt := time.Date(2019, 12, 19, 10, 21, 20, 0, time.UTC)

	t.Run("success callback extracts metadata", func(t *testing.T) {
		rec, err := parser.Parse([]byte(successCallback), receivedAt)

		require.NoError(t, err)
		assert.Equal(t, "ws_CO_191220191020363925", rec.CorrelationID)
		assert.Equal(t, "29115-34620561-1", rec.PeerCorrelationID)
		assert.Equal(t, 0, rec.ResultCode)
		assert.True(t, rec.Succeeded)
		require.NotNil(t, rec.ReceiptNumber)
		assert.Equal(t, "NLJ7RT61SV", *rec.ReceiptNumber)
		require.NotNil(t, rec.Amount)
		assert.Equal(t, 1.0, *rec.Amount)
		require.NotNil(t, rec.TransactionTimestamp)
		assert.Equal(t, "20191219102115", *rec.TransactionTimestamp)
		require.NotNil(t, rec.Phone)
		assert.Equal(t, "254708374149", *rec.Phone)
		assert.Equal(t, receivedAt, rec.RecordedAt)
	})

	t.Run("same bytes give equal records", func(t *testing.T) {
		first, err := parser.Parse([]byte(successCallback), receivedAt)
		require.NoError(t, err)
		second, err := parser.Parse([]byte(successCallback), receivedAt)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("failure callback ignores metadata", func(t *testing.T) {
		raw := `{"Body":{"stkCallback":{
			"MerchantRequestID":"29115-2","CheckoutRequestID":"ws_CO_2",
			"ResultCode":1037,"ResultDesc":"DS timeout user cannot be reached",
			"CallbackMetadata":{"Item":[{"Name":"MpesaReceiptNumber","Value":"X"}]}}}}`

		rec, err := parser.Parse([]byte(raw), receivedAt)

		require.NoError(t, err)
		assert.False(t, rec.Succeeded)
		assert.Equal(t, domain.StatusTimeout, rec.Status())
		assert.Equal(t, "DS timeout user cannot be reached", rec.ResultDescription)
		assert.Nil(t, rec.ReceiptNumber)
		assert.Nil(t, rec.Amount)
	})

	t.Run("string result code is accepted", func(t *testing.T) {
		raw := `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_3","ResultCode":"1032"}}}`

		rec, err := parser.Parse([]byte(raw), receivedAt)

		require.NoError(t, err)
		assert.Equal(t, 1032, rec.ResultCode)
		assert.Empty(t, rec.PeerCorrelationID)
		assert.Equal(t, "Transaction cancelled by user", rec.ResultDescription)
	})

	t.Run("success without metadata has no optional fields", func(t *testing.T) {
		raw := `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_4","ResultCode":0,"ResultDesc":"ok"}}}`

		rec, err := parser.Parse([]byte(raw), receivedAt)

		require.NoError(t, err)
		assert.True(t, rec.Succeeded)
		assert.Nil(t, rec.ReceiptNumber)
		assert.Nil(t, rec.Phone)
	})

	t.Run("unknown metadata names are ignored", func(t *testing.T) {
		raw := `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_5","ResultCode":0,
			"CallbackMetadata":{"Item":[{"Name":"Extra","Value":"1"},{"Name":"Amount","Value":"50"}]}}}}`

		rec, err := parser.Parse([]byte(raw), receivedAt)

		require.NoError(t, err)
		require.NotNil(t, rec.Amount)
		assert.Equal(t, 50.0, *rec.Amount)
	})

	t.Run("malformed inputs", func(t *testing.T) {
		cases := map[string]string{
			"not json":            `{"Body":`,
			"missing body":        `{}`,
			"missing stkCallback": `{"Body":{}}`,
			"missing checkout id": `{"Body":{"stkCallback":{"ResultCode":0}}}`,
			"empty checkout id":   `{"Body":{"stkCallback":{"CheckoutRequestID":"","ResultCode":0}}}`,
			"missing result code": `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_6"}}}`,
			"fractional code":     `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_6","ResultCode":1.5}}}`,
			"non numeric code":    `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_6","ResultCode":"abc"}}}`,
			"boolean result code": `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_6","ResultCode":true}}}`,
		}

		for name, raw := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := parser.Parse([]byte(raw), receivedAt)

				assert.ErrorIs(t, err, domain.ErrMalformedCallback)
			})
		}
	})
}
