package postgres

import (
	"context"
	"fmt"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/domain"
)

// TransactionRepository records pushes and their outcomes. It is a sink: the
// gateway never reads from it on the request path.
type TransactionRepository struct {
	q Executor
}

var _ application.TransactionRecorder = (*TransactionRepository)(nil)

func NewTransactionRepository(q Executor) *TransactionRepository {
	return &TransactionRepository{q: q}
}

// RecordInitiated upserts the request columns. An outcome that arrived first
// keeps its status.
func (r *TransactionRepository) RecordInitiated(ctx context.Context, req *domain.PushRequest) error {
	query := `
		INSERT INTO mpesa_transactions (
			checkout_request_id, merchant_request_id, phone, amount,
			reference, description, status, initiated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (checkout_request_id) DO UPDATE SET
			merchant_request_id = EXCLUDED.merchant_request_id,
			phone = EXCLUDED.phone,
			amount = EXCLUDED.amount,
			reference = EXCLUDED.reference,
			description = EXCLUDED.description,
			initiated_at = EXCLUDED.initiated_at,
			updated_at = NOW()
	`

	m := fromPushRequest(req)
	_, err := r.q.Exec(ctx, query,
		m.CheckoutRequestID,
		m.MerchantRequestID,
		m.Phone,
		m.Amount,
		m.Reference,
		m.Description,
		m.Status,
		m.InitiatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record initiated transaction: %w", err)
	}

	return nil
}

// RecordOutcome upserts the result columns. Duplicate deliveries overwrite.
func (r *TransactionRepository) RecordOutcome(ctx context.Context, rec *domain.OutcomeRecord) error {
	query := `
		INSERT INTO mpesa_transactions (
			checkout_request_id, merchant_request_id, status, result_code, result_desc,
			receipt_number, paid_amount, paid_phone, transaction_date, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (checkout_request_id) DO UPDATE SET
			merchant_request_id = COALESCE(NULLIF(EXCLUDED.merchant_request_id, ''), mpesa_transactions.merchant_request_id),
			status = EXCLUDED.status,
			result_code = EXCLUDED.result_code,
			result_desc = EXCLUDED.result_desc,
			receipt_number = EXCLUDED.receipt_number,
			paid_amount = EXCLUDED.paid_amount,
			paid_phone = EXCLUDED.paid_phone,
			transaction_date = EXCLUDED.transaction_date,
			completed_at = EXCLUDED.completed_at,
			updated_at = NOW()
	`

	m := fromOutcome(rec)
	_, err := r.q.Exec(ctx, query,
		m.CheckoutRequestID,
		m.MerchantRequestID,
		m.Status,
		m.ResultCode,
		m.ResultDesc,
		m.ReceiptNumber,
		m.PaidAmount,
		m.PaidPhone,
		m.TransactionDate,
		m.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record transaction outcome: %w", err)
	}

	return nil
}
