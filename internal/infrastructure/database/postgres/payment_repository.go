package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"peer-lending/internal/domain/payment"
	"peer-lending/internal/infrastructure/monitoring"
	"peer-lending/internal/pkg/apperrors"
)

type PaymentRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ payment.Repository = (*PaymentRepository)(nil)

func NewPaymentRepository(db DBPool, logger *slog.Logger) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger.With("component", "PaymentRepository")}
}

func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	query := `
        INSERT INTO payments (id, loan_id, payer_id, receiver_id, amount, method, status, reference, notes, paid_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	status := statusSuccess
	startTime := time.Now()

	_, err := r.db.Exec(ctx, query,
		p.ID, p.LoanID, p.PayerID, p.ReceiverID, p.Amount, string(p.Method), string(p.Status),
		p.Reference, p.Notes, p.PaidAt, p.CreatedAt,
	)
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("SavePayment", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert payment", "payment_id", p.ID, "loan_id", p.LoanID, "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string, filter payment.ListFilter) ([]*payment.Payment, error) {
	query, args := buildPaymentListQuery(userID, filter)
	status := statusSuccess
	startTime := time.Now()
	defer func() {
		monitoring.RecordDBQuery("ListPaymentsByUser", status, time.Since(startTime))
	}()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		status = statusError
		r.logger.ErrorContext(ctx, "Failed to query payments", "user_id", userID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	payments := make([]*payment.Payment, 0)
	for rows.Next() {
		var (
			p              payment.Payment
			method, pstate string
		)
		err := rows.Scan(
			&p.ID, &p.LoanID, &p.PayerID, &p.ReceiverID, &p.Amount, &method, &pstate,
			&p.Reference, &p.Notes, &p.PaidAt, &p.CreatedAt,
		)
		if err != nil {
			status = statusError
			r.logger.ErrorContext(ctx, "Failed to scan payment row", "user_id", userID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		p.Method = payment.Method(method)
		p.Status = payment.Status(pstate)
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		status = statusError
		r.logger.ErrorContext(ctx, "Error iterating payment rows", "user_id", userID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return payments, nil
}

func buildPaymentListQuery(userID string, filter payment.ListFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, loan_id, payer_id, receiver_id, amount, method, status, reference, notes, paid_at, created_at
        FROM payments WHERE (payer_id = $1 OR receiver_id = $1)`)
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		fmt.Fprintf(&sb, ` AND status = $%d`, len(args))
	}
	if filter.Method != "" {
		args = append(args, string(filter.Method))
		fmt.Fprintf(&sb, ` AND method = $%d`, len(args))
	}

	args = append(args, filter.Limit)
	fmt.Fprintf(&sb, ` ORDER BY paid_at DESC LIMIT $%d`, len(args))
	return sb.String(), args
}

func (r *PaymentRepository) Summarize(ctx context.Context, userID string) (*payment.Summary, error) {
	query := `
        SELECT
            COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0),
            COALESCE(SUM(amount) FILTER (WHERE status = 'completed' AND receiver_id = $1), 0),
            COALESCE(SUM(amount) FILTER (WHERE status = 'completed' AND payer_id = $1), 0),
            COUNT(*) FILTER (WHERE status = 'completed'),
            COUNT(*) FILTER (WHERE status = 'pending'),
            COUNT(*) FILTER (WHERE status = 'failed'),
            COUNT(*) FILTER (WHERE status = 'cancelled')
        FROM payments
        WHERE payer_id = $1 OR receiver_id = $1`
	status := statusSuccess
	startTime := time.Now()

	var s payment.Summary
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.TotalCompleted, &s.TotalReceived, &s.TotalPaid,
		&s.CompletedCount, &s.PendingCount, &s.FailedCount, &s.CancelledCount,
	)
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("SummarizePayments", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to summarize payments", "user_id", userID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &s, nil
}
