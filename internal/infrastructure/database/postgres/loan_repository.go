package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"peer-lending/internal/domain/loan"
	"peer-lending/internal/domain/payment"
	"peer-lending/internal/infrastructure/monitoring"
	"peer-lending/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const loanColumns = `id, applicant_id, creditor_id, amount, term_months, interest_rate, purpose, status,
        application_date, due_date, credit_history, market_conditions,
        COALESCE(modified_terms, ''), COALESCE(requires_co_maker, FALSE), COALESCE(requires_documents, FALSE),
        created_at, updated_at`

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) Create(ctx context.Context, l *loan.Application) error {
	query := `
        INSERT INTO loan_applications (id, applicant_id, creditor_id, amount, term_months, interest_rate, purpose, status,
            application_date, due_date, credit_history, market_conditions, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	status := statusSuccess
	startTime := time.Now()

	_, err := r.db.Exec(ctx, query,
		l.ID, l.ApplicantID, l.CreditorID, l.Amount, l.TermMonths, l.InterestRate, l.Purpose, string(l.Status),
		l.Date, l.DueDate, l.CreditHistory, l.MarketConditions, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("CreateLoanApplication", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan application", "loan_id", l.ID, "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *LoanRepository) GetByID(ctx context.Context, loanID string) (*loan.Application, error) {
	query := `SELECT ` + loanColumns + ` FROM loan_applications WHERE id = $1`
	status := statusSuccess
	startTime := time.Now()

	l, err := scanLoan(r.db.QueryRow(ctx, query, loanID))
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("GetLoanApplicationByID", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan application not found", "loan_id", loanID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get loan application by ID", "loan_id", loanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	return l, nil
}

func (r *LoanRepository) ListByParty(ctx context.Context, userID string, filter loan.ListFilter) ([]*loan.Application, error) {
	query, args := buildLoanListQuery(userID, filter)
	status := statusSuccess
	startTime := time.Now()
	defer func() {
		monitoring.RecordDBQuery("ListLoanApplicationsByParty", status, time.Since(startTime))
	}()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		status = statusError
		r.logger.ErrorContext(ctx, "Failed to query loan applications", "user_id", userID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans := make([]*loan.Application, 0)
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			status = statusError
			r.logger.ErrorContext(ctx, "Failed to scan loan application row", "user_id", userID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		status = statusError
		r.logger.ErrorContext(ctx, "Error iterating loan application rows", "user_id", userID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return loans, nil
}

func buildLoanListQuery(userID string, filter loan.ListFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + loanColumns + ` FROM loan_applications WHERE `)
	args := []any{userID}

	switch filter.Role {
	case loan.RoleApplicant:
		sb.WriteString(`applicant_id = $1`)
	case loan.RoleCreditor:
		sb.WriteString(`creditor_id = $1`)
	default:
		sb.WriteString(`(applicant_id = $1 OR creditor_id = $1)`)
	}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		fmt.Fprintf(&sb, ` AND status = $%d`, len(args))
	}

	args = append(args, filter.Limit)
	fmt.Fprintf(&sb, ` ORDER BY application_date DESC LIMIT $%d`, len(args))
	return sb.String(), args
}

func (r *LoanRepository) UpdateStatus(ctx context.Context, l *loan.Application, expected loan.Status) error {
	query := `
        UPDATE loan_applications
        SET status = $1, modified_terms = $2, requires_co_maker = $3, requires_documents = $4, updated_at = $5
        WHERE id = $6 AND status = $7`
	status := statusSuccess
	startTime := time.Now()

	var terms, coMaker, documents any
	if l.Modification != nil {
		terms = l.Modification.Terms
		coMaker = l.Modification.RequiresCoMaker
		documents = l.Modification.RequiresDocuments
	}

	cmdTag, err := r.db.Exec(ctx, query, string(l.Status), terms, coMaker, documents, l.UpdatedAt, l.ID, string(expected))
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("UpdateLoanApplicationStatus", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update loan application status", "loan_id", l.ID, "error", err)
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 1 {
		return nil
	}

	exists, err := r.exists(ctx, l.ID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	r.logger.WarnContext(ctx, "Loan application status changed concurrently", "loan_id", l.ID, "expected_status", expected)
	return fmt.Errorf("%w: loan %s is no longer %s", apperrors.ErrConflict, l.ID, expected)
}

func (r *LoanRepository) exists(ctx context.Context, loanID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM loan_applications WHERE id = $1)`, loanID).Scan(&exists); err != nil {
		r.logger.ErrorContext(ctx, "Failed to check loan application existence", "loan_id", loanID, "error", err)
		return false, translateDBError(err, r.logger)
	}
	return exists, nil
}

// ListOverdue returns approved loans whose due date is before asOf and whose completed payments
// do not yet cover the principal.
func (r *LoanRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*loan.OverdueLoan, error) {
	query := `
        SELECT l.id, l.applicant_id, l.creditor_id, l.amount, l.term_months, l.interest_rate, l.purpose, l.status,
            l.application_date, l.due_date, l.credit_history, l.market_conditions,
            COALESCE(l.modified_terms, ''), COALESCE(l.requires_co_maker, FALSE), COALESCE(l.requires_documents, FALSE),
            l.created_at, l.updated_at,
            COALESCE(SUM(p.amount) FILTER (WHERE p.status = $3), 0) AS paid_amount
        FROM loan_applications l
        LEFT JOIN payments p ON p.loan_id = l.id
        WHERE l.status = $1 AND l.due_date < $2
        GROUP BY l.id
        HAVING COALESCE(SUM(p.amount) FILTER (WHERE p.status = $3), 0) < l.amount
        ORDER BY l.due_date ASC`
	status := statusSuccess
	startTime := time.Now()
	defer func() {
		monitoring.RecordDBQuery("ListOverdueLoans", status, time.Since(startTime))
	}()

	rows, err := r.db.Query(ctx, query, string(loan.StatusApproved), asOf, string(payment.StatusCompleted))
	if err != nil {
		status = statusError
		r.logger.ErrorContext(ctx, "Failed to query overdue loans", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	overdue := make([]*loan.OverdueLoan, 0)
	for rows.Next() {
		var paid decimal.Decimal
		l, err := scanLoan(rows, &paid)
		if err != nil {
			status = statusError
			r.logger.ErrorContext(ctx, "Failed to scan overdue loan row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		overdue = append(overdue, &loan.OverdueLoan{Application: l, PaidAmount: paid})
	}
	if err := rows.Err(); err != nil {
		status = statusError
		r.logger.ErrorContext(ctx, "Error iterating overdue loan rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return overdue, nil
}

// scanLoan reads the loanColumns projection, followed by any extra destinations.
func scanLoan(row rowScanner, extra ...any) (*loan.Application, error) {
	var (
		l                  loan.Application
		status             string
		terms              string
		coMaker, documents bool
	)
	dest := []any{
		&l.ID, &l.ApplicantID, &l.CreditorID, &l.Amount, &l.TermMonths, &l.InterestRate, &l.Purpose, &status,
		&l.Date, &l.DueDate, &l.CreditHistory, &l.MarketConditions,
		&terms, &coMaker, &documents,
		&l.CreatedAt, &l.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	l.Status = loan.Status(status)
	if l.Status == loan.StatusModified && terms != "" {
		l.Modification = &loan.ModificationOffer{
			Terms:             terms,
			RequiresCoMaker:   coMaker,
			RequiresDocuments: documents,
		}
	}
	return &l, nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		case "23503":
			contextLogger.Warn("Database foreign key violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrNotFound, pgErr.ConstraintName)
		case "23514":
			contextLogger.Warn("Database check constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, pgErr.ConstraintName)
		case "22P02":
			// A malformed UUID can never match a row.
			contextLogger.Warn("Database rejected malformed text representation", "message", pgErr.Message)
			return fmt.Errorf("%w: %s", apperrors.ErrNotFound, pgErr.Message)
		case "22003":
			contextLogger.Warn("Database numeric value out of range", "message", pgErr.Message)
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, pgErr.Message)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
