package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"peer-lending/internal/domain/creditor"
	"peer-lending/internal/domain/loan"
	"peer-lending/internal/infrastructure/monitoring"
	"peer-lending/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

// creditorColumns adds each member's loan totals with the owner as applicant.
const creditorColumns = `c.id, c.owner_id, c.user_id, c.name, c.email, c.phone, c.company, c.address, c.notes,
        c.status, c.rating, c.created_at, c.updated_at,
        COUNT(l.id) AS total_loans,
        COALESCE(SUM(l.amount) FILTER (WHERE l.status = 'approved'), 0) AS total_amount`

const creditorFrom = `FROM creditors c
        LEFT JOIN loan_applications l ON l.applicant_id = c.owner_id AND l.creditor_id = c.user_id`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type CreditorRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ creditor.Repository = (*CreditorRepository)(nil)

func NewCreditorRepository(db DBPool, logger *slog.Logger) *CreditorRepository {
	return &CreditorRepository{db: db, logger: logger.With("component", "CreditorRepository")}
}

func (r *CreditorRepository) Create(ctx context.Context, c *creditor.Creditor) error {
	query := `
        INSERT INTO creditors (id, owner_id, user_id, name, email, phone, company, address, notes, status, rating, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	status := statusSuccess
	startTime := time.Now()

	p := c.Profile
	_, err := r.db.Exec(ctx, query,
		c.ID, c.OwnerID, c.UserID, p.Name, p.Email, p.Phone, p.Company, p.Address, p.Notes,
		string(c.Status), c.Rating, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("CreateCreditor", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert creditor", "creditor_id", c.ID, "owner_id", c.OwnerID, "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *CreditorRepository) GetByID(ctx context.Context, ownerID, id string) (*creditor.Creditor, error) {
	query := `SELECT ` + creditorColumns + ` ` + creditorFrom + `
        WHERE c.owner_id = $1 AND c.id = $2
        GROUP BY c.id`
	status := statusSuccess
	startTime := time.Now()

	c, err := scanCreditor(r.db.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("GetCreditorByID", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Creditor not found for owner", "creditor_id", id, "owner_id", ownerID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get creditor by ID", "creditor_id", id, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	return c, nil
}

func (r *CreditorRepository) List(ctx context.Context, ownerID string, filter creditor.ListFilter) ([]*creditor.Creditor, error) {
	query, args := buildCreditorListQuery(ownerID, filter)
	status := statusSuccess
	startTime := time.Now()
	defer func() {
		monitoring.RecordDBQuery("ListCreditors", status, time.Since(startTime))
	}()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		status = statusError
		r.logger.ErrorContext(ctx, "Failed to query creditors", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	creditors := make([]*creditor.Creditor, 0)
	for rows.Next() {
		c, err := scanCreditor(rows)
		if err != nil {
			status = statusError
			r.logger.ErrorContext(ctx, "Failed to scan creditor row", "owner_id", ownerID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		creditors = append(creditors, c)
	}
	if err := rows.Err(); err != nil {
		status = statusError
		r.logger.ErrorContext(ctx, "Error iterating creditor rows", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return creditors, nil
}

func buildCreditorListQuery(ownerID string, filter creditor.ListFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + creditorColumns + ` ` + creditorFrom + ` WHERE c.owner_id = $1`)
	args := []any{ownerID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		fmt.Fprintf(&sb, ` AND c.status = $%d`, len(args))
	}
	if filter.Band != "" {
		lo, hi := filter.Band.Bounds()
		args = append(args, lo, hi)
		fmt.Fprintf(&sb, ` AND c.rating >= $%d AND c.rating < $%d`, len(args)-1, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
		n := len(args)
		fmt.Fprintf(&sb, ` AND (c.name ILIKE $%d OR c.email ILIKE $%d OR c.company ILIKE $%d)`, n, n, n)
	}

	args = append(args, filter.Limit)
	fmt.Fprintf(&sb, ` GROUP BY c.id ORDER BY c.name ASC LIMIT $%d`, len(args))
	return sb.String(), args
}

func (r *CreditorRepository) Summarize(ctx context.Context, ownerID string) (*creditor.Summary, error) {
	query := `
        SELECT
            COUNT(DISTINCT c.id),
            COUNT(DISTINCT c.id) FILTER (WHERE c.status = 'approved'),
            COUNT(DISTINCT c.id) FILTER (WHERE c.status = 'pending'),
            COUNT(l.id),
            COALESCE(SUM(l.amount) FILTER (WHERE l.status = $2), 0),
            COALESCE((SELECT AVG(rating) FROM creditors WHERE owner_id = $1), 0)
        FROM creditors c
        LEFT JOIN loan_applications l ON l.applicant_id = c.owner_id AND l.creditor_id = c.user_id
        WHERE c.owner_id = $1`
	status := statusSuccess
	startTime := time.Now()

	var s creditor.Summary
	err := r.db.QueryRow(ctx, query, ownerID, string(loan.StatusApproved)).Scan(
		&s.Total, &s.Approved, &s.Pending, &s.TotalLoans, &s.TotalAmount, &s.AverageRating,
	)
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("SummarizeCreditors", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to summarize creditors", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &s, nil
}

func (r *CreditorRepository) Update(ctx context.Context, c *creditor.Creditor) error {
	query := `
        UPDATE creditors
        SET name = $1, email = $2, phone = $3, company = $4, address = $5, notes = $6, status = $7, rating = $8, updated_at = $9
        WHERE id = $10 AND owner_id = $11`
	p := c.Profile
	return r.execOwned(ctx, "UpdateCreditor", query,
		p.Name, p.Email, p.Phone, p.Company, p.Address, p.Notes, string(c.Status), c.Rating, c.UpdatedAt, c.ID, c.OwnerID)
}

func (r *CreditorRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM creditors WHERE id = $1 AND owner_id = $2`
	return r.execOwned(ctx, "DeleteCreditor", query, id, ownerID)
}

// execOwned runs a statement whose WHERE clause scopes it to one owner's member. Touching no row
// means the member does not exist in that network.
func (r *CreditorRepository) execOwned(ctx context.Context, name, query string, args ...any) error {
	status := statusSuccess
	startTime := time.Now()

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery(name, status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Creditor statement failed", "operation", name, "error", err)
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Creditor not found for owner", "operation", name)
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CreditorRepository) IsApproved(ctx context.Context, ownerID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM creditors WHERE owner_id = $1 AND user_id = $2 AND status = $3)`
	status := statusSuccess
	startTime := time.Now()

	var approved bool
	err := r.db.QueryRow(ctx, query, ownerID, userID, string(creditor.StatusApproved)).Scan(&approved)
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("IsApprovedCreditor", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to check creditor approval", "owner_id", ownerID, "user_id", userID, "error", err)
		return false, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return approved, nil
}

func scanCreditor(row rowScanner) (*creditor.Creditor, error) {
	var (
		c      creditor.Creditor
		status string
	)
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.UserID,
		&c.Profile.Name, &c.Profile.Email, &c.Profile.Phone, &c.Profile.Company, &c.Profile.Address, &c.Profile.Notes,
		&status, &c.Rating, &c.CreatedAt, &c.UpdatedAt,
		&c.TotalLoans, &c.TotalAmount,
	)
	if err != nil {
		return nil, err
	}
	c.Status = creditor.Status(status)
	return &c, nil
}
