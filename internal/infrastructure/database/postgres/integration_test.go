//go:build integration
// +build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"peer-lending/internal/config"
	"peer-lending/internal/domain/creditor"
	"peer-lending/internal/domain/loan"
	"peer-lending/internal/domain/notification"
	"peer-lending/internal/domain/payment"
	"peer-lending/internal/pkg/apperrors"
	"peer-lending/migrations"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL container, applies the embedded migrations and returns a pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "lending_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://test:test@%s:%s/lending_test?sslmode=disable", host, port.Port())
	require.NoError(t, RunMigrations(migrations.FS, url, logger))

	pool, err := NewConnectionPool(ctx, config.DatabaseConfig{URL: url}, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestIntegration_LoanLifecycle(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	loans := NewLoanRepository(pool, logger)
	payments := NewPaymentRepository(pool, logger)
	notifications := NewNotificationRepository(pool, logger)

	created := time.Now().UTC().AddDate(-3, 0, 0).Truncate(time.Microsecond)
	l, err := loan.NewApplication(loan.CreateInput{
		ApplicantID:      "alice",
		CreditorID:       "bob",
		Amount:           decimal.RequireFromString("5000"),
		TermMonths:       24,
		InterestRate:     decimal.RequireFromString("5"),
		Purpose:          "Home renovation",
		CreditHistory:    "good payment history",
		MarketConditions: "stable",
	}, created)
	require.NoError(t, err)
	require.NoError(t, loans.Create(ctx, l))

	t.Run("duplicate insert is rejected", func(t *testing.T) {
		assert.ErrorIs(t, loans.Create(ctx, l), apperrors.ErrAlreadyExists)
	})

	t.Run("modification round trip", func(t *testing.T) {
		modified := l.Clone()
		require.NoError(t, modified.ProposeModification(loan.ModificationOffer{Terms: "18 months at 7%", RequiresCoMaker: true}))
		modified.UpdatedAt = created.Add(time.Hour)
		require.NoError(t, loans.UpdateStatus(ctx, modified, loan.StatusPending))

		stored, err := loans.GetByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, loan.StatusModified, stored.Status)
		require.NotNil(t, stored.Modification)
		assert.Equal(t, "18 months at 7%", stored.Modification.Terms)
		assert.True(t, stored.Amount.Equal(l.Amount))

		// a second writer still expecting pending loses
		stale := l.Clone()
		require.NoError(t, stale.Reject())
		assert.ErrorIs(t, loans.UpdateStatus(ctx, stale, loan.StatusPending), apperrors.ErrConflict)

		accepted := stored.Clone()
		require.NoError(t, accepted.AcceptModification())
		require.NoError(t, loans.UpdateStatus(ctx, accepted, loan.StatusModified))
	})

	t.Run("overdue detection accounts for completed payments", func(t *testing.T) {
		p := &payment.Payment{
			ID: uuid.NewString(), LoanID: l.ID, PayerID: "alice", ReceiverID: "bob",
			Amount: decimal.RequireFromString("1000"), Method: payment.MethodCash, Status: payment.StatusCompleted,
			PaidAt: created, CreatedAt: created,
		}
		require.NoError(t, payments.Save(ctx, p))

		overdue, err := loans.ListOverdue(ctx, time.Now())
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.True(t, overdue[0].PaidAmount.Equal(decimal.RequireFromString("1000")))

		summary, err := payments.Summarize(ctx, "bob")
		require.NoError(t, err)
		assert.True(t, summary.TotalReceived.Equal(decimal.RequireFromString("1000")))
		assert.Equal(t, 1, summary.CompletedCount)
	})

	t.Run("notifications are scoped to their recipient", func(t *testing.T) {
		n := &notification.Notification{
			ID: uuid.NewString(), RecipientID: "bob", LoanID: l.ID,
			Type: notification.TypeNewLoanRequest, Message: "New loan request received.", CreatedAt: created,
		}
		require.NoError(t, notifications.Save(ctx, n))

		assert.ErrorIs(t, notifications.MarkRead(ctx, n.ID, "alice"), apperrors.ErrNotFound)
		require.NoError(t, notifications.MarkRead(ctx, n.ID, "bob"))

		unread, err := notifications.CountUnread(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, 0, unread)

		list, err := notifications.ListByRecipient(ctx, "bob", 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].Read)
	})

	t.Run("missing loan", func(t *testing.T) {
		_, err := loans.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("malformed ids are not found", func(t *testing.T) {
		_, err := loans.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.ErrorIs(t, notifications.Delete(ctx, "xyz", "bob"), apperrors.ErrNotFound)
	})

	t.Run("creditor network carries loan totals", func(t *testing.T) {
		creditors := NewCreditorRepository(pool, logger)
		c, err := creditor.New("alice", creditor.AddInput{
			UserID:  "bob",
			Profile: creditor.Profile{Name: "Bob Lender", Email: "bob@example.com"},
		}, created)
		require.NoError(t, err)
		require.NoError(t, creditors.Create(ctx, c))
		assert.ErrorIs(t, creditors.Create(ctx, c), apperrors.ErrAlreadyExists)

		ok, err := creditors.IsApproved(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = creditors.IsApproved(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.False(t, ok)

		stored, err := creditors.GetByID(ctx, "alice", c.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.TotalLoans)
		assert.True(t, stored.TotalAmount.Equal(l.Amount))

		require.NoError(t, stored.Rate(4, created))
		require.NoError(t, creditors.Update(ctx, stored))
		list, err := creditors.List(ctx, "alice", creditor.ListFilter{Band: creditor.BandHigh, Search: "lend", Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 1)

		summary, err := creditors.Summarize(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Approved)
		assert.True(t, summary.AverageRating.Equal(decimal.NewFromInt(4)))

		_, err = creditors.GetByID(ctx, "mallory", c.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		require.NoError(t, creditors.Delete(ctx, "alice", c.ID))
	})
}
