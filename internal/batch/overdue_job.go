package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"peer-lending/internal/domain/loan"
	"peer-lending/internal/event"
	"peer-lending/internal/infrastructure/monitoring"
)

const hoursPerDay = 24

// OverdueLoanLister is the slice of the loan repository the job needs.
type OverdueLoanLister interface {
	ListOverdue(ctx context.Context, asOf time.Time) ([]*loan.OverdueLoan, error)
}

// OverdueLoanJob reports approved loans whose due date has passed without full repayment.
// It only publishes events and updates the gauge; loan records are never changed.
type OverdueLoanJob struct {
	loans  OverdueLoanLister
	pub    event.EventPublisher
	now    func() time.Time
	logger *slog.Logger
}

func NewOverdueLoanJob(loans OverdueLoanLister, pub event.EventPublisher, logger *slog.Logger) *OverdueLoanJob {
	if loans == nil || pub == nil || logger == nil {
		panic("OverdueLoanJob dependencies cannot be nil")
	}
	return &OverdueLoanJob{
		loans:  loans,
		pub:    pub,
		now:    time.Now,
		logger: logger.With("job", "OverdueLoanCheck"),
	}
}

func (j *OverdueLoanJob) Run(ctx context.Context) error {
	startTime := time.Now()
	asOf := j.now().UTC()
	j.logger.InfoContext(ctx, "Starting overdue loan check.", slog.Time("as_of", asOf))

	overdue, err := j.loans.ListOverdue(ctx, asOf)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list overdue loans, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list overdue loans: %w", err)
	}
	monitoring.SetOverdueLoans(len(overdue))

	var published, errorCount int
	for _, o := range overdue {
		if ctx.Err() != nil {
			j.logger.WarnContext(ctx, "Overdue loan check cancelled.", slog.Any("error", ctx.Err()))
			return ctx.Err()
		}

		app := o.Application
		logCtx := j.logger.With(slog.String("loanID", app.ID))
		evt := event.LoanOverdueEvent{
			LoanID:      app.ID,
			ApplicantID: app.ApplicantID,
			CreditorID:  app.CreditorID,
			Amount:      app.Amount.StringFixed(2),
			PaidAmount:  o.PaidAmount.StringFixed(2),
			DueDate:     app.DueDate,
			DaysOverdue: daysBetween(app.DueDate, asOf),
			Timestamp:   asOf,
		}
		if err := j.pub.PublishLoanOverdue(ctx, evt); err != nil {
			logCtx.ErrorContext(ctx, "Failed to publish loan overdue event", slog.Any("error", err))
			errorCount++
			continue
		}
		logCtx.DebugContext(ctx, "Published loan overdue event.", slog.Int("days_overdue", evt.DaysOverdue))
		published++
	}

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("overdue_loans", len(overdue)),
		slog.Int("events_published", published),
		slog.Int("errors_encountered", errorCount),
	)
	if errorCount > 0 {
		summaryLog.WarnContext(ctx, "Overdue loan check finished with errors.")
		return fmt.Errorf("job completed with %d errors", errorCount)
	}
	summaryLog.InfoContext(ctx, "Overdue loan check finished successfully.")
	return nil
}

// daysBetween counts whole days from due to asOf, never less than zero.
func daysBetween(due, asOf time.Time) int {
	d := asOf.Sub(due)
	if d <= 0 {
		return 0
	}
	return int(d.Hours()) / hoursPerDay
}
