package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"treasury/models"
	"treasury/service"

	log "github.com/sirupsen/logrus"
)

// InterestRunWorker runs the three posting phases for one as-of date
type InterestRunWorker struct {
	rates              service.RateResolver
	current            service.CurrentInterestService
	earlyRelease       service.EarlyReleaseService
	fixed              service.FixedInterestService
	runs               service.InterestRunService
	stats              *RunStats
	failOnEntityErrors bool
	now                func() time.Time
}

// NewInterestRunWorker creates a new interest run worker
func NewInterestRunWorker(
	rates service.RateResolver,
	current service.CurrentInterestService,
	earlyRelease service.EarlyReleaseService,
	fixed service.FixedInterestService,
	runs service.InterestRunService,
	stats *RunStats,
	failOnEntityErrors bool,
) *InterestRunWorker {
	return &InterestRunWorker{
		rates:              rates,
		current:            current,
		earlyRelease:       earlyRelease,
		fixed:              fixed,
		runs:               runs,
		stats:              stats,
		failOnEntityErrors: failOnEntityErrors,
		now:                time.Now,
	}
}

// Run resolves the daily rate once, then posts current interest, settles early
// releases and runs the fixed-deposit schedule, in that order. A failing entity
// is recorded and skipped. Errors that affect the whole run are returned
// immediately; the report is nil only when nothing was attempted.
func (w *InterestRunWorker) Run(ctx context.Context, asOf time.Time) (*RunReport, error) {
	started := w.now()
	today := models.DateOf(asOf)

	log.WithField("as_of", today.Format(time.DateOnly)).Info("Starting interest run")

	dailyRate, err := w.rates.CurrentDailyRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve daily rate: %w", err)
	}

	if w.stats != nil {
		w.stats.Reset()
	}

	report := &RunReport{
		AsOf:      today,
		DailyRate: dailyRate,
	}

	phases := []struct {
		phase Phase
		run   func(context.Context, *RunReport) error
	}{
		{PhaseCurrent, w.runCurrentPhase},
		{PhaseEarlyRelease, w.runEarlyReleasePhase},
		{PhaseFixed, w.runFixedPhase},
	}

	for _, p := range phases {
		if err := p.run(ctx, report); err != nil {
			report.Duration = w.now().Sub(started)
			return report, fmt.Errorf("%s phase: %w", p.phase, err)
		}
	}

	if w.stats != nil {
		report.Totals = w.stats.Snapshot()
	}
	report.Duration = w.now().Sub(started)

	w.recordRun(ctx, report)
	w.logSummary(report)

	if report.HasFailures() && w.failOnEntityErrors {
		return report, fmt.Errorf("%w: %d failed", ErrEntityFailures, len(report.Failures))
	}
	return report, nil
}

func (w *InterestRunWorker) runCurrentPhase(ctx context.Context, report *RunReport) error {
	companies, err := w.current.ListActiveCompanies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active companies: %w", err)
	}

	log.Infof("Posting current interest for %d active companies", len(companies))

	for _, company := range companies {
		if err := ctx.Err(); err != nil {
			return err
		}

		report.CompaniesProcessed++
		if _, err := w.current.PostCompany(ctx, company, report.AsOf, report.DailyRate); err != nil {
			report.addFailure(PhaseCurrent, strconv.FormatInt(company.ID, 10), err)
			log.WithFields(log.Fields{
				"company_id": company.ID,
				"error":      err,
			}).Error("Failed to post current interest")
			continue
		}
		report.CurrentPosted++
	}

	return nil
}

func (w *InterestRunWorker) runEarlyReleasePhase(ctx context.Context, report *RunReport) error {
	deposits, err := w.earlyRelease.ListDueReleases(ctx, report.AsOf)
	if err != nil {
		return fmt.Errorf("failed to list due early releases: %w", err)
	}

	log.Infof("Settling %d early-released deposits", len(deposits))

	for _, deposit := range deposits {
		if err := ctx.Err(); err != nil {
			return err
		}

		report.ReleasesDue++
		result, err := w.earlyRelease.Settle(ctx, deposit, report.AsOf, report.DailyRate)
		if err != nil {
			report.addFailure(PhaseEarlyRelease, deposit.DepositCode, err)
			log.WithFields(log.Fields{
				"deposit_code": deposit.DepositCode,
				"error":        err,
			}).Error("Failed to settle early release")
			continue
		}

		switch result.Outcome {
		case service.EarlyReleaseSettled:
			report.EarlyReleaseSettled++
		case service.EarlyReleaseAlreadySettled:
			report.EarlyReleaseAlreadySettled++
		}
	}

	return nil
}

func (w *InterestRunWorker) runFixedPhase(ctx context.Context, report *RunReport) error {
	deposits, err := w.fixed.ListAccrualCandidates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list fixed deposits: %w", err)
	}

	log.Infof("Checking %d fixed deposits for scheduled postings", len(deposits))

	for _, deposit := range deposits {
		if err := ctx.Err(); err != nil {
			return err
		}

		report.DepositsConsidered++
		result, err := w.fixed.Accrue(ctx, deposit, report.AsOf, report.DailyRate)
		if err != nil {
			report.addFailure(PhaseFixed, deposit.DepositCode, err)
			log.WithFields(log.Fields{
				"deposit_code": deposit.DepositCode,
				"error":        err,
			}).Error("Failed to accrue fixed interest")
			continue
		}

		switch result.Outcome {
		case service.FixedAccrualPosted:
			report.FixedPosted++
		case service.FixedAccrualAlreadyPosted:
			report.FixedAlreadyPosted++
		case service.FixedAccrualNotDue:
			report.FixedNotDue++
		case service.FixedAccrualIneligible:
			report.FixedIneligible++
		}
	}

	return nil
}

// recordRun persists the summary. The postings are already committed, so a
// failure here is logged and does not fail the run.
func (w *InterestRunWorker) recordRun(ctx context.Context, report *RunReport) {
	if w.runs == nil {
		return
	}

	if err := w.runs.RecordRun(ctx, buildInterestRun(report)); err != nil {
		log.WithError(err).Error("Failed to record interest run summary")
	}
}

func buildInterestRun(report *RunReport) *models.InterestRun {
	status := models.InterestRunStatusCompleted
	if report.HasFailures() {
		status = models.InterestRunStatusCompletedWithErrors
	}

	failed := make(map[string]interface{})
	for phase, ids := range report.FailedIDs() {
		failed[string(phase)] = ids
	}

	totals := report.Totals
	return &models.InterestRun{
		RunDate:                   report.AsOf,
		DailyRate:                 report.DailyRate,
		Status:                    status,
		CurrentPostings:           totals.CurrentPostings,
		FixedPostings:             totals.FixedPostings,
		EarlyReleasePostings:      totals.EarlyReleasePostings,
		TotalCurrentInterest:      totals.TotalCurrentInterest,
		TotalFixedInterest:        totals.TotalFixedInterest,
		TotalEarlyReleaseInterest: totals.TotalEarlyReleaseInterest,
		FailedEntities:            len(report.Failures),
		ExecutionSummary: map[string]interface{}{
			"companies_processed":           report.CompaniesProcessed,
			"releases_due":                  report.ReleasesDue,
			"early_release_already_settled": report.EarlyReleaseAlreadySettled,
			"deposits_considered":           report.DepositsConsidered,
			"fixed_already_posted":          report.FixedAlreadyPosted,
			"fixed_not_due":                 report.FixedNotDue,
			"fixed_ineligible":              report.FixedIneligible,
			"final_fixed_postings":          totals.FinalFixedPostings,
			"failed":                        failed,
			"duration_ms":                   report.Duration.Milliseconds(),
		},
	}
}

func (w *InterestRunWorker) logSummary(report *RunReport) {
	fields := log.Fields{
		"as_of":                report.AsOf.Format(time.DateOnly),
		"daily_rate":           report.DailyRate.String(),
		"current_posted":       report.CurrentPosted,
		"early_release_posted": report.EarlyReleaseSettled,
		"fixed_posted":         report.FixedPosted,
		"fixed_not_due":        report.FixedNotDue,
		"failed":               len(report.Failures),
		"duration":             report.Duration.String(),
	}
	if report.HasFailures() {
		fields["failed_ids"] = report.FailedIDs()
		log.WithFields(fields).Warn("Interest run completed with failures")
		return
	}
	log.WithFields(fields).Info("Interest run completed")
}
