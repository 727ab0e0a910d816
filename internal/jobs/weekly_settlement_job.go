package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/payment"

	"github.com/robfig/cron/v3"
)

// WeeklySettlementSchedule fires Mondays at 03:00 UTC.
const WeeklySettlementSchedule = "0 0 3 * * 1"

// StoreLister is satisfied by queries.ListStoresQueryHandler, which returns active stores only.
type StoreLister interface {
	Handle(ctx context.Context, query queries.ListStoresQuery) ([]queries.StoreView, error)
}

// SettlementGenerator is satisfied by *commands.GenerateWeeklySettlementCommandHandler.
type SettlementGenerator interface {
	Handle(ctx context.Context, cmd commands.GenerateWeeklySettlementCommand) (commands.SettlementResult, error)
}

// WeeklySettlementJob settles the previous Monday to Sunday week for every
// active store. A failing store is logged and skipped.
type WeeklySettlementJob struct {
	stores    StoreLister
	generator SettlementGenerator
	cron      *cron.Cron
	logger    *slog.Logger
	now       func() time.Time
}

func NewWeeklySettlementJob(stores StoreLister, generator SettlementGenerator, logger *slog.Logger) *WeeklySettlementJob {
	return &WeeklySettlementJob{
		stores:    stores,
		generator: generator,
		cron:      cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC)),
		logger:    logger.With("component", "weekly_settlement_job"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run generates one settlement per active store and returns how many were created.
func (j *WeeklySettlementJob) Run(ctx context.Context) (int, error) {
	stores, err := j.stores.Handle(ctx, queries.NewListStoresQuery())
	if err != nil {
		return 0, err
	}

	period := payment.PreviousWeek(j.now())
	var (
		created int
		errList []error
	)
	for _, s := range stores {
		if err = j.settle(ctx, s, period); err != nil {
			j.logger.ErrorContext(ctx, "Weekly settlement failed", "store_id", s.ID, "period", period.String(), "error", err)
			errList = append(errList, fmt.Errorf("store %s: %w", s.ID, err))
			continue
		}
		created++
	}

	j.logger.InfoContext(ctx, "Weekly settlements generated", "period", period.String(), "created", created,
		"failed", len(errList))
	return created, errors.Join(errList...)
}

func (j *WeeklySettlementJob) settle(ctx context.Context, s queries.StoreView, period payment.Period) error {
	storeID, err := kernel.UUIDFromBytes(s.ID[:])
	if err != nil {
		return err
	}
	cmd, err := commands.NewGenerateWeeklySettlementCommand(kernel.NewUUID(), storeID, period)
	if err != nil {
		return err
	}
	_, err = j.generator.Handle(ctx, cmd)
	return err
}

func (j *WeeklySettlementJob) Start() error {
	_, err := j.cron.AddFunc(WeeklySettlementSchedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Weekly settlement job finished with errors", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Weekly settlement job started", "schedule", WeeklySettlementSchedule)
	return nil
}

// Stop waits for a running settlement pass to finish.
func (j *WeeklySettlementJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Weekly settlement job stopped")
}
