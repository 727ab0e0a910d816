package jobs

import (
	"context"
	"log/slog"
	"time"

	"montarota/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// OverdueOrdersSchedule fires at second zero of every minute.
const OverdueOrdersSchedule = "0 * * * * *"

// OverdueOrdersFinder is satisfied by queries.ListOverdueOrdersQueryHandler.
type OverdueOrdersFinder interface {
	Handle(ctx context.Context, query queries.ListOverdueOrdersQuery) ([]queries.OrderView, error)
}

// OverdueOrdersJob reports open orders that passed their expected delivery time.
// It only logs; nobody is notified.
type OverdueOrdersJob struct {
	finder OverdueOrdersFinder
	cron   *cron.Cron
	logger *slog.Logger
	now    func() time.Time
}

func NewOverdueOrdersJob(finder OverdueOrdersFinder, logger *slog.Logger) *OverdueOrdersJob {
	return &OverdueOrdersJob{
		finder: finder,
		cron:   cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC)),
		logger: logger.With("component", "overdue_orders_job"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run performs one scan and returns the ids of the overdue orders.
func (j *OverdueOrdersJob) Run(ctx context.Context) ([]string, error) {
	orders, err := j.finder.Handle(ctx, queries.NewListOverdueOrdersQuery(j.now()))
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID.String())
	}
	j.logger.WarnContext(ctx, "Orders past expected delivery", "count", len(ids), "order_ids", ids)
	return ids, nil
}

func (j *OverdueOrdersJob) Start() error {
	_, err := j.cron.AddFunc(OverdueOrdersSchedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Overdue orders job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue orders job started", "schedule", OverdueOrdersSchedule)
	return nil
}

// Stop waits for a running scan to finish.
func (j *OverdueOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue orders job stopped")
}
