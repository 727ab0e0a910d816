package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2026, 3, 9, 3, 0, 0, 0, time.UTC)

type MockOverdueFinder struct{ mock.Mock }

func (m *MockOverdueFinder) Handle(ctx context.Context, q queries.ListOverdueOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, q)
	views, _ := args.Get(0).([]queries.OrderView)
	return views, args.Error(1)
}

type MockStoreLister struct{ mock.Mock }

func (m *MockStoreLister) Handle(ctx context.Context, q queries.ListStoresQuery) ([]queries.StoreView, error) {
	args := m.Called(ctx, q)
	views, _ := args.Get(0).([]queries.StoreView)
	return views, args.Error(1)
}

type MockSettlementGenerator struct{ mock.Mock }

func (m *MockSettlementGenerator) Handle(
	ctx context.Context,
	cmd commands.GenerateWeeklySettlementCommand,
) (commands.SettlementResult, error) {
	args := m.Called(ctx, cmd)
	return commands.SettlementResult{}, args.Error(0)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestOverdueOrdersJob_Run(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	finder := &MockOverdueFinder{}
	finder.On("Handle", mock.Anything, queries.NewListOverdueOrdersQuery(monday)).
		Return([]queries.OrderView{{ID: first}, {ID: second}}, nil).Once()

	job := NewOverdueOrdersJob(finder, quietLogger())
	job.now = func() time.Time { return monday }

	ids, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{first.String(), second.String()}, ids)
	finder.AssertExpectations(t)
}

func TestOverdueOrdersJob_RunWithoutOverdueOrders(t *testing.T) {
	finder := &MockOverdueFinder{}
	finder.On("Handle", mock.Anything, mock.Anything).Return(nil, nil)

	ids, err := NewOverdueOrdersJob(finder, quietLogger()).Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestOverdueOrdersJob_RunPropagatesQueryError(t *testing.T) {
	boom := errors.New("db down")
	finder := &MockOverdueFinder{}
	finder.On("Handle", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := NewOverdueOrdersJob(finder, quietLogger()).Run(context.Background())

	require.ErrorIs(t, err, boom)
}

func TestWeeklySettlementJob_RunSettlesEveryStoreForPreviousWeek(t *testing.T) {
	storeA, storeB := uuid.New(), uuid.New()
	lister := &MockStoreLister{}
	lister.On("Handle", mock.Anything, mock.Anything).
		Return([]queries.StoreView{{ID: storeA}, {ID: storeB}}, nil)

	var settled []uuid.UUID
	var periods []string
	generator := &MockSettlementGenerator{}
	generator.On("Handle", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			cmd := args.Get(1).(commands.GenerateWeeklySettlementCommand)
			settled = append(settled, cmd.StoreID().Bytes())
			periods = append(periods, cmd.Period().String())
		}).
		Return(nil)

	job := NewWeeklySettlementJob(lister, generator, quietLogger())
	job.now = func() time.Time { return monday }

	created, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, []uuid.UUID{storeA, storeB}, settled)
	want := payment.PreviousWeek(monday).String()
	assert.Equal(t, []string{want, want}, periods)
}

func TestWeeklySettlementJob_RunContinuesAfterFailingStore(t *testing.T) {
	failing, healthy := uuid.New(), uuid.New()
	lister := &MockStoreLister{}
	lister.On("Handle", mock.Anything, mock.Anything).
		Return([]queries.StoreView{{ID: failing}, {ID: healthy}}, nil)

	boom := errors.New("insert failed")
	generator := &MockSettlementGenerator{}
	generator.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.GenerateWeeklySettlementCommand) bool {
		return cmd.StoreID().Bytes() == failing
	})).Return(boom)
	generator.On("Handle", mock.Anything, mock.Anything).Return(nil)

	created, err := NewWeeklySettlementJob(lister, generator, quietLogger()).Run(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, created)
	generator.AssertNumberOfCalls(t, "Handle", 2)
}

func TestSchedules(t *testing.T) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	weekly, err := parser.Parse(WeeklySettlementSchedule)
	require.NoError(t, err)
	sunday := time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 9, 3, 0, 0, 0, time.UTC), weekly.Next(sunday))

	overdue, err := parser.Parse(OverdueOrdersSchedule)
	require.NoError(t, err)
	at := time.Date(2026, 3, 9, 10, 15, 30, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 9, 10, 16, 0, 0, time.UTC), overdue.Next(at))
}

func TestJobManager_StartAndStop(t *testing.T) {
	finder := &MockOverdueFinder{}
	finder.On("Handle", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	jm := NewJobManager(finder, &MockStoreLister{}, &MockSettlementGenerator{}, quietLogger())

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
