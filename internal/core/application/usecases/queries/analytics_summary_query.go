package queries

import (
	"context"
	"errors"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/core/domain/services"
	"montarota/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrAnalyticsSummaryQueryIsNotConstructed = errors.New(
	"AnalyticsSummaryQuery must be created via NewAnalyticsSummaryQuery constructor",
)

// AnalyticsSummaryQuery summarizes the delivered orders of one store for the UTC
// day and the calendar month containing now.
type AnalyticsSummaryQuery struct {
	storeID kernel.UUID
	now     time.Time
	guard   guard.ConstructorGuard
}

func NewAnalyticsSummaryQuery(storeID kernel.UUID, now time.Time) (AnalyticsSummaryQuery, error) {
	if err := storeID.Validate(); err != nil {
		return AnalyticsSummaryQuery{}, err
	}
	return AnalyticsSummaryQuery{storeID: storeID, now: now.UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (q AnalyticsSummaryQuery) Validate() error {
	return q.guard.Validate(ErrAnalyticsSummaryQueryIsNotConstructed)
}

type AnalyticsWindow struct {
	TotalOrders int    `json:"total_orders"`
	FeeRevenue  string `json:"fee_revenue"`
}

type AnalyticsSummary struct {
	Today            AnalyticsWindow              `json:"today"`
	Month            AnalyticsWindow              `json:"month"`
	TopNeighborhoods []services.NeighborhoodCount `json:"top_neighborhoods"`
	Suggestion       string                       `json:"suggestion"`
}

// AnalyticsSummaryQueryHandler charges orders stored without a fee the fallback fee,
// the same way settlements do.
type AnalyticsSummaryQueryHandler struct {
	db     *gorm.DB
	fees   services.SettlementCalculator
	ranker services.NeighborhoodRanker
}

func NewAnalyticsSummaryQueryHandler(db *gorm.DB, fallbackFee kernel.Money) AnalyticsSummaryQueryHandler {
	return AnalyticsSummaryQueryHandler{
		db:     db,
		fees:   services.NewSettlementCalculator(fallbackFee),
		ranker: services.NewNeighborhoodRanker(),
	}
}

type deliveredRow struct {
	PlatformFee          decimal.Decimal
	CustomerNeighborhood string
	CreatedAt            time.Time
}

func (h AnalyticsSummaryQueryHandler) Handle(ctx context.Context, query AnalyticsSummaryQuery) (AnalyticsSummary, error) {
	if err := query.Validate(); err != nil {
		return AnalyticsSummary{}, err
	}

	dayStart, dayEnd := dayWindow(query.now)
	monthStart := time.Date(dayStart.Year(), dayStart.Month(), 1, 0, 0, 0, 0, time.UTC)

	var rows []deliveredRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT platform_fee, customer_neighborhood, created_at
		FROM orders
		WHERE store_id = ? AND status = ? AND created_at >= ? AND created_at < ?
		ORDER BY created_at
	`, query.storeID.Bytes(), order.Delivered.String(), monthStart, dayEnd).Scan(&rows).Error
	if err != nil {
		return AnalyticsSummary{}, err
	}

	monthFees := make([]kernel.Money, 0, len(rows))
	todayFees := make([]kernel.Money, 0)
	todayNeighborhoods := make([]string, 0)
	for _, r := range rows {
		fee, feeErr := kernel.NewMoney(r.PlatformFee)
		if feeErr != nil {
			return AnalyticsSummary{}, feeErr
		}
		monthFees = append(monthFees, fee)
		if !r.CreatedAt.Before(dayStart) {
			todayFees = append(todayFees, fee)
			todayNeighborhoods = append(todayNeighborhoods, r.CustomerNeighborhood)
		}
	}

	ranking := h.ranker.Rank(todayNeighborhoods)
	return AnalyticsSummary{
		Today:            h.window(todayFees),
		Month:            h.window(monthFees),
		TopNeighborhoods: ranking,
		Suggestion:       h.ranker.Suggestion(ranking),
	}, nil
}

func (h AnalyticsSummaryQueryHandler) window(fees []kernel.Money) AnalyticsWindow {
	count, total := h.fees.Total(fees)
	return AnalyticsWindow{TotalOrders: count, FeeRevenue: total.String()}
}
