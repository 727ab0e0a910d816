// Package http exposes the use cases as a JSON API on echo. Handlers bind and
// validate input, build commands or queries, and render views; errors flow to
// NewErrorHandler.
package http

import (
	"time"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/events"
)

// Commands groups the write use cases.
type Commands struct {
	RegisterUser             commands.RegisterUserCommandHandler
	Login                    commands.LoginCommandHandler
	CreateStore              commands.CreateStoreCommandHandler
	UpdateStore              commands.UpdateStoreCommandHandler
	CreateCourier            commands.CreateCourierCommandHandler
	ChangeCourierStatus      commands.ChangeCourierStatusCommandHandler
	RecordCourierPosition    commands.RecordCourierPositionCommandHandler
	CreateOrder              commands.CreateOrderCommandHandler
	ChangeOrderStatus        commands.ChangeOrderStatusCommandHandler
	ConfirmDelivery          commands.ConfirmDeliveryCommandHandler
	AssembleRoute            commands.AssembleRouteCommandHandler
	StartRoute               commands.StartRouteCommandHandler
	CompleteRoute            commands.CompleteRouteCommandHandler
	GenerateWeeklySettlement commands.GenerateWeeklySettlementCommandHandler
	MarkPaymentPaid          commands.MarkPaymentPaidCommandHandler
	IngestOcrSlip            commands.IngestOcrSlipCommandHandler
}

// Queries groups the read use cases.
type Queries struct {
	ListStores        queries.ListStoresQueryHandler
	GetStore          queries.GetStoreQueryHandler
	ListCouriers      queries.ListCouriersQueryHandler
	GetCourier        queries.GetCourierQueryHandler
	ListOrders        queries.ListOrdersQueryHandler
	GetOrder          queries.GetOrderQueryHandler
	ListOverdueOrders queries.ListOverdueOrdersQueryHandler
	ListRoutes        queries.ListRoutesQueryHandler
	GetRoute          queries.GetRouteQueryHandler
	ListPayments      queries.ListPaymentsQueryHandler
	GetPayment        queries.GetPaymentQueryHandler
	AnalyticsSummary  queries.AnalyticsSummaryQueryHandler
	GetCourierTrack   queries.GetCourierTrackQueryHandler
}

// PositionFeed streams recorded positions of one courier until cancel is called.
type PositionFeed interface {
	Listen(courierID string) (positions <-chan events.CourierPositionRecorded, cancel func())
}

// Server holds the use case handlers behind the HTTP routes.
type Server struct {
	cmd  Commands
	qry  Queries
	feed PositionFeed
	now  func() time.Time
}

func NewServer(cmd Commands, qry Queries, feed PositionFeed) *Server {
	return &Server{
		cmd:  cmd,
		qry:  qry,
		feed: feed,
		now:  func() time.Time { return time.Now().UTC() },
	}
}
