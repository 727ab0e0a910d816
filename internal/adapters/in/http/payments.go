package http

import (
	"net/http"
	"time"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/payment"
	"montarota/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListPayments handles GET /api/payments[?store_id&courier_id&status].
func (s *Server) ListPayments(c echo.Context) error {
	storeID, err := queryID(c, "store_id")
	if err != nil {
		return err
	}
	courierID, err := queryID(c, "courier_id")
	if err != nil {
		return err
	}
	status, err := queryString(c, "status")
	if err != nil {
		return err
	}
	if storeID, err = scopedStoreID(c, storeID); err != nil {
		return err
	}

	query, err := queries.NewListPaymentsQuery(storeID, courierID, status)
	if err != nil {
		return err
	}
	payments, err := s.qry.ListPayments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// GenerateWeeklySettlement handles POST /api/payments/generate-weekly. Without
// a period the previous Monday to Sunday week is settled.
func (s *Server) GenerateWeeklySettlement(c echo.Context) error {
	var req GenerateSettlementRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	requested, err := optionalID(req.StoreID)
	if err != nil {
		return err
	}
	storeID, err := scopedStoreID(c, requested)
	if err != nil {
		return err
	}
	if storeID == nil {
		return commands.ErrStoreIDIsRequired
	}

	period, err := settlementPeriod(req, s.now())
	if err != nil {
		return err
	}

	cmd, err := commands.NewGenerateWeeklySettlementCommand(kernel.NewUUID(), *storeID, period)
	if err != nil {
		return err
	}
	res, err := s.cmd.GenerateWeeklySettlement.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, SettlementResponse{
		Payment: queries.NewPaymentView(res.Payment),
		Message: res.Message,
	})
}

// MarkPaymentPaid handles PATCH /api/payments/:id/pay.
func (s *Server) MarkPaymentPaid(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req MarkPaidRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	if err = s.ensureOwnsPayment(c, id); err != nil {
		return err
	}

	cmd, err := commands.NewMarkPaymentPaidCommand(id, req.Method, req.ReceiptRef)
	if err != nil {
		return err
	}
	paid, err := s.cmd.MarkPaymentPaid.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries.NewPaymentView(paid))
}

func settlementPeriod(req GenerateSettlementRequest, now time.Time) (payment.Period, error) {
	if req.PeriodStart == "" && req.PeriodEnd == "" {
		return payment.PreviousWeek(now), nil
	}
	start, err := time.Parse(payment.DateLayout, req.PeriodStart)
	if err != nil {
		return payment.Period{}, errs.NewValueIsInvalidErrorWithCause("period_start", err)
	}
	end, err := time.Parse(payment.DateLayout, req.PeriodEnd)
	if err != nil {
		return payment.Period{}, errs.NewValueIsInvalidErrorWithCause("period_end", err)
	}
	return payment.NewPeriod(start, end)
}
