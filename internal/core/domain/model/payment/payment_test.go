package payment_test

import (
	"testing"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/payment"
	"montarota/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(payment.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNewPeriod(t *testing.T) {
	p, err := payment.NewPeriod(day("2026-03-02").Add(15*time.Hour), day("2026-03-08"))

	require.NoError(t, err)
	assert.Equal(t, day("2026-03-02"), p.Start())
	assert.Equal(t, day("2026-03-09"), p.Until())
	assert.Equal(t, "2026-03-02..2026-03-08", p.String())

	_, err = payment.NewPeriod(day("2026-03-08"), day("2026-03-02"))
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = payment.NewPeriod(time.Time{}, day("2026-03-02"))
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	single, err := payment.NewPeriod(day("2026-03-02"), day("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, single.Until().Sub(single.Start()))
}

func TestPreviousWeek(t *testing.T) {
	tests := []struct {
		now   time.Time
		start string
	}{
		{time.Date(2026, 3, 9, 3, 0, 0, 0, time.UTC), "2026-03-02"},
		{time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC), "2026-03-02"},
		{time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), "2026-03-02"},
	}
	for _, tt := range tests {
		p := payment.PreviousWeek(tt.now)

		assert.Equal(t, tt.start, p.Start().Format(payment.DateLayout), tt.now.String())
		assert.Equal(t, time.Monday, p.Start().Weekday())
		assert.Equal(t, time.Sunday, p.End().Weekday())
	}
}

func TestNewStoreSettlement(t *testing.T) {
	period, _ := payment.NewPeriod(day("2026-03-02"), day("2026-03-08"))
	now := day("2026-03-09").Add(3 * time.Hour)

	p, err := payment.NewStoreSettlement(kernel.NewUUID(), kernel.NewUUID(), period, 12, kernel.MustMoney("54"), now)

	require.NoError(t, err)
	assert.Equal(t, payment.StoreToPlatform, p.Type())
	assert.Equal(t, payment.Pending, p.Status())
	assert.True(t, p.Gross().Equal(p.Net()))
	assert.Equal(t, "12 deliveries = R$ 54.00", p.Summary())

	_, err = payment.NewStoreSettlement(kernel.NewUUID(), kernel.UUID{}, payment.Period{}, -1, kernel.ZeroMoney(), now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store_id")
	assert.Contains(t, err.Error(), "delivery_count")
	assert.Contains(t, err.Error(), "period")
}

func TestPayment_MarkPaid(t *testing.T) {
	period, _ := payment.NewPeriod(day("2026-03-02"), day("2026-03-08"))
	p, err := payment.NewStoreSettlement(kernel.NewUUID(), kernel.NewUUID(), period, 0, kernel.ZeroMoney(), day("2026-03-09"))
	require.NoError(t, err)
	paidAt := day("2026-03-10")

	require.NoError(t, p.MarkPaid(" pix ", "receipt-1", paidAt))

	assert.Equal(t, payment.Paid, p.Status())
	assert.Equal(t, "pix", p.Method())
	assert.Equal(t, "receipt-1", p.ReceiptRef())
	require.NotNil(t, p.PaidAt())

	err = p.MarkPaid("cash", "", paidAt.Add(time.Hour))
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, "pix", p.Method())
	assert.Equal(t, paidAt, *p.PaidAt())
}
