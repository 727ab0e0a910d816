package services

import (
	"montarota/internal/core/domain/model/kernel"
)

// SettlementCalculator sums the platform fees of delivered orders. An order
// without a fee is charged the fallback fee.
type SettlementCalculator struct {
	fallbackFee kernel.Money
}

func NewSettlementCalculator(fallbackFee kernel.Money) SettlementCalculator {
	return SettlementCalculator{fallbackFee: fallbackFee.OrDefault(kernel.DefaultPlatformFee)}
}

// Total returns the number of deliveries and the gross amount.
func (c SettlementCalculator) Total(fees []kernel.Money) (int, kernel.Money) {
	gross := kernel.ZeroMoney()
	for _, fee := range fees {
		gross = gross.Add(fee.OrDefault(c.fallbackFee))
	}
	return len(fees), gross
}
