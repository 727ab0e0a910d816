package services

import (
	"crypto/rand"
	"io"
	"math/big"

	"montarota/internal/core/domain/model/order"
)

var codeSpan = big.NewInt(order.CodeMax - order.CodeMin + 1)

// ConfirmationCodeGenerator draws codes uniformly from [order.CodeMin, order.CodeMax].
type ConfirmationCodeGenerator struct {
	random io.Reader
}

// NewConfirmationCodeGenerator uses crypto/rand.Reader.
func NewConfirmationCodeGenerator() ConfirmationCodeGenerator {
	return ConfirmationCodeGenerator{random: rand.Reader}
}

// NewConfirmationCodeGeneratorWithSource is meant for deterministic tests.
func NewConfirmationCodeGeneratorWithSource(random io.Reader) ConfirmationCodeGenerator {
	return ConfirmationCodeGenerator{random: random}
}

func (g ConfirmationCodeGenerator) Generate() (order.ConfirmationCode, error) {
	n, err := rand.Int(g.random, codeSpan)
	if err != nil {
		return order.ConfirmationCode{}, err
	}
	return order.NewConfirmationCode(int(n.Int64()) + order.CodeMin)
}
