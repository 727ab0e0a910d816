package services_test

import (
	"bytes"
	"errors"
	"testing"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteLinkBuilder_Build(t *testing.T) {
	b := services.NewRouteLinkBuilder()

	t.Run("multi-stop google maps and first-stop waze", func(t *testing.T) {
		links := b.Build("Rua da Loja, 1", []string{"Rua A, 123", "Av. B & C"})

		assert.Equal(t,
			"https://www.google.com/maps/dir/Rua%20da%20Loja%2C%201/Rua%20A%2C%20123/Av.%20B%20%26%20C",
			links.GoogleMaps)
		assert.Equal(t, "https://waze.com/ul?q=Rua%20A%2C%20123&navigate=yes", links.Waze)
	})

	t.Run("origin defaults to placeholder", func(t *testing.T) {
		links := b.Build("  ", []string{"Rua A"})

		assert.Equal(t, "https://www.google.com/maps/dir/origin/Rua%20A", links.GoogleMaps)
	})

	t.Run("slashes inside addresses stay in one segment", func(t *testing.T) {
		links := b.Build("", []string{"Rua 1/2"})

		assert.Equal(t, "https://www.google.com/maps/dir/origin/Rua%201%2F2", links.GoogleMaps)
	})

	t.Run("no stops", func(t *testing.T) {
		assert.Empty(t, b.Build("x", nil).GoogleMaps)
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestConfirmationCodeGenerator(t *testing.T) {
	t.Run("codes stay in range", func(t *testing.T) {
		g := services.NewConfirmationCodeGenerator()

		for range 1000 {
			code, err := g.Generate()
			require.NoError(t, err)
			require.Len(t, code.String(), 6)
			assert.True(t, code.String() >= "100000" && code.String() <= "999999", code.String())
		}
	})

	t.Run("lowest draw maps to CodeMin", func(t *testing.T) {
		g := services.NewConfirmationCodeGeneratorWithSource(bytes.NewReader(make([]byte, 16)))

		code, err := g.Generate()

		require.NoError(t, err)
		assert.Equal(t, "100000", code.String())
	})

	t.Run("entropy failure is returned", func(t *testing.T) {
		_, err := services.NewConfirmationCodeGeneratorWithSource(failingReader{}).Generate()

		assert.Error(t, err)
	})

}

func TestSettlementCalculator_Total(t *testing.T) {
	calc := services.NewSettlementCalculator(kernel.DefaultPlatformFee)

	count, gross := calc.Total([]kernel.Money{kernel.MustMoney("4.50"), kernel.ZeroMoney(), kernel.MustMoney("6.00")})

	assert.Equal(t, 3, count)
	assert.Equal(t, "15.00", gross.String())

	count, gross = calc.Total(nil)
	assert.Zero(t, count)
	assert.Equal(t, "0.00", gross.String())
}

func TestNeighborhoodRanker(t *testing.T) {
	r := services.NewNeighborhoodRanker()

	t.Run("sorted by count with ties in first-seen order", func(t *testing.T) {
		ranking := r.Rank([]string{"Centro", "Moema", "Vila", "Moema", "Centro", "Pinheiros", "Lapa", "Butantã", "Sé", ""})

		require.Len(t, ranking, services.TopNeighborhoodsLimit)
		assert.Equal(t, []services.NeighborhoodCount{
			{Neighborhood: "Centro", Total: 2},
			{Neighborhood: "Moema", Total: 2},
			{Neighborhood: "Vila", Total: 1},
			{Neighborhood: "Pinheiros", Total: 1},
			{Neighborhood: "Lapa", Total: 1},
		}, ranking)
		assert.Equal(t, "Focus marketing on neighborhood Centro", r.Suggestion(ranking))
	})

	t.Run("empty", func(t *testing.T) {
		ranking := r.Rank([]string{"", " "})

		assert.Empty(t, ranking)
		assert.Equal(t, "No data yet", r.Suggestion(ranking))
	})
}
