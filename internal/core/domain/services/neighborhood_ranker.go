package services

import (
	"sort"
	"strings"
)

const (
	// TopNeighborhoodsLimit is the number of neighborhoods reported by analytics.
	TopNeighborhoodsLimit = 5

	noDataSuggestion = "No data yet"
)

// NeighborhoodCount is one entry of the ranking.
type NeighborhoodCount struct {
	Neighborhood string `json:"neighborhood"`
	Total        int    `json:"total"`
}

// NeighborhoodRanker tallies deliveries per customer neighborhood.
type NeighborhoodRanker struct {
	limit int
}

func NewNeighborhoodRanker() NeighborhoodRanker {
	return NeighborhoodRanker{limit: TopNeighborhoodsLimit}
}

// Rank counts non-empty neighborhoods and returns at most limit entries by count
// descending. Ties keep the order of first occurrence.
func (r NeighborhoodRanker) Rank(neighborhoods []string) []NeighborhoodCount {
	index := make(map[string]int)
	counts := make([]NeighborhoodCount, 0)
	for _, n := range neighborhoods {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if i, ok := index[n]; ok {
			counts[i].Total++
			continue
		}
		index[n] = len(counts)
		counts = append(counts, NeighborhoodCount{Neighborhood: n, Total: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Total > counts[j].Total
	})

	if len(counts) > r.limit {
		counts = counts[:r.limit]
	}
	return counts
}

// Suggestion names the top neighborhood of a ranking.
func (r NeighborhoodRanker) Suggestion(ranking []NeighborhoodCount) string {
	if len(ranking) == 0 {
		return noDataSuggestion
	}
	return "Focus marketing on neighborhood " + ranking[0].Neighborhood
}
