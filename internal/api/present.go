package api

import (
	"math"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

// rankedShelter shadows the embedded Score with a value clamped to [0,1].
// Fallback scores are unbounded weighted sums, kept as raw_score.
type rankedShelter struct {
	models.RankedShelter
	Score    float64  `json:"score"`
	RawScore *float64 `json:"raw_score,omitempty"`
}

func present(ranked []models.RankedShelter) []rankedShelter {
	out := make([]rankedShelter, 0, len(ranked))
	for _, r := range ranked {
		p := rankedShelter{
			RankedShelter: r,
			Score:         math.Max(0, math.Min(1, r.Score)),
		}
		if r.Source == models.RankSourceFallback {
			raw := r.Score
			p.RawScore = &raw
		}
		out = append(out, p)
	}
	return out
}
