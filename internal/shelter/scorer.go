package shelter

import (
	"fmt"
	"math"
	"sort"

	"github.com/mr1hm/go-shelter-advisor/internal/geo"
	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

// Scorer ranks shelters with the weighted criteria tables. It makes no
// external calls and holds no mutable state.
type Scorer struct {
	distanceCapKm float64
}

func NewScorer(profile DistanceProfile) *Scorer {
	return &Scorer{distanceCapKm: profile.CapKm()}
}

func (s *Scorer) DistanceCapKm() float64 {
	return s.distanceCapKm
}

// Score returns one RankedShelter per shelter with usable coordinates, ordered
// by descending raw score (input order on ties) and ranked from 1. Scores are
// not clamped and can exceed 1.
func (s *Scorer) Score(shelters []models.Shelter, dt models.DisasterType, user models.Location) ([]models.RankedShelter, error) {
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("error scoring shelters: %w", err)
	}

	weights := ProfileFor(dt)
	ranked := make([]models.RankedShelter, 0, len(shelters))
	for _, sh := range shelters {
		d, err := geo.DistanceKm(user, sh.Location())
		if err != nil {
			continue
		}
		breakdown := s.breakdown(&sh, dt, d)
		score := breakdown.Distance*weights.Distance +
			breakdown.Elevation*weights.Elevation +
			breakdown.Structure*weights.Structure +
			breakdown.Capacity*weights.Capacity

		ranked = append(ranked, models.RankedShelter{
			Shelter:    sh,
			DistanceKm: d,
			Score:      score,
			Source:     models.RankSourceFallback,
			Reason:     fmt.Sprintf("Criteria-based ranking for %s: %.1fkm away", dt, d),
			Breakdown:  breakdown,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

func (s *Scorer) breakdown(sh *models.Shelter, dt models.DisasterType, distanceKm float64) *models.ScoreBreakdown {
	return &models.ScoreBreakdown{
		Distance:  math.Max(0, 1-distanceKm/s.distanceCapKm),
		Elevation: elevationScore(sh.Elevation),
		Structure: structureScore(sh.StructureType, dt),
		Capacity:  capacityScore(sh.Capacity),
	}
}

// elevationScore treats a known elevation of 0 as sea level (score 0), and
// clamps negative elevations to 0.
func elevationScore(elevation *float64) float64 {
	if elevation == nil || math.IsNaN(*elevation) {
		return defaultCriterionScore
	}
	return math.Min(1, math.Max(0, *elevation)/100)
}

func capacityScore(capacity int) float64 {
	if capacity <= 0 {
		return defaultCriterionScore
	}
	return math.Min(1, float64(capacity)/1000)
}
