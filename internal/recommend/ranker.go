package recommend

import (
	"context"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

// Ranker asks an external ranking backend to order the candidates. It returns
// the backend's raw reply; parsing and validation happen in the Service.
type Ranker interface {
	Rank(ctx context.Context, req RankRequest) (string, error)
}

type RankerFunc func(ctx context.Context, req RankRequest) (string, error)

func (f RankerFunc) Rank(ctx context.Context, req RankRequest) (string, error) {
	return f(ctx, req)
}

type RankRequest struct {
	DisasterType models.DisasterType
	User         models.Location
	Candidates   []Candidate
	CriteriaText string
}

// Candidate is the view of a shelter sent to the ranker.
type Candidate struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Type               string               `json:"type,omitempty"`
	Address            string               `json:"address,omitempty"`
	Latitude           float64              `json:"latitude"`
	Longitude          float64              `json:"longitude"`
	DistanceKm         float64              `json:"distance_km"`
	Capacity           int                  `json:"capacity,omitempty"`
	Elevation          *float64             `json:"elevation,omitempty"`
	Features           []string             `json:"features,omitempty"`
	StructureType      models.StructureType `json:"structure_type,omitempty"`
	SafetyRating       float64              `json:"safety_rating,omitempty"`
	AccessibilityScore float64              `json:"accessibility_score,omitempty"`
}

func newCandidate(s models.Shelter, distanceKm float64) Candidate {
	return Candidate{
		ID:                 s.ID,
		Name:               s.Name,
		Type:               s.Type,
		Address:            s.Address,
		Latitude:           s.Latitude,
		Longitude:          s.Longitude,
		DistanceKm:         distanceKm,
		Capacity:           s.Capacity,
		Elevation:          s.Elevation,
		Features:           s.Features,
		StructureType:      s.StructureType,
		SafetyRating:       s.SafetyRating,
		AccessibilityScore: s.AccessibilityScore,
	}
}
