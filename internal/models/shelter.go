package models

import "strings"

type StructureType string

const (
	StructureReinforced  StructureType = "reinforced"
	StructureConcrete    StructureType = "concrete"
	StructureLargeSpan   StructureType = "large_span"
	StructureMultiStory  StructureType = "multi_story"
	StructureHighRise    StructureType = "high_rise"
	StructureTraditional StructureType = "traditional"
	StructureSingleStory StructureType = "single_story"
	StructureCommercial  StructureType = "commercial"
	StructureUnderground StructureType = "underground"
	StructureWood        StructureType = "wood"
	StructureStandard    StructureType = "standard"
)

type Shelter struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Type      string   `json:"type" yaml:"type"`
	Address   string   `json:"address,omitempty" yaml:"address"`
	Phone     string   `json:"phone,omitempty" yaml:"phone"`
	Latitude  float64  `json:"latitude" yaml:"latitude"`
	Longitude float64  `json:"longitude" yaml:"longitude"`
	Capacity  int      `json:"capacity" yaml:"capacity"`   // 0 when unknown
	Elevation *float64 `json:"elevation" yaml:"elevation"` // meters, nil when unknown
	Features  []string `json:"features" yaml:"features"`

	// Filled in by shelter.Enrich
	StructureType      StructureType `json:"structure_type,omitempty" yaml:"structure_type,omitempty"` // derived from Type when empty
	SafetyRating       float64       `json:"safety_rating" yaml:"-"`
	AccessibilityScore float64       `json:"accessibility_score" yaml:"-"`
}

func (s *Shelter) Location() Location {
	return Location{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
	}
}

// HasFeature reports whether the shelter lists the feature (case-insensitive).
func (s *Shelter) HasFeature(name string) bool {
	for _, f := range s.Features {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

type RankSource string

const (
	RankSourceAI       RankSource = "ai"
	RankSourceFallback RankSource = "fallback"
)

// ScoreBreakdown holds the normalized per-criterion scores behind a fallback score.
type ScoreBreakdown struct {
	Distance  float64 `json:"distance"`
	Elevation float64 `json:"elevation"`
	Structure float64 `json:"structure"`
	Capacity  float64 `json:"capacity"`
}

type RankedShelter struct {
	Shelter
	DistanceKm float64         `json:"distance_km"`
	Score      float64         `json:"score"`
	Rank       int             `json:"rank"`
	Reason     string          `json:"reason"`
	Source     RankSource      `json:"source"`
	Breakdown  *ScoreBreakdown `json:"breakdown,omitempty"`
}
