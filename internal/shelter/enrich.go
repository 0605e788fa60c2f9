// Package shelter enriches catalog records and scores them against a
// disaster type with fixed, table-driven criteria.
package shelter

import (
	"math"
	"strings"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

var structureByType = map[string]models.StructureType{
	"fire station":        models.StructureReinforced,
	"medical facility":    models.StructureReinforced,
	"government building": models.StructureReinforced,
	"school gymnasium":    models.StructureConcrete,
	"high school":         models.StructureConcrete,
	"college facility":    models.StructureConcrete,
	"convention center":   models.StructureLargeSpan,
	"community center":    models.StructureMultiStory,
	"public library":      models.StructureMultiStory,
	"recreation center":   models.StructureMultiStory,
	"religious facility":  models.StructureTraditional,
	"senior center":       models.StructureSingleStory,
	"park facility":       models.StructureSingleStory,
	"commercial center":   models.StructureCommercial,
}

var safetyStructureBonus = map[models.StructureType]float64{
	models.StructureReinforced:  0.3,
	models.StructureConcrete:    0.2,
	models.StructureMultiStory:  0.1,
	models.StructureLargeSpan:   0.1,
	models.StructureTraditional: 0.05,
	models.StructureCommercial:  0.05,
}

var accessibilityTypeBonus = map[string]float64{
	"senior center":       0.3,
	"medical facility":    0.2,
	"public library":      0.2,
	"government building": 0.2,
	"community center":    0.15,
	"school gymnasium":    0.1,
	"recreation center":   0.1,
}

func normalizeType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// StructureFor maps a facility type (e.g. "Fire Station") to its structure
// class. Unknown types are standard.
func StructureFor(facilityType string) models.StructureType {
	if st, ok := structureByType[normalizeType(facilityType)]; ok {
		return st
	}
	return models.StructureStandard
}

// Enrich returns a copy of s with StructureType, SafetyRating and
// AccessibilityScore filled in. An explicit StructureType is kept.
// Enrich(Enrich(s)) == Enrich(s).
func Enrich(s models.Shelter) models.Shelter {
	if s.StructureType == "" {
		s.StructureType = StructureFor(s.Type)
	}
	s.Features = append([]string(nil), s.Features...)
	s.SafetyRating = safetyRating(&s)
	s.AccessibilityScore = accessibilityScore(&s)
	return s
}

func EnrichAll(shelters []models.Shelter) []models.Shelter {
	out := make([]models.Shelter, len(shelters))
	for i, s := range shelters {
		out[i] = Enrich(s)
	}
	return out
}

func safetyRating(s *models.Shelter) float64 {
	rating := 0.5
	rating += safetyStructureBonus[s.StructureType]

	switch {
	case s.Capacity > 500:
		rating += 0.1
	case s.Capacity > 200:
		rating += 0.05
	}

	if s.Elevation != nil {
		switch {
		case *s.Elevation > 20:
			rating += 0.1
		case *s.Elevation > 10:
			rating += 0.05
		}
	}

	if s.HasFeature("Emergency Power") {
		rating += 0.05
	}
	if s.HasFeature("Medical Equipment") || s.HasFeature("Medical Care") {
		rating += 0.05
	}
	if s.HasFeature("Reinforced Structure") {
		rating += 0.1
	}

	return round(math.Min(1, rating))
}

func accessibilityScore(s *models.Shelter) float64 {
	score := 0.5
	score += accessibilityTypeBonus[normalizeType(s.Type)]

	if s.HasFeature("Accessible Design") {
		score += 0.2
	}
	if s.HasFeature("Parking") {
		score += 0.1
	}
	if s.HasFeature("Medical Station") || s.HasFeature("Medical Care") {
		score += 0.1
	}

	return round(math.Min(1, score))
}

// round trims float noise from summed bonuses (0.1+0.2 and friends).
func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// Valid reports whether the shelter can be ranked at all: it needs an id, a
// name, and usable coordinates.
func Valid(s *models.Shelter) bool {
	if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.Name) == "" {
		return false
	}
	return s.Location().Validate() == nil
}

// FilterValid keeps the shelters that pass Valid, preserving order.
func FilterValid(shelters []models.Shelter) []models.Shelter {
	out := make([]models.Shelter, 0, len(shelters))
	for i := range shelters {
		if Valid(&shelters[i]) {
			out = append(out, shelters[i])
		}
	}
	return out
}
