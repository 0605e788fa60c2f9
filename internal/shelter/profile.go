package shelter

import (
	"fmt"
	"strings"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

// Distance normalization caps. Wide is used for general ranking, narrow for
// the weighted-criteria variant.
const (
	WideDistanceCapKm   = 20.0
	NarrowDistanceCapKm = 10.0
)

type DistanceProfile string

const (
	DistanceProfileWide   DistanceProfile = "wide"
	DistanceProfileNarrow DistanceProfile = "narrow"
)

func (p DistanceProfile) CapKm() float64 {
	if p == DistanceProfileNarrow {
		return NarrowDistanceCapKm
	}
	return WideDistanceCapKm
}

func ParseDistanceProfile(s string) (DistanceProfile, error) {
	switch DistanceProfile(strings.ToLower(strings.TrimSpace(s))) {
	case "", DistanceProfileWide:
		return DistanceProfileWide, nil
	case DistanceProfileNarrow:
		return DistanceProfileNarrow, nil
	default:
		return "", fmt.Errorf("%w: unknown distance profile %q", models.ErrInvalidParameter, s)
	}
}

// CriteriaProfile weights each criterion for one disaster type. Weights do
// not sum to 1 and the weighted sum is not renormalized.
type CriteriaProfile struct {
	Distance  float64 `json:"distance"`
	Elevation float64 `json:"elevation"`
	Structure float64 `json:"structure"`
	Capacity  float64 `json:"capacity"`
}

var defaultProfile = CriteriaProfile{Distance: 0.8, Elevation: 0.4, Structure: 1.0, Capacity: 0.6}

var criteriaProfiles = map[models.DisasterType]CriteriaProfile{
	models.DisasterTypeFlood:      {Distance: 0.8, Elevation: 1.0, Structure: 0.6, Capacity: 0.4},
	models.DisasterTypeEarthquake: defaultProfile,
	models.DisasterTypeWildfire:   {Distance: 1.0, Elevation: 0.6, Structure: 0.8, Capacity: 0.4},
	models.DisasterTypeTornado:    {Distance: 0.8, Elevation: 0.2, Structure: 1.0, Capacity: 0.6},
	models.DisasterTypeHurricane:  {Distance: 0.6, Elevation: 0.8, Structure: 1.0, Capacity: 0.4},
}

// ProfileFor returns the weights for dt, falling back to the earthquake
// profile.
func ProfileFor(dt models.DisasterType) CriteriaProfile {
	if p, ok := criteriaProfiles[dt]; ok {
		return p
	}
	return defaultProfile
}

type structureTable struct {
	scores   map[models.StructureType]float64
	fallback float64
}

var earthquakeStructures = structureTable{
	scores: map[models.StructureType]float64{
		models.StructureReinforced: 1.0,
		models.StructureConcrete:   0.8,
		models.StructureWood:       0.4,
	},
	fallback: 0.5,
}

var structureTables = map[models.DisasterType]structureTable{
	models.DisasterTypeEarthquake: earthquakeStructures,
	models.DisasterTypeTornado: {
		scores: map[models.StructureType]float64{
			models.StructureUnderground: 1.0,
			models.StructureReinforced:  0.8,
			models.StructureConcrete:    0.6,
		},
		fallback: 0.4,
	},
	models.DisasterTypeFlood: {
		scores: map[models.StructureType]float64{
			models.StructureHighRise:    1.0,
			models.StructureMultiStory:  0.8,
			models.StructureSingleStory: 0.4,
		},
		fallback: 0.5,
	},
}

const defaultCriterionScore = 0.5

func structureScore(st models.StructureType, dt models.DisasterType) float64 {
	if st == "" {
		return defaultCriterionScore
	}
	table, ok := structureTables[dt]
	if !ok {
		table = earthquakeStructures
	}
	if v, ok := table.scores[st]; ok {
		return v
	}
	return table.fallback
}
