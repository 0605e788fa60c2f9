package shelter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

var user = models.Location{Latitude: 37.323, Longitude: -122.0322}

func sampleShelters() []models.Shelter {
	return EnrichAll([]models.Shelter{
		{ID: "library", Name: "Cupertino Library", Type: "Public Library", Latitude: 37.323, Longitude: -122.032, Capacity: 300, Elevation: elev(72)},
		{ID: "fire", Name: "Fire Station", Type: "Fire Station", Latitude: 37.3318, Longitude: -122.0312, Capacity: 100, Elevation: elev(80)},
		{ID: "gym", Name: "High School Gym", Type: "School Gymnasium", Latitude: 37.3196, Longitude: -122.0090, Capacity: 1200},
		{ID: "far", Name: "Far Away Center", Type: "Community Center", Latitude: 37.7749, Longitude: -122.4194, Capacity: 500, Elevation: elev(16)},
	})
}

func TestScore_DistanceScoreUnderWideCap(t *testing.T) {
	scorer := NewScorer(DistanceProfileWide)
	ranked, err := scorer.Score(sampleShelters()[:1], models.DisasterTypeEarthquake, user)
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	assert.InDelta(t, 0.018, ranked[0].DistanceKm, 0.001)
	assert.InDelta(t, 1.0, ranked[0].Breakdown.Distance, 0.001)
}

func TestScore_EarthquakeWeights(t *testing.T) {
	scorer := NewScorer(DistanceProfileWide)
	ranked, err := scorer.Score(sampleShelters()[:1], models.DisasterTypeEarthquake, user)
	require.NoError(t, err)

	b := ranked[0].Breakdown
	assert.InDelta(t, 0.72, b.Elevation, 1e-9)
	assert.Equal(t, 0.5, b.Structure, "multi_story is not in the earthquake table")
	assert.InDelta(t, 0.3, b.Capacity, 1e-9)

	want := b.Distance*0.8 + 0.72*0.4 + 0.5*1.0 + 0.3*0.6
	assert.InDelta(t, want, ranked[0].Score, 1e-9)
}

func TestScore_Deterministic(t *testing.T) {
	scorer := NewScorer(DistanceProfileNarrow)
	for _, dt := range []models.DisasterType{
		models.DisasterTypeNone, models.DisasterTypeFlood, models.DisasterTypeEarthquake,
		models.DisasterTypeWildfire, models.DisasterTypeTornado, models.DisasterTypeHurricane,
	} {
		first, err := scorer.Score(sampleShelters(), dt, user)
		require.NoError(t, err)
		second, err := scorer.Score(sampleShelters(), dt, user)
		require.NoError(t, err)
		assert.Equal(t, first, second, "disaster %s", dt)
	}
}

func TestScore_SortedWithSequentialRanks(t *testing.T) {
	scorer := NewScorer(DistanceProfileWide)
	ranked, err := scorer.Score(sampleShelters(), models.DisasterTypeTornado, user)
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, models.RankSourceFallback, r.Source)
		assert.NotEmpty(t, r.Reason)
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].Score, r.Score)
		}
	}
	assert.Equal(t, "far", ranked[3].ID)
}

func TestScore_StableOnTies(t *testing.T) {
	base := models.Shelter{Name: "Twin", Latitude: 37.323, Longitude: -122.032}
	a, b, c := base, base, base
	a.ID, b.ID, c.ID = "a", "b", "c"

	ranked, err := NewScorer(DistanceProfileWide).Score([]models.Shelter{a, b, c}, models.DisasterTypeFlood, user)
	require.NoError(t, err)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "b", ranked[1].ID)
	assert.Equal(t, "c", ranked[2].ID)
}

func TestScore_NotClamped(t *testing.T) {
	sh := Enrich(models.Shelter{
		ID: "tall", Name: "Tower", Type: "Office", StructureType: models.StructureHighRise,
		Latitude: 37.323, Longitude: -122.032, Capacity: 5000, Elevation: elev(300),
	})
	ranked, err := NewScorer(DistanceProfileWide).Score([]models.Shelter{sh}, models.DisasterTypeFlood, user)
	require.NoError(t, err)
	// 0.8 + 1.0 + 0.6 + 0.4 minus a sliver of distance
	assert.Greater(t, ranked[0].Score, 2.7)
}

func TestScore_DefaultsForUnknownValues(t *testing.T) {
	sh := models.Shelter{ID: "bare", Name: "Bare", Latitude: 37.323, Longitude: -122.032}
	ranked, err := NewScorer(DistanceProfileWide).Score([]models.Shelter{sh}, models.DisasterTypeHurricane, user)
	require.NoError(t, err)

	b := ranked[0].Breakdown
	assert.Equal(t, 0.5, b.Elevation)
	assert.Equal(t, 0.5, b.Structure)
	assert.Equal(t, 0.5, b.Capacity)
}

func TestScore_SkipsInvalidShelterCoordinates(t *testing.T) {
	shelters := []models.Shelter{
		{ID: "bad", Name: "Bad", Latitude: 200, Longitude: 0},
		{ID: "good", Name: "Good", Latitude: 37.3, Longitude: -122.0},
	}
	ranked, err := NewScorer(DistanceProfileWide).Score(shelters, models.DisasterTypeNone, user)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "good", ranked[0].ID)
}

func TestScore_InvalidUser(t *testing.T) {
	_, err := NewScorer(DistanceProfileWide).Score(sampleShelters(), models.DisasterTypeNone, models.Location{Latitude: -100})
	assert.True(t, errors.Is(err, models.ErrInvalidCoordinate))
}

func TestStructureScoreTables(t *testing.T) {
	tests := []struct {
		st   models.StructureType
		dt   models.DisasterType
		want float64
	}{
		{models.StructureReinforced, models.DisasterTypeEarthquake, 1.0},
		{models.StructureConcrete, models.DisasterTypeEarthquake, 0.8},
		{models.StructureWood, models.DisasterTypeEarthquake, 0.4},
		{models.StructureStandard, models.DisasterTypeEarthquake, 0.5},
		{models.StructureUnderground, models.DisasterTypeTornado, 1.0},
		{models.StructureReinforced, models.DisasterTypeTornado, 0.8},
		{models.StructureConcrete, models.DisasterTypeTornado, 0.6},
		{models.StructureWood, models.DisasterTypeTornado, 0.4},
		{models.StructureHighRise, models.DisasterTypeFlood, 1.0},
		{models.StructureMultiStory, models.DisasterTypeFlood, 0.8},
		{models.StructureSingleStory, models.DisasterTypeFlood, 0.4},
		{models.StructureConcrete, models.DisasterTypeFlood, 0.5},
		{models.StructureReinforced, models.DisasterTypeWildfire, 1.0},
		{models.StructureWood, models.DisasterTypeHurricane, 0.4},
		{"", models.DisasterTypeTornado, 0.5},
	}
	for _, tt := range tests {
		if got := structureScore(tt.st, tt.dt); got != tt.want {
			t.Errorf("structureScore(%q, %s) = %v, want %v", tt.st, tt.dt, got, tt.want)
		}
	}
}

func TestProfileFor(t *testing.T) {
	assert.Equal(t, CriteriaProfile{Distance: 0.8, Elevation: 1.0, Structure: 0.6, Capacity: 0.4}, ProfileFor(models.DisasterTypeFlood))
	assert.Equal(t, ProfileFor(models.DisasterTypeEarthquake), ProfileFor(models.DisasterTypeNone))
	assert.Equal(t, ProfileFor(models.DisasterTypeEarthquake), ProfileFor(models.DisasterType(99)))
}

func TestParseDistanceProfile(t *testing.T) {
	p, err := ParseDistanceProfile("")
	require.NoError(t, err)
	assert.Equal(t, DistanceProfileWide, p)

	p, err = ParseDistanceProfile("Narrow")
	require.NoError(t, err)
	assert.Equal(t, 10.0, p.CapKm())

	_, err = ParseDistanceProfile("medium")
	assert.True(t, errors.Is(err, models.ErrInvalidParameter))
}

func TestElevationAndCapacityScores(t *testing.T) {
	assert.Equal(t, 0.0, elevationScore(elev(-5)))
	assert.Equal(t, 0.0, elevationScore(elev(0)))
	assert.Equal(t, 1.0, elevationScore(elev(250)))
	assert.Equal(t, 0.5, elevationScore(nil))

	assert.Equal(t, 0.5, capacityScore(0))
	assert.Equal(t, 0.25, capacityScore(250))
	assert.Equal(t, 1.0, capacityScore(4000))
}
