package shelter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearest(t *testing.T) {
	got := Nearest(sampleShelters(), user, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "library", got[0].Shelter.ID)
	assert.Equal(t, "fire", got[1].Shelter.ID)
	assert.LessOrEqual(t, got[0].DistanceKm, got[1].DistanceKm)

	assert.Len(t, Nearest(sampleShelters(), user, 10), 4)
}

func TestWithinRadius(t *testing.T) {
	got := WithinRadius(sampleShelters(), user, 5)
	require.Len(t, got, 3)
	for _, l := range got {
		assert.NotEqual(t, "far", l.Shelter.ID)
		assert.LessOrEqual(t, l.DistanceKm, 5.0)
	}

	assert.Len(t, WithinRadius(sampleShelters(), user, DefaultNearbyRadiusKm), 3)
	assert.Len(t, WithinRadius(sampleShelters(), user, 100), 4)
}
