package catalog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
	"github.com/mr1hm/go-shelter-advisor/internal/repository"
)

const seedYAML = `
- id: station_1
  name: Fire Station 1
  type: Fire Station
  latitude: 37.337
  longitude: -122.043
  capacity: 50
  elevation: 20
  features:
    - Emergency Power
    - Reinforced Structure
- id: gym_1
  name: High School Gym
  type: School Gymnasium
  latitude: 37.328
  longitude: -122.041
  capacity: 800
- id: broken
  name: Nowhere
  type: Park Facility
  latitude: 123
  longitude: 0
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shelters.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestCatalog(t *testing.T) (*Catalog, *repository.SQLiteDB) {
	t.Helper()
	db, err := repository.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, slog.New(slog.NewTextHandler(io.Discard, nil))), db
}

func TestLoadSeed(t *testing.T) {
	shelters, err := LoadSeed(writeSeed(t, seedYAML))
	require.NoError(t, err)
	require.Len(t, shelters, 3)

	assert.Equal(t, "station_1", shelters[0].ID)
	require.NotNil(t, shelters[0].Elevation)
	assert.Equal(t, 20.0, *shelters[0].Elevation)
	assert.Nil(t, shelters[1].Elevation)
	assert.Equal(t, []string{"Emergency Power", "Reinforced Structure"}, shelters[0].Features)
}

func TestLoadSeed_BadYAML(t *testing.T) {
	_, err := LoadSeed(writeSeed(t, "- id: [unterminated"))
	assert.Error(t, err)
}

func TestSeedAndReload(t *testing.T) {
	ctx := context.Background()
	c, db := newTestCatalog(t)

	n, err := c.Seed(ctx, writeSeed(t, seedYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, n, "invalid coordinates are skipped")

	require.NoError(t, c.Reload(ctx))
	shelters := c.Shelters()
	require.Len(t, shelters, 2)

	station, ok := c.Get("station_1")
	require.True(t, ok)
	assert.Equal(t, models.StructureReinforced, station.StructureType)
	assert.Greater(t, station.SafetyRating, 0.5)

	// second seed is a no-op
	n, err = c.Seed(ctx, writeSeed(t, seedYAML))
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := db.CountShelters(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSeed_MissingFile(t *testing.T) {
	c, _ := newTestCatalog(t)
	n, err := c.Seed(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, c.Shelters())
}

func TestSeed_RepoDataFile(t *testing.T) {
	shelters, err := LoadSeed(filepath.Join("..", "..", "data", "shelters.yaml"))
	require.NoError(t, err)
	assert.Len(t, shelters, 15)
	for _, s := range shelters {
		assert.NoError(t, s.Location().Validate(), s.ID)
	}
}
