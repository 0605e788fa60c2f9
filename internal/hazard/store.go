package hazard

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

// Snapshot is an immutable view of the live hazard feeds. Callers must not
// modify the slices.
type Snapshot struct {
	Earthquakes []models.PointHazard
	AreaHazards []models.AreaHazard
	UpdatedAt   time.Time
}

// Store holds the current Snapshot. Readers never block writers; a refresh
// publishes a whole new snapshot.
type Store struct {
	clock   clockwork.Clock
	current atomic.Pointer[Snapshot]
}

func NewStore(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Store{clock: clock}
	s.current.Store(&Snapshot{})
	return s
}

func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Replace publishes a new snapshot. Area alerts that have already expired are
// dropped.
func (s *Store) Replace(quakes []models.PointHazard, areas []models.AreaHazard) *Snapshot {
	now := s.clock.Now()

	active := make([]models.AreaHazard, 0, len(areas))
	for _, area := range areas {
		if !area.Expires.IsZero() && area.Expires.Before(now) {
			continue
		}
		active = append(active, area)
	}

	snap := &Snapshot{
		Earthquakes: append([]models.PointHazard(nil), quakes...),
		AreaHazards: active,
		UpdatedAt:   now,
	}
	s.current.Store(snap)
	return snap
}

// Nearby runs FindNearby against the current snapshot.
func (s *Store) Nearby(user *models.Location, radiusKm float64) ([]models.NearbyHazard, error) {
	snap := s.Snapshot()
	return FindNearby(user, snap.Earthquakes, snap.AreaHazards, radiusKm)
}

// CountByKind tallies the snapshot's hazards per category.
func (snap *Snapshot) CountByKind() map[models.HazardCategory]int {
	counts := make(map[models.HazardCategory]int)
	counts[models.HazardEarthquake] = len(snap.Earthquakes)
	for _, area := range snap.AreaHazards {
		counts[area.Kind]++
	}
	return counts
}
