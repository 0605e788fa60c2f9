package shelter

import (
	"sort"

	"github.com/mr1hm/go-shelter-advisor/internal/geo"
	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

// DefaultNearbyRadiusKm bounds shelter listings when the caller gives no radius.
const DefaultNearbyRadiusKm = 25.0

type Located struct {
	Shelter    models.Shelter
	DistanceKm float64
}

// ByDistance pairs each shelter with its distance from user, nearest first.
// Shelters whose distance cannot be computed are left out.
func ByDistance(shelters []models.Shelter, user models.Location) []Located {
	out := make([]Located, 0, len(shelters))
	for _, sh := range shelters {
		d, err := geo.DistanceKm(user, sh.Location())
		if err != nil {
			continue
		}
		out = append(out, Located{Shelter: sh, DistanceKm: d})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// Nearest returns at most n shelters closest to user.
func Nearest(shelters []models.Shelter, user models.Location, n int) []Located {
	all := ByDistance(shelters, user)
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// WithinRadius returns the shelters no farther than radiusKm from user,
// nearest first.
func WithinRadius(shelters []models.Shelter, user models.Location, radiusKm float64) []Located {
	all := ByDistance(shelters, user)
	out := all[:0]
	for _, l := range all {
		if l.DistanceKm <= radiusKm {
			out = append(out, l)
		}
	}
	return out
}
