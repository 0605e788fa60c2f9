// Package geo holds the distance and polygon primitives used for hazard
// matching and shelter scoring.
package geo

import (
	"fmt"
	"math"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// MinRingPoints is the number of usable points a polygon needs.
const MinRingPoints = 3

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceKm returns the great-circle distance between a and b. Callers must
// treat an error as "distance unknown", never as zero.
func DistanceKm(a, b models.Location) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h a hair above 1 for antipodal points
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c, nil
}

// WithinRadius reports whether b lies within radiusKm of a. Invalid input or a
// non-positive radius is never "within".
func WithinRadius(a, b models.Location, radiusKm float64) bool {
	if radiusKm <= 0 || math.IsNaN(radiusKm) {
		return false
	}
	d, err := DistanceKm(a, b)
	if err != nil {
		return false
	}
	return d <= radiusKm
}

// ringPoint extracts (lon, lat) from a GeoJSON position, skipping anything
// that is too short or not finite.
func ringPoint(pos []float64) (lon, lat float64, ok bool) {
	if len(pos) < 2 {
		return 0, 0, false
	}
	lon, lat = pos[0], pos[1]
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return 0, 0, false
	}
	return lon, lat, true
}

// PolygonCentroid is the arithmetic mean of the ring's usable vertices.
func PolygonCentroid(ring [][]float64) (models.Location, error) {
	var latSum, lonSum float64
	valid := 0
	for _, pos := range ring {
		lon, lat, ok := ringPoint(pos)
		if !ok {
			continue
		}
		latSum += lat
		lonSum += lon
		valid++
	}
	if valid < MinRingPoints {
		return models.Location{}, fmt.Errorf("%w: %d usable points", models.ErrDegenerateGeometry, valid)
	}
	return models.Location{
		Latitude:  latSum / float64(valid),
		Longitude: lonSum / float64(valid),
	}, nil
}

type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

func (b BoundingBox) Contains(p models.Location) bool {
	return p.Latitude >= b.MinLat && p.Latitude <= b.MaxLat &&
		p.Longitude >= b.MinLon && p.Longitude <= b.MaxLon
}

// Bounds computes the axis-aligned box of the ring's usable vertices.
func Bounds(ring [][]float64) (BoundingBox, error) {
	box := BoundingBox{
		MinLat: math.Inf(1),
		MaxLat: math.Inf(-1),
		MinLon: math.Inf(1),
		MaxLon: math.Inf(-1),
	}
	valid := 0
	for _, pos := range ring {
		lon, lat, ok := ringPoint(pos)
		if !ok {
			continue
		}
		box.MinLat = math.Min(box.MinLat, lat)
		box.MaxLat = math.Max(box.MaxLat, lat)
		box.MinLon = math.Min(box.MinLon, lon)
		box.MaxLon = math.Max(box.MaxLon, lon)
		valid++
	}
	if valid < MinRingPoints {
		return BoundingBox{}, fmt.Errorf("%w: %d usable points", models.ErrDegenerateGeometry, valid)
	}
	return box, nil
}

// BoundingBoxContains tests the point against the ring's bounding box, not the
// polygon itself. Points inside the box but outside a concave (or any
// non-rectangular) polygon are reported as contained.
func BoundingBoxContains(ring [][]float64, p models.Location) bool {
	box, err := Bounds(ring)
	if err != nil {
		return false
	}
	return box.Contains(p)
}
