package hazard

import (
	"fmt"
	"math"
	"sort"

	"github.com/mr1hm/go-shelter-advisor/internal/geo"
	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

// FindNearby returns the hazards relevant to the user: earthquakes within
// radiusKm (largest magnitude first) followed by area alerts whose bounding
// box contains the user (most severe first). The radius does not apply to
// area alerts. A nil user yields an empty result.
func FindNearby(user *models.Location, quakes []models.PointHazard, areas []models.AreaHazard, radiusKm float64) ([]models.NearbyHazard, error) {
	if radiusKm <= 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", models.ErrInvalidParameter, radiusKm)
	}
	if user == nil {
		return []models.NearbyHazard{}, nil
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	nearQuakes := make([]models.NearbyHazard, 0, len(quakes))
	for _, q := range quakes {
		d, err := geo.DistanceKm(*user, q.Location)
		if err != nil || d > radiusKm {
			continue
		}
		nearQuakes = append(nearQuakes, fromQuake(q, d))
	}
	sort.SliceStable(nearQuakes, func(i, j int) bool {
		return nearQuakes[i].Magnitude > nearQuakes[j].Magnitude
	})

	containing := make([]models.NearbyHazard, 0)
	for _, area := range areas {
		if !geo.BoundingBoxContains(area.Polygon, *user) {
			continue
		}
		containing = append(containing, fromArea(area))
	}
	sort.SliceStable(containing, func(i, j int) bool {
		return containing[i].Severity.Rank() > containing[j].Severity.Rank()
	})

	return append(nearQuakes, containing...), nil
}

func fromQuake(q models.PointHazard, distanceKm float64) models.NearbyHazard {
	loc := q.Location
	ts := q.Timestamp
	return models.NearbyHazard{
		ID:          q.ID,
		Category:    models.HazardEarthquake,
		Event:       q.Title,
		Magnitude:   q.Magnitude,
		Place:       q.Place,
		Time:        &ts,
		Coordinates: &loc,
		DistanceKm:  &distanceKm,
	}
}

func fromArea(area models.AreaHazard) models.NearbyHazard {
	nh := models.NearbyHazard{
		ID:          area.ID,
		Category:    area.Kind,
		Event:       area.Event,
		Severity:    area.Severity,
		Urgency:     area.Urgency,
		Headline:    area.Headline,
		Description: area.Description,
		Contained:   true,
	}
	if nh.Category == "" {
		nh.Category = Categorize(area.Event, "")
	}
	if !area.Sent.IsZero() {
		sent := area.Sent
		nh.Sent = &sent
	}
	if !area.Expires.IsZero() {
		expires := area.Expires
		nh.Expires = &expires
	}
	// centroid is informational only; containment already succeeded
	if c, err := geo.PolygonCentroid(area.Polygon); err == nil {
		nh.Coordinates = &c
	}
	return nh
}
