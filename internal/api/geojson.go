package api

import (
	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   *Geometry      `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// toGeoJSON renders hazards as points. Area hazards are placed at their
// centroid; hazards without coordinates get a null geometry.
func toGeoJSON(hazards []models.NearbyHazard) FeatureCollection {
	features := make([]Feature, 0, len(hazards))

	for _, h := range hazards {
		f := Feature{
			Type: "Feature",
			Properties: map[string]any{
				"id":        h.ID,
				"type":      string(h.Category),
				"event":     h.Event,
				"contained": h.Contained,
			},
		}
		if h.Coordinates != nil {
			f.Geometry = &Geometry{
				Type:        "Point",
				Coordinates: []float64{h.Coordinates.Longitude, h.Coordinates.Latitude},
			}
		}
		if h.Magnitude != 0 {
			f.Properties["magnitude"] = h.Magnitude
		}
		if h.Place != "" {
			f.Properties["location"] = h.Place
		}
		if h.Time != nil {
			f.Properties["time"] = h.Time
		}
		if h.DistanceKm != nil {
			f.Properties["distance_km"] = *h.DistanceKm
		}
		if h.Severity != "" {
			f.Properties["severity"] = string(h.Severity)
		}
		if h.Headline != "" {
			f.Properties["headline"] = h.Headline
		}
		if h.Expires != nil {
			f.Properties["expires"] = h.Expires
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
