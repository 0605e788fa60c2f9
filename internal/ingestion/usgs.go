package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mr1hm/go-shelter-advisor/internal/hazard"
	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string         `json:"id"`
	Properties usgsProperties `json:"properties"`
	Geometry   usgsGeometry   `json:"geometry"`
}
type usgsProperties struct {
	Mag   *float64 `json:"mag"`
	Place string   `json:"place"`
	Time  int64    `json:"time"` // unix millis
	Title string   `json:"title"`
}
type usgsGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

func (m *Manager) pollUSGS(ctx context.Context, url string) ([]models.PointHazard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data usgsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	quakes := make([]models.PointHazard, 0, len(data.Features))
	for _, f := range data.Features {
		if len(f.Geometry.Coordinates) < 2 {
			m.logger.Warn("skipping usgs feature without coordinates", "id", f.ID)
			continue
		}
		var mag float64
		if f.Properties.Mag != nil {
			mag = *f.Properties.Mag
		}
		quakes = append(quakes, models.PointHazard{
			ID:   "usgs_" + f.ID,
			Kind: hazard.Categorize(f.Properties.Title, hazard.SourceEarthquake),
			Location: models.Location{
				Longitude: f.Geometry.Coordinates[0],
				Latitude:  f.Geometry.Coordinates[1],
			},
			Magnitude: mag,
			Timestamp: time.UnixMilli(f.Properties.Time).UTC(),
			Title:     f.Properties.Title,
			Place:     f.Properties.Place,
		})
	}

	return quakes, nil
}
