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

type nwsResponse struct {
	Features []nwsFeature `json:"features"`
}

type nwsFeature struct {
	ID         string        `json:"id"`
	Properties nwsProperties `json:"properties"`
	Geometry   *nwsGeometry  `json:"geometry"` // null for zone-only alerts
}

type nwsProperties struct {
	ID          string `json:"id"`
	Event       string `json:"event"`
	Severity    string `json:"severity"`
	Urgency     string `json:"urgency"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Sent        string `json:"sent"`
	Expires     string `json:"expires"`
}

type nwsGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// position is a GeoJSON position; null members decode to nil.
type position []*float64

// outerRing returns the first outer ring of a Polygon or MultiPolygon.
// Positions without numeric longitude and latitude are dropped.
func (g *nwsGeometry) outerRing() ([][]float64, error) {
	var ring []position
	switch g.Type {
	case "Polygon":
		var rings [][]position
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("error decoding polygon: %w", err)
		}
		if len(rings) == 0 {
			return nil, models.ErrDegenerateGeometry
		}
		ring = rings[0]
	case "MultiPolygon":
		var polys [][][]position
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil {
			return nil, fmt.Errorf("error decoding multipolygon: %w", err)
		}
		if len(polys) == 0 || len(polys[0]) == 0 {
			return nil, models.ErrDegenerateGeometry
		}
		ring = polys[0][0]
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}

	points := make([][]float64, 0, len(ring))
	for _, p := range ring {
		if len(p) < 2 || p[0] == nil || p[1] == nil {
			continue
		}
		points = append(points, []float64{*p[0], *p[1]})
	}
	if len(points) == 0 {
		return nil, models.ErrDegenerateGeometry
	}
	return points, nil
}

func (m *Manager) pollNWS(ctx context.Context, url string) ([]models.AreaHazard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	// api.weather.gov rejects requests without a User-Agent
	req.Header.Set("User-Agent", m.cfg.NWSUserAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data nwsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	areas := make([]models.AreaHazard, 0, len(data.Features))
	for _, f := range data.Features {
		if f.Geometry == nil {
			continue
		}
		ring, err := f.Geometry.outerRing()
		if err != nil {
			m.logger.Warn("skipping nws alert geometry", "id", f.ID, "error", err)
			continue
		}

		id := f.Properties.ID
		if id == "" {
			id = f.ID
		}
		areas = append(areas, models.AreaHazard{
			ID:          id,
			Event:       f.Properties.Event,
			Kind:        hazard.Categorize(f.Properties.Event, ""),
			Polygon:     ring,
			Severity:    models.Severity(f.Properties.Severity),
			Urgency:     f.Properties.Urgency,
			Headline:    f.Properties.Headline,
			Description: f.Properties.Description,
			Sent:        m.parseTime(id, f.Properties.Sent),
			Expires:     m.parseTime(id, f.Properties.Expires),
		})
	}

	return areas, nil
}

func (m *Manager) parseTime(id, value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		m.logger.Warn("NWS timestamp parsing failed", "id", id, "error", err.Error())
		return time.Time{}
	}
	return ts
}
