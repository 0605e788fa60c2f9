package models

import "time"

type HazardCategory string

const (
	HazardEarthquake HazardCategory = "earthquake"
	HazardFlood      HazardCategory = "flood"
	HazardWildfire   HazardCategory = "wildfire"
	HazardTornado    HazardCategory = "tornado"
	HazardStorm      HazardCategory = "storm"
	HazardOther      HazardCategory = "other"
)

type Severity string

const (
	SeverityExtreme  Severity = "Extreme"
	SeveritySevere   Severity = "Severe"
	SeverityModerate Severity = "Moderate"
	SeverityMinor    Severity = "Minor"
	SeverityUnknown  Severity = "Unknown"
)

var severityRanks = map[Severity]int{
	SeverityExtreme:  4,
	SeveritySevere:   3,
	SeverityModerate: 2,
	SeverityMinor:    1,
}

// Rank orders severities for display; anything unrecognized is 0.
func (s Severity) Rank() int {
	return severityRanks[s]
}

type PointHazard struct {
	ID        string         `json:"id"`
	Kind      HazardCategory `json:"kind"`
	Location  Location       `json:"location"`
	Magnitude float64        `json:"magnitude"`
	Timestamp time.Time      `json:"timestamp"`
	Title     string         `json:"title"`
	Place     string         `json:"place,omitempty"`
}

type AreaHazard struct {
	ID          string         `json:"id"`
	Event       string         `json:"event"`
	Kind        HazardCategory `json:"kind"`
	Polygon     [][]float64    `json:"polygon"` // outer ring of (lon, lat) pairs
	Severity    Severity       `json:"severity"`
	Urgency     string         `json:"urgency,omitempty"`
	Headline    string         `json:"headline,omitempty"`
	Description string         `json:"description,omitempty"`
	Sent        time.Time      `json:"sent"`
	Expires     time.Time      `json:"expires"`
}

type NearbyHazard struct {
	ID          string         `json:"id"`
	Category    HazardCategory `json:"type"`
	Event       string         `json:"event"`
	Magnitude   float64        `json:"magnitude,omitempty"`
	Place       string         `json:"location,omitempty"`
	Time        *time.Time     `json:"time,omitempty"`
	Coordinates *Location      `json:"coordinates,omitempty"`
	DistanceKm  *float64       `json:"distance_km,omitempty"`
	Severity    Severity       `json:"severity,omitempty"`
	Urgency     string         `json:"urgency,omitempty"`
	Headline    string         `json:"headline,omitempty"`
	Description string         `json:"description,omitempty"`
	Sent        *time.Time     `json:"sent,omitempty"`
	Expires     *time.Time     `json:"expires,omitempty"`
	Contained   bool           `json:"contained"`
}
