package recommend

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

// SystemPrompt is sent as the system message by every ranking backend.
const SystemPrompt = "You are a disaster preparedness expert. Always respond with valid JSON only."

var criteriaLines = map[models.DisasterType][]string{
	models.DisasterTypeFlood: {
		"Elevation and height above flood level (MOST IMPORTANT)",
		"Distance from flood-prone areas",
		"Multi-story buildings preferred",
		"Avoid basements or ground floors",
	},
	models.DisasterTypeEarthquake: {
		"Structural integrity and building codes compliance",
		"Distance from fault lines",
		"Newer construction preferred",
		"Open areas around building for safety",
	},
	models.DisasterTypeWildfire: {
		"Distance from fire-prone vegetation areas (MOST IMPORTANT)",
		"Concrete/brick construction preferred",
		"Access to water supply",
		"Clear evacuation routes",
	},
	models.DisasterTypeTornado: {
		"Underground or reinforced concrete structures (MOST IMPORTANT)",
		"Interior rooms without windows",
		"Lower floors preferred",
		"Avoid mobile structures",
	},
	models.DisasterTypeHurricane: {
		"Reinforced construction",
		"Elevated structures (above storm surge)",
		"Distance from coast",
		"Structural wind resistance",
	},
	models.DisasterTypeNone: {
		"General structural integrity",
		"Accessibility",
		"Capacity for occupants",
		"Distance from user location",
	},
}

// CriteriaText returns the bullet list of ranking criteria for dt.
func CriteriaText(dt models.DisasterType) string {
	lines, ok := criteriaLines[dt]
	if !ok {
		lines = criteriaLines[models.DisasterTypeNone]
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(line)
	}
	return b.String()
}

// BuildPrompt renders the user message for a ranking request.
func BuildPrompt(req RankRequest) (string, error) {
	shelters, err := json.MarshalIndent(req.Candidates, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding candidates: %w", err)
	}
	criteria := req.CriteriaText
	if criteria == "" {
		criteria = CriteriaText(req.DisasterType)
	}
	n := len(req.Candidates)

	var b strings.Builder
	b.WriteString("You are an expert in disaster safety and emergency management.\n\n")
	fmt.Fprintf(&b, "DISASTER: %s\n", req.DisasterType)
	fmt.Fprintf(&b, "USER LOCATION: (%v, %v)\n\n", req.User.Latitude, req.User.Longitude)
	b.WriteString("SHELTERS TO EVALUATE:\n")
	b.Write(shelters)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "TASK: Rank these shelters from 1 (best) to %d (worst) for this specific disaster type.\n\n", n)
	fmt.Fprintf(&b, "RANKING CRITERIA for %s:\n%s\n\n", req.DisasterType, criteria)
	b.WriteString("REQUIRED OUTPUT FORMAT (return ONLY valid JSON):\n")
	b.WriteString(`[
  {
    "id": "shelter_id",
    "rank": 1,
    "score": 0.95,
    "reason": "Brief explanation why this shelter is ranked here"
  }
]`)
	fmt.Fprintf(&b, "\n\nReturn EXACTLY a JSON array with all %d shelters ranked.", n)
	return b.String(), nil
}
