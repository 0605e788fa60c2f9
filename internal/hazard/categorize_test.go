package hazard

import (
	"testing"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		event  string
		source string
		want   models.HazardCategory
	}{
		{"Flash Flood Warning", "", models.HazardFlood},
		{"Coastal Flood Advisory", "", models.HazardFlood},
		{"Red Flag Warning", "", models.HazardWildfire},
		{"Extreme Fire Danger", "", models.HazardWildfire},
		{"Tornado Warning", "", models.HazardTornado},
		{"Funnel Cloud Advisory", "", models.HazardTornado},
		{"Severe Thunderstorm Watch", "", models.HazardStorm},
		{"High Wind Warning", "", models.HazardStorm},
		{"Hurricane Warning", "", models.HazardStorm},
		{"Tropical Storm Watch", "", models.HazardStorm},
		{"Dense Fog Advisory", "", models.HazardOther},
		{"", "", models.HazardOther},
		{"Anything at all", "earthquake", models.HazardEarthquake},
		{"Flood Warning", "Earthquake", models.HazardEarthquake},
	}

	for _, tt := range tests {
		t.Run(tt.event+"/"+tt.source, func(t *testing.T) {
			if got := Categorize(tt.event, tt.source); got != tt.want {
				t.Errorf("Categorize(%q, %q) = %s, want %s", tt.event, tt.source, got, tt.want)
			}
		})
	}
}

func TestCategorize_Precedence(t *testing.T) {
	// flood rule is consulted before storm
	if got := Categorize("Storm Surge Flooding Warning", ""); got != models.HazardFlood {
		t.Errorf("expected flood, got %s", got)
	}
	// fire before wind
	if got := Categorize("Fire Weather Wind Advisory", ""); got != models.HazardWildfire {
		t.Errorf("expected wildfire, got %s", got)
	}
	// tornado before storm
	if got := Categorize("Tornado and Severe Thunderstorm Warning", ""); got != models.HazardTornado {
		t.Errorf("expected tornado, got %s", got)
	}
}
