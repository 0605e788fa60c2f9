package hazard

import (
	"strings"

	a "github.com/petar-dambovaliev/aho-corasick"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

// SourceEarthquake marks records coming from a seismic feed.
const SourceEarthquake = "earthquake"

type keywordRule struct {
	category models.HazardCategory
	matcher  a.AhoCorasick
}

func newMatcher(keywords ...string) a.AhoCorasick {
	builder := a.NewAhoCorasickBuilder(a.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
	})
	return builder.Build(keywords)
}

// Order matters: the first rule with any hit wins.
var categoryRules = []keywordRule{
	{models.HazardFlood, newMatcher("flood", "flash flood", "river flood", "coastal flood", "flooding")},
	{models.HazardWildfire, newMatcher("fire", "red flag", "extreme fire", "wildfire", "brush fire")},
	{models.HazardTornado, newMatcher("tornado", "funnel cloud", "tornadic")},
	{models.HazardStorm, newMatcher("thunderstorm", "severe weather", "wind", "hail", "storm", "hurricane", "tropical storm")},
}

// Categorize maps an alert's event text and source type to a HazardCategory.
func Categorize(eventText, sourceType string) models.HazardCategory {
	if strings.EqualFold(strings.TrimSpace(sourceType), SourceEarthquake) {
		return models.HazardEarthquake
	}

	text := strings.ToLower(eventText)
	if text == "" {
		return models.HazardOther
	}
	for _, rule := range categoryRules {
		iter := rule.matcher.Iter(text)
		if iter.Next() != nil {
			return rule.category
		}
	}
	return models.HazardOther
}
