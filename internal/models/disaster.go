package models

import (
	"fmt"
	"strings"
)

type DisasterType int

const (
	DisasterTypeNone DisasterType = iota
	DisasterTypeFlood
	DisasterTypeEarthquake
	DisasterTypeWildfire
	DisasterTypeTornado
	DisasterTypeHurricane
)

var disasterTypeNames = map[DisasterType]string{
	DisasterTypeNone:       "none",
	DisasterTypeFlood:      "flood",
	DisasterTypeEarthquake: "earthquake",
	DisasterTypeWildfire:   "wildfire",
	DisasterTypeTornado:    "tornado",
	DisasterTypeHurricane:  "hurricane",
}

func (d DisasterType) String() string {
	if name, ok := disasterTypeNames[d]; ok {
		return name
	}
	return "none"
}

// ParseDisasterType maps a case-insensitive name to a DisasterType. An empty
// string is DisasterTypeNone; unknown names return false.
func ParseDisasterType(s string) (DisasterType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DisasterTypeNone, true
	}
	for dt, name := range disasterTypeNames {
		if name == s {
			return dt, true
		}
	}
	return DisasterTypeNone, false
}

func (d DisasterType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DisasterType) UnmarshalText(text []byte) error {
	dt, ok := ParseDisasterType(string(text))
	if !ok {
		return fmt.Errorf("%w: unknown disaster type %q", ErrInvalidParameter, string(text))
	}
	*d = dt
	return nil
}
