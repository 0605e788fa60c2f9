// Command hazard-check refreshes the hazard feeds once and prints the hazards
// near a location as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-shelter-advisor/internal/config"
	"github.com/mr1hm/go-shelter-advisor/internal/hazard"
	"github.com/mr1hm/go-shelter-advisor/internal/ingestion"
	"github.com/mr1hm/go-shelter-advisor/internal/logging"
	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

func main() {
	lat := flag.Float64("lat", 0, "latitude of the user")
	lon := flag.Float64("lon", 0, "longitude of the user")
	radius := flag.Float64("radius", 0, "earthquake search radius in km (default NEARBY_RADIUS_KM)")
	timeout := flag.Duration("timeout", 30*time.Second, "feed fetch timeout")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadHazards()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logger := logging.Setup(cfg.Logging.Level)

	if *radius <= 0 {
		*radius = cfg.Hazards.NearbyRadiusKm
	}
	user := models.Location{Latitude: *lat, Longitude: *lon}
	if err := user.Validate(); err != nil {
		logging.Fatalf("Invalid location: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	clock := clockwork.NewRealClock()
	store := hazard.NewStore(clock)
	mgr := ingestion.NewManager(cfg.Hazards, store, clock, nil, logger)
	defer mgr.Stop()

	if err := mgr.Refresh(ctx); err != nil {
		logger.Warn("hazard refresh incomplete", "error", err)
	}

	nearby, err := store.Nearby(&user, *radius)
	if err != nil {
		logging.Fatalf("Hazard lookup failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{
		"location":  user,
		"radius_km": *radius,
		"count":     len(nearby),
		"hazards":   nearby,
	}); err != nil {
		logging.Fatalf("Failed to write output: %v", err)
	}
}
