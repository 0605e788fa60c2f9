package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/mr1hm/go-shelter-advisor/internal/config"
	"github.com/mr1hm/go-shelter-advisor/internal/hazard"
	"github.com/mr1hm/go-shelter-advisor/internal/models"
	"github.com/mr1hm/go-shelter-advisor/internal/observability"
)

const (
	feedUSGS = "usgs"
	feedNWS  = "nws"
)

// Manager polls the hazard feeds and publishes each round to the Store as one
// snapshot. A feed that fails keeps its previous records.
type Manager struct {
	cfg     config.HazardsConfig
	store   *hazard.Store
	clock   clockwork.Clock
	client  *http.Client
	metrics *observability.Metrics
	logger  *slog.Logger
	wg      sync.WaitGroup

	mu     sync.Mutex
	quakes []models.PointHazard
	areas  []models.AreaHazard
}

func NewManager(cfg config.HazardsConfig, store *hazard.Store, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:     cfg,
		store:   store,
		clock:   clock,
		client:  &http.Client{Timeout: 15 * time.Second},
		metrics: metrics,
		logger:  logger.With("component", "ingestion"),
	}
}

func (m *Manager) Start(ctx context.Context) {
	if !m.cfg.USGSEnabled && !m.cfg.NWSEnabled {
		m.logger.Info("all hazard feeds disabled")
		return
	}
	m.wg.Add(1)
	go m.runPoller(ctx)
}

func (m *Manager) runPoller(ctx context.Context) {
	defer m.wg.Done()
	m.logger.Info("starting hazard poller", "interval", m.cfg.PollInterval, "usgs", m.cfg.USGSEnabled, "nws", m.cfg.NWSEnabled)

	ticker := m.clock.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	// Initial poll
	m.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("hazard poller shutting down")
			return
		case <-ticker.Chan():
			m.poll(ctx)
		}
	}
}

func (m *Manager) poll(ctx context.Context) {
	if err := m.Refresh(ctx); err != nil {
		m.logger.Error("hazard refresh incomplete", "error", err)
	}
}

// Refresh fetches every enabled feed concurrently and publishes a new
// snapshot. The returned error is the first feed failure; the snapshot is
// published either way.
func (m *Manager) Refresh(ctx context.Context) error {
	var (
		g        errgroup.Group
		quakes   []models.PointHazard
		areas    []models.AreaHazard
		quakeErr error
		areaErr  error
	)

	if m.cfg.USGSEnabled {
		g.Go(func() error {
			quakes, quakeErr = m.pollUSGS(ctx, m.cfg.USGSURL)
			m.countRefresh(feedUSGS, quakeErr)
			if quakeErr != nil {
				return fmt.Errorf("usgs: %w", quakeErr)
			}
			return nil
		})
	}
	if m.cfg.NWSEnabled {
		g.Go(func() error {
			areas, areaErr = m.pollNWS(ctx, m.cfg.NWSURL)
			m.countRefresh(feedNWS, areaErr)
			if areaErr != nil {
				return fmt.Errorf("nws: %w", areaErr)
			}
			return nil
		})
	}
	err := g.Wait()

	m.mu.Lock()
	if m.cfg.USGSEnabled && quakeErr == nil {
		m.quakes = quakes
	}
	if m.cfg.NWSEnabled && areaErr == nil {
		m.areas = areas
	}
	snap := m.store.Replace(m.quakes, m.areas)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.HazardsActive.Reset()
		for kind, n := range snap.CountByKind() {
			m.metrics.HazardsActive.WithLabelValues(string(kind)).Set(float64(n))
		}
	}
	m.logger.Debug("hazard snapshot published", "earthquakes", len(snap.Earthquakes), "area_hazards", len(snap.AreaHazards))

	return err
}

func (m *Manager) countRefresh(feed string, err error) {
	if m.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.metrics.HazardRefresh.WithLabelValues(feed, outcome).Inc()
}

func (m *Manager) Stop() {
	m.wg.Wait()
	m.client.CloseIdleConnections()
	m.logger.Info("ingestion manager stopped")
}
