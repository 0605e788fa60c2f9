// Package catalog owns the shelter list: seeding sqlite from a YAML file and
// keeping an enriched in-memory copy for scoring.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
	"github.com/mr1hm/go-shelter-advisor/internal/repository"
	"github.com/mr1hm/go-shelter-advisor/internal/shelter"
)

// LoadSeed reads a YAML list of shelters.
func LoadSeed(path string) ([]models.Shelter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var shelters []models.Shelter
	if err := yaml.Unmarshal(data, &shelters); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return shelters, nil
}

type Catalog struct {
	repo     repository.ShelterRepository
	logger   *slog.Logger
	shelters atomic.Pointer[[]models.Shelter]
}

func New(repo repository.ShelterRepository, logger *slog.Logger) *Catalog {
	c := &Catalog{
		repo:   repo,
		logger: logger.With("component", "catalog"),
	}
	empty := []models.Shelter{}
	c.shelters.Store(&empty)
	return c
}

// Seed writes the seed file into the repository when it holds no shelters.
// A missing seed file is not an error.
func (c *Catalog) Seed(ctx context.Context, path string) (int, error) {
	n, err := c.repo.CountShelters(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		c.logger.Debug("repository already populated, skipping seed", "count", n)
		return 0, nil
	}

	seed, err := LoadSeed(path)
	if errors.Is(err, os.ErrNotExist) {
		c.logger.Warn("seed file not found", "path", path)
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	valid := shelter.FilterValid(seed)
	if skipped := len(seed) - len(valid); skipped > 0 {
		c.logger.Warn("skipping invalid seed shelters", "skipped", skipped)
	}
	written, err := c.repo.UpsertShelters(ctx, valid)
	if err != nil {
		return 0, err
	}
	c.logger.Info("seeded shelters", "count", written, "path", path)
	return written, nil
}

// Reload replaces the in-memory list with the enriched repository contents.
func (c *Catalog) Reload(ctx context.Context) error {
	stored, err := c.repo.ListShelters(ctx)
	if err != nil {
		return err
	}
	enriched := shelter.EnrichAll(stored)
	c.shelters.Store(&enriched)
	c.logger.Info("catalog loaded", "shelters", len(enriched))
	return nil
}

// Shelters returns the current enriched list. Callers must not modify it.
func (c *Catalog) Shelters() []models.Shelter {
	return *c.shelters.Load()
}

func (c *Catalog) Get(id string) (models.Shelter, bool) {
	for _, s := range c.Shelters() {
		if s.ID == id {
			return s, true
		}
	}
	return models.Shelter{}, false
}
