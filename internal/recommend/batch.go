package recommend

import (
	"context"
	"time"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
	"github.com/mr1hm/go-shelter-advisor/internal/worker"
)

type BatchItem struct {
	DisasterType models.DisasterType
	User         models.Location
}

type BatchResult struct {
	Shelters []models.RankedShelter
	Err      error
}

// RecommendBatch runs Recommend for every item with at most workers ranker
// calls in flight. Results line up with items; a failed item does not affect
// the others.
func (s *Service) RecommendBatch(ctx context.Context, items []BatchItem, shelters []models.Shelter, workers int) []BatchResult {
	start := time.Now()
	results := make([]BatchResult, len(items))

	worker.Process(ctx, workers, items, func(ctx context.Context, i int, item BatchItem) error {
		ranked, err := s.Recommend(ctx, item.DisasterType, item.User, shelters)
		results[i] = BatchResult{Shelters: ranked, Err: err}
		return err
	}, s.logger)

	for i := range results {
		if results[i].Shelters == nil && results[i].Err == nil {
			results[i].Err = ctx.Err()
		}
	}
	if s.metrics != nil {
		s.metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}
	return results
}
