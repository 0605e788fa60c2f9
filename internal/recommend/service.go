// Package recommend orders shelters for a user, asking an external Ranker
// first and falling back to deterministic criteria scoring whenever the
// ranker fails, times out, or replies with nothing usable.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
	"github.com/mr1hm/go-shelter-advisor/internal/observability"
	"github.com/mr1hm/go-shelter-advisor/internal/shelter"
)

const (
	DefaultCandidateLimit = 10
	DefaultRankerTimeout  = 12 * time.Second
)

type Options struct {
	// Ranker may be nil, in which case every request uses local scoring.
	Ranker         Ranker
	Scorer         *shelter.Scorer
	Timeout        time.Duration
	CandidateLimit int
	Cache          *ResultCache
	Metrics        *observability.Metrics
	Logger         *slog.Logger
}

// Service is safe for concurrent use; it keeps no per-request state.
type Service struct {
	ranker         Ranker
	scorer         *shelter.Scorer
	timeout        time.Duration
	candidateLimit int
	cache          *ResultCache
	metrics        *observability.Metrics
	logger         *slog.Logger
}

func NewService(opts Options) *Service {
	if opts.Scorer == nil {
		opts.Scorer = shelter.NewScorer(shelter.DistanceProfileWide)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultRankerTimeout
	}
	if opts.CandidateLimit <= 0 {
		opts.CandidateLimit = DefaultCandidateLimit
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		ranker:         opts.Ranker,
		scorer:         opts.Scorer,
		timeout:        opts.Timeout,
		candidateLimit: opts.CandidateLimit,
		cache:          opts.Cache,
		metrics:        opts.Metrics,
		logger:         opts.Logger.With("component", "recommend.service"),
	}
}

type candidateShelter struct {
	shelter    models.Shelter
	distanceKm float64
}

// Recommend ranks shelters for the user. It fails only when the user location
// is invalid or no shelter passes validation; ranker problems are absorbed by
// the fallback.
func (s *Service) Recommend(ctx context.Context, dt models.DisasterType, user models.Location, shelters []models.Shelter) ([]models.RankedShelter, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	valid := shelter.FilterValid(shelters)
	if len(valid) == 0 {
		return nil, models.ErrNoValidShelters
	}

	if s.ranker == nil {
		return s.fallback(dt, user, valid, "disabled")
	}

	nearest := shelter.Nearest(valid, user, s.candidateLimit)
	ranked, err := s.rankWithAI(ctx, dt, user, nearest, len(valid))
	if err != nil {
		reason := failureReason(err)
		s.logger.Warn("ai ranking unavailable, using fallback", "disaster", dt.String(), "reason", reason, "error", err)
		if s.metrics != nil {
			s.metrics.RankerFailures.WithLabelValues(reason).Inc()
		}
		return s.fallback(dt, user, valid, reason)
	}

	s.logger.Info("shelters ranked", "source", models.RankSourceAI, "disaster", dt.String(), "count", len(ranked))
	s.countSource(models.RankSourceAI)
	return ranked, nil
}

func (s *Service) rankWithAI(ctx context.Context, dt models.DisasterType, user models.Location, nearest []shelter.Located, total int) ([]models.RankedShelter, error) {
	byID := make(map[string]candidateShelter, len(nearest))
	ids := make([]string, 0, len(nearest))
	candidates := make([]Candidate, 0, len(nearest))
	for _, l := range nearest {
		if _, dup := byID[l.Shelter.ID]; dup {
			continue
		}
		byID[l.Shelter.ID] = candidateShelter{shelter: l.Shelter, distanceKm: l.DistanceKm}
		ids = append(ids, l.Shelter.ID)
		candidates = append(candidates, newCandidate(l.Shelter, l.DistanceKm))
	}

	key := cacheKey(dt, user, ids)
	if entries, ok := s.cache.get(key); ok {
		s.countCache("hit")
		return mergeRankings(entries, byID, dt, total)
	}
	if s.cache != nil {
		s.countCache("miss")
	}

	req := RankRequest{
		DisasterType: dt,
		User:         user,
		Candidates:   candidates,
		CriteriaText: CriteriaText(dt),
	}

	rankCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.callRanker(rankCtx, req)
	if s.metrics != nil {
		s.metrics.RankerDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrRankingUnavailable, err)
	}

	entries, err := parseRankings(reply)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrRankingUnavailable, err)
	}
	ranked, err := mergeRankings(entries, byID, dt, total)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrRankingUnavailable, err)
	}

	s.cache.set(key, entries)
	return ranked, nil
}

type rankResult struct {
	reply string
	err   error
}

// callRanker returns when the ranker does or when ctx is done, whichever comes
// first. A ranker that ignores ctx is left to finish on its own goroutine.
func (s *Service) callRanker(ctx context.Context, req RankRequest) (string, error) {
	done := make(chan rankResult, 1)
	go func() {
		reply, err := s.ranker.Rank(ctx, req)
		done <- rankResult{reply: reply, err: err}
	}()

	select {
	case res := <-done:
		if res.err == nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
		return res.reply, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *Service) fallback(dt models.DisasterType, user models.Location, valid []models.Shelter, reason string) ([]models.RankedShelter, error) {
	ranked, err := s.scorer.Score(valid, dt, user)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, models.ErrNoValidShelters
	}
	s.logger.Info("shelters ranked", "source", models.RankSourceFallback, "disaster", dt.String(), "reason", reason, "count", len(ranked))
	s.countSource(models.RankSourceFallback)
	return ranked, nil
}

// Score exposes the deterministic scorer directly.
func (s *Service) Score(dt models.DisasterType, user models.Location, shelters []models.Shelter) ([]models.RankedShelter, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	valid := shelter.FilterValid(shelters)
	if len(valid) == 0 {
		return nil, models.ErrNoValidShelters
	}
	return s.scorer.Score(valid, dt, user)
}

func (s *Service) countSource(src models.RankSource) {
	if s.metrics != nil {
		s.metrics.Recommendations.WithLabelValues(string(src)).Inc()
	}
}

func (s *Service) countCache(result string) {
	if s.metrics != nil {
		s.metrics.RankerCache.WithLabelValues(result).Inc()
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, errEmptyReply), errors.Is(err, errEmptyArray):
		return "empty"
	case errors.Is(err, errNoArray):
		return "parse"
	case errors.Is(err, errNoUsableEntries):
		return "invalid"
	default:
		return "error"
	}
}

func sortByRank(ranked []models.RankedShelter) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank < ranked[j].Rank
	})
}
