package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

var (
	errEmptyReply      = errors.New("empty ranker reply")
	errNoArray         = errors.New("no JSON array in ranker reply")
	errEmptyArray      = errors.New("ranker returned an empty array")
	errNoUsableEntries = errors.New("no ranking entry matched a candidate")
)

// rankEntry is one validated line of a ranker reply. Score and Reason are
// nil/empty when the ranker left them out.
type rankEntry struct {
	ID     string
	Rank   int
	Score  *float64
	Reason string
}

// extractArray finds the first well-formed JSON array in text, ignoring any
// prose or code fences around it.
func extractArray(text string) ([]json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errEmptyReply
	}
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		var arr []json.RawMessage
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		if err := dec.Decode(&arr); err == nil {
			return arr, nil
		}
	}
	return nil, errNoArray
}

// parseRankings decodes a ranker reply into entries. Entries without a string
// id or with a rank that is not a whole number >= 1 are dropped.
func parseRankings(text string) ([]rankEntry, error) {
	raw, err := extractArray(text)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errEmptyArray
	}

	entries := make([]rankEntry, 0, len(raw))
	for _, item := range raw {
		entry, ok := decodeEntry(item)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeEntry(item json.RawMessage) (rankEntry, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return rankEntry{}, false
	}

	var entry rankEntry
	if err := json.Unmarshal(fields["id"], &entry.ID); err != nil || strings.TrimSpace(entry.ID) == "" {
		return rankEntry{}, false
	}

	var rank float64
	if err := json.Unmarshal(fields["rank"], &rank); err != nil {
		return rankEntry{}, false
	}
	if rank < 1 || rank != math.Trunc(rank) || rank > math.MaxInt32 {
		return rankEntry{}, false
	}
	entry.Rank = int(rank)

	// non-numeric scores and reasons count as missing
	var score float64
	if raw, ok := fields["score"]; ok && json.Unmarshal(raw, &score) == nil {
		entry.Score = &score
	}
	var reason string
	if raw, ok := fields["reason"]; ok && json.Unmarshal(raw, &reason) == nil {
		entry.Reason = strings.TrimSpace(reason)
	}
	return entry, true
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// mergeRankings joins validated entries with their candidate shelters and
// orders them by rank. total is the number of valid shelters and drives the
// default score.
func mergeRankings(entries []rankEntry, candidates map[string]candidateShelter, dt models.DisasterType, total int) ([]models.RankedShelter, error) {
	seen := make(map[string]bool, len(entries))
	ranked := make([]models.RankedShelter, 0, len(entries))
	for _, e := range entries {
		c, ok := candidates[e.ID]
		if !ok || seen[e.ID] {
			continue
		}
		seen[e.ID] = true

		score := 1 - float64(e.Rank-1)/float64(total)
		if e.Score != nil {
			score = *e.Score
		}
		reason := e.Reason
		if reason == "" {
			reason = fmt.Sprintf("Ranked #%d for %s", e.Rank, dt)
		}

		ranked = append(ranked, models.RankedShelter{
			Shelter:    c.shelter,
			DistanceKm: c.distanceKm,
			Score:      clamp01(score),
			Rank:       e.Rank,
			Reason:     reason,
			Source:     models.RankSourceAI,
		})
	}
	if len(ranked) == 0 {
		return nil, errNoUsableEntries
	}

	sortByRank(ranked)
	return ranked, nil
}
