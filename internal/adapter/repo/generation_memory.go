package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"

	"timelessme/internal/domain"
)

type generationKey struct {
	decade  domain.Decade
	outcome domain.GenerationOutcome
}

// GenerationRepositoryMemory keeps per-decade outcome totals in process
// memory. It is used when no database is configured.
type GenerationRepositoryMemory struct {
	mu     sync.Mutex
	counts map[generationKey]int64
}

func NewGenerationRepositoryMemory() *GenerationRepositoryMemory {
	return &GenerationRepositoryMemory{counts: map[generationKey]int64{}}
}

func (r *GenerationRepositoryMemory) Record(_ context.Context, ev domain.GenerationEvent) error {
	r.mu.Lock()
	r.counts[generationKey{ev.Decade, ev.Outcome}]++
	r.mu.Unlock()
	return nil
}

// Summary matches the ordering of the PostgreSQL query: decade, then outcome.
func (r *GenerationRepositoryMemory) Summary(_ context.Context) ([]domain.GenerationCount, error) {
	r.mu.Lock()
	out := lo.MapToSlice(r.counts, func(k generationKey, total int64) domain.GenerationCount {
		return domain.GenerationCount{Decade: k.decade, Outcome: k.outcome, Total: total}
	})
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Decade != out[j].Decade {
			return out[i].Decade < out[j].Decade
		}
		return out[i].Outcome < out[j].Outcome
	})
	return out, nil
}

var _ domain.GenerationRepository = (*GenerationRepositoryMemory)(nil)
