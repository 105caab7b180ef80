package domain

import "context"

// GenerationRepository persists the generation journal.
type GenerationRepository interface {
	Record(ctx context.Context, event GenerationEvent) error
	Summary(ctx context.Context) ([]GenerationCount, error)
}
