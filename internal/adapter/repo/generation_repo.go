package repo

import (
	"context"
	"fmt"

	"timelessme/internal/domain"
	"timelessme/internal/infra"
	"timelessme/internal/sqlinline"
)

// GenerationRepositoryPG stores the generation journal in PostgreSQL.
type GenerationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewGenerationRepository constructs the repository.
func NewGenerationRepository(sql infra.SQLExecutor) *GenerationRepositoryPG {
	return &GenerationRepositoryPG{sql: sql}
}

// Record inserts a single generation event.
func (r *GenerationRepositoryPG) Record(ctx context.Context, ev domain.GenerationEvent) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertGenerationEvent,
		ev.ID,
		ev.SessionID,
		string(ev.Decade),
		string(ev.Outcome),
		ev.ErrorKind,
		int(ev.Latency.Milliseconds()),
		ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert generation event: %w", err)
	}
	return nil
}

// Summary returns event counts per decade and outcome.
func (r *GenerationRepositoryPG) Summary(ctx context.Context) ([]domain.GenerationCount, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QGenerationSummary)
	if err != nil {
		return nil, fmt.Errorf("query generation summary: %w", err)
	}
	defer rows.Close()

	var out []domain.GenerationCount
	for rows.Next() {
		var (
			decade, outcome string
			total           int64
		)
		if err := rows.Scan(&decade, &outcome, &total); err != nil {
			return nil, fmt.Errorf("scan generation summary: %w", err)
		}
		out = append(out, domain.GenerationCount{
			Decade:  domain.Decade(decade),
			Outcome: domain.GenerationOutcome(outcome),
			Total:   total,
		})
	}
	return out, rows.Err()
}

var _ domain.GenerationRepository = (*GenerationRepositoryPG)(nil)
