package repo

import (
	"context"
	"fmt"

	"timelessme/internal/infra"
	"timelessme/internal/sqlinline"
)

// EnsureSchema creates the credential and journal tables when missing.
func EnsureSchema(ctx context.Context, sql infra.SQLExecutor) error {
	if _, err := sql.Exec(ctx, sqlinline.QEnsureSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
