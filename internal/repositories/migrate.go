package repository

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/nppdeals/inventory-platform/internal/utils"
)

//go:embed schema.sql
var schema string

// Migrate creates any missing tables. Every statement is idempotent.
func (p *Repository) Migrate(ctx context.Context) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := p.DB.ExecContext(dbCtx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}
