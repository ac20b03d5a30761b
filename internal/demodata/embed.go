// Package demodata registers sample applications for demo deployments.
package demodata

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed sample.sql
var sampleSQL string

// Load registers the sample applications in one transaction. Call it only on
// a freshly migrated database; existing names or uuids make it fail.
func Load(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, sampleSQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("load demo applications: %w", err)
	}
	return tx.Commit()
}
