package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/application/listing"
)

// WithReadSnapshot runs fn against a single REPEATABLE READ, read-only
// transaction so that every query inside fn sees the same data.
func (r *Repo) WithReadSnapshot(ctx context.Context, fn func(q listing.EventQuerier) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}

	tr := &Repo{db: r.db, q: tx}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tr); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}
