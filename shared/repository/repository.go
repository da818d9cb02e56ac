// Package repository wraps the raw SQL the core issues against Postgres.
// No ORM codegen: every query here is a literal string run through sqlx.
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/zeromicro/go-zero/core/logx"
)

// BaseRepository provides common database operations shared by the
// domain-specific repositories.
type BaseRepository struct {
	db *sqlx.DB
}

func NewBaseRepository(db *sqlx.DB) *BaseRepository {
	return &BaseRepository{db: db}
}

// DB exposes the underlying handle to domain repositories embedding this type.
func (r *BaseRepository) DB() *sqlx.DB {
	return r.db
}

// Transaction executes fn within a database transaction, rolling back on
// error or panic and committing otherwise. The lesson pick-or-create core
// relies on this to keep count/select/insert atomic.
func (r *BaseRepository) Transaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logx.Errorf("failed to begin transaction: %v", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logx.Errorf("failed to roll back transaction: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		logx.Errorf("failed to commit transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
