// Package repository holds the gorm-backed data access for categories, food
// items, languages and translations.
package repository

import (
	"context"
	"errors"
	"time"

	"pantry-backend/internal/database"

	"gorm.io/gorm"
)

// ErrDuplicateName is returned when a write hits a unique name index, which
// happens when two equal names are saved at the same moment.
var ErrDuplicateName = errors.New("name already exists")

// base carries the shared database handle and the per-query timeout.
type base struct {
	db      *database.Database
	timeout time.Duration
}

func newBase(db *database.Database) base {
	return base{db: db, timeout: db.GetQueryTimeout()}
}

func (r *base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func writeError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	return err
}
