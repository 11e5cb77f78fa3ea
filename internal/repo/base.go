package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base binds a GORM handle, either the pool or an open transaction, to
// the caller's context.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Handle returns the unbound connection; repositories use it to build
// sibling repositories over the same transaction.
func (b Base) Handle() *gorm.DB {
	return b.db
}
