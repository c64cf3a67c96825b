package store

import (
	"context"

	"tradeledger/internal/model"
	"tradeledger/pkg/exception"

	"github.com/yanun0323/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time interface checks.
var _ Repository = (*Gorm)(nil)

// Gorm implements Repository on top of a gorm connection. It runs against
// PostgreSQL in production and SQLite locally.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate creates or updates the ledger tables.
func (s *Gorm) Migrate(ctx context.Context) error {
	if err := s.conn(ctx).AutoMigrate(
		&model.Profile{},
		&model.Account{},
		&model.Holding{},
		&model.Order{},
		&model.Quote{},
	); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}

func (s *Gorm) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx})
	})
}

func (s *Gorm) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func forUpdate() clause.Expression {
	return clause.Locking{Strength: "UPDATE"}
}

// affected turns a zero-row write into ErrNotFound.
func affected(result *gorm.DB, format string, args ...any) error {
	if result.Error != nil {
		return errors.Wrapf(result.Error, format, args...)
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(exception.ErrNotFound, format, args...)
	}
	return nil
}
