package rule

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rule_repo.go -destination=mock/rule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *SpecialRule) error
	FindAll(ctx context.Context) ([]SpecialRule, error)
	FindOverlappingRange(ctx context.Context, from, to time.Time) ([]SpecialRule, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, row *SpecialRule) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) FindAll(ctx context.Context) ([]SpecialRule, error) {
	var rows []SpecialRule
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// FindOverlappingRange returns rules whose validity window intersects
// [from, to], in creation order so priority ties stay stable.
func (r *repository) FindOverlappingRange(ctx context.Context, from, to time.Time) ([]SpecialRule, error) {
	var rows []SpecialRule
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&SpecialRule{}, "id = ?", id).Error
}
