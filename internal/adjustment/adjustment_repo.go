package adjustment

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=adjustment_repo.go -destination=mock/adjustment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Adjustment) error
	FindByRange(ctx context.Context, from, to time.Time) ([]Adjustment, error)
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

func (r *repository) Create(ctx context.Context, a *Adjustment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByRange(ctx context.Context, from, to time.Time) ([]Adjustment, error) {
	var rows []Adjustment
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("employee_code ASC, date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&Adjustment{}, "id = ?", id).Error
}
