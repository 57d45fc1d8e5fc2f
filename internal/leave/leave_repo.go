package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindOverlappingRange(ctx context.Context, from, to time.Time) ([]Leave, error)
	Delete(ctx context.Context, id string) error

	CreateHoliday(ctx context.Context, h *OfficialHoliday) error
	FindHolidaysInRange(ctx context.Context, from, to time.Time) ([]OfficialHoliday, error)
	DeleteHoliday(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindOverlappingRange(ctx context.Context, from, to time.Time) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&Leave{}, "id = ?", id).Error
}

func (r *repository) CreateHoliday(ctx context.Context, h *OfficialHoliday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindHolidaysInRange(ctx context.Context, from, to time.Time) ([]OfficialHoliday, error) {
	var rows []OfficialHoliday
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteHoliday(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&OfficialHoliday{}, "id = ?", id).Error
}
