package punch

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=punch_repo.go -destination=mock/punch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBatch(ctx context.Context, punches []Punch) (int64, error)
	FindByRange(ctx context.Context, from, to time.Time) ([]Punch, error)
	FindByEmployeeAndRange(ctx context.Context, employeeCode string, from, to time.Time) ([]Punch, error)
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

// CreateBatch inserts punches, silently skipping exact (code, instant)
// duplicates so importer re-runs stay idempotent.
func (r *repository) CreateBatch(ctx context.Context, punches []Punch) (int64, error) {
	if len(punches) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_code"}, {Name: "punch_datetime"}},
			DoNothing: true,
		}).
		CreateInBatches(punches, 500)
	return res.RowsAffected, res.Error
}

func (r *repository) FindByRange(ctx context.Context, from, to time.Time) ([]Punch, error) {
	var rows []Punch
	err := r.db.WithContext(ctx).
		Where("punch_datetime >= ? AND punch_datetime < ?", from, to).
		Order("employee_code ASC, punch_datetime ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, employeeCode string, from, to time.Time) ([]Punch, error) {
	var rows []Punch
	err := r.db.WithContext(ctx).
		Where("employee_code = ?", employeeCode).
		Where("punch_datetime >= ? AND punch_datetime < ?", from, to).
		Order("punch_datetime ASC").
		Find(&rows).Error
	return rows, err
}
