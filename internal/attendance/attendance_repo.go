package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	DeleteRange(ctx context.Context, employeeCodes []string, from, to time.Time) error
	CreateBatch(ctx context.Context, rows []AttendanceRecord) error
	FindFiltered(ctx context.Context, f GetAttendanceFilter, from, to time.Time) ([]AttendanceRecord, int64, error)
	FindByRange(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error)
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

// DeleteRange removes prior records for the processed employees inside the
// range. Records of employees outside the selection are left untouched.
func (r *repository) DeleteRange(ctx context.Context, employeeCodes []string, from, to time.Time) error {
	q := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to)
	if len(employeeCodes) > 0 {
		q = q.Where("employee_code IN ?", employeeCodes)
	}
	return q.Delete(&AttendanceRecord{}).Error
}

func (r *repository) CreateBatch(ctx context.Context, rows []AttendanceRecord) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, 500).Error
}

func (r *repository) FindFiltered(ctx context.Context, f GetAttendanceFilter, from, to time.Time) ([]AttendanceRecord, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&AttendanceRecord{}).
		Where("date >= ? AND date <= ?", from, to)
	if f.EmployeeCode != "" {
		base = base.Where("employee_code = ?", f.EmployeeCode)
	}
	if f.Status != "" {
		base = base.Where("status = ?", f.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 50
	}

	var rows []AttendanceRecord
	err := base.
		Order("employee_code ASC, date ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) FindByRange(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("employee_code ASC, date ASC").
		Find(&rows).Error
	return rows, err
}
