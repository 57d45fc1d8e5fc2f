package punch

import (
	"time"

	"github.com/google/uuid"

	"go-attendance/internal/engine"
)

// Punch is an immutable raw biometric stamp. Rows are only ever inserted;
// reprocessing reads them fresh each run.
type Punch struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeCode  string    `gorm:"type:varchar(20);not null;index:idx_punches_employee_time"`
	PunchDatetime time.Time `gorm:"type:timestamptz;not null;index:idx_punches_employee_time"`
	CreatedAt     time.Time
}

func (Punch) TableName() string {
	return "biometric_punches"
}

func (p Punch) ToEngine() engine.Punch {
	return engine.Punch{
		EmployeeCode: p.EmployeeCode,
		At:           p.PunchDatetime,
	}
}
