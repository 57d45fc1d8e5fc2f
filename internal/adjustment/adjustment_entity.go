package adjustment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-attendance/internal/engine"
)

type Adjustment struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeCode string         `gorm:"type:varchar(20);not null;index:idx_adjustments_employee_date"`
	Date         time.Time      `gorm:"type:date;not null;index:idx_adjustments_employee_date"`
	Type         string         `gorm:"type:varchar(30);not null"`
	FromTime     string         `gorm:"type:varchar(5)"` // local "HH:MM"
	ToTime       string         `gorm:"type:varchar(5)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Adjustment) TableName() string {
	return "adjustments"
}

func (a Adjustment) ToEngine() engine.Adjustment {
	return engine.Adjustment{
		EmployeeCode: a.EmployeeCode,
		Date:         engine.DateOnly(a.Date),
		Type:         engine.AdjustmentType(a.Type),
		FromTime:     a.FromTime,
		ToTime:       a.ToTime,
	}
}

// knownTypes gates creation; the engine ignores types it does not model, so
// rejecting here keeps typos out of the data.
var knownTypes = map[engine.AdjustmentType]struct{}{
	engine.AdjMorningPermission: {},
	engine.AdjEveningPermission: {},
	engine.AdjHalfDayLeave:      {},
	engine.AdjMission:           {},
	engine.AdjLeaveDeduction:    {},
	engine.AdjExcusedAbsence:    {},
}

func IsKnownType(t string) bool {
	_, ok := knownTypes[engine.AdjustmentType(t)]
	return ok
}
