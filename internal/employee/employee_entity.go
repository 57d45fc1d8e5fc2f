package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-attendance/internal/engine"
)

type Employee struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code            string         `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name            string         `gorm:"type:varchar(120);not null"`
	Sector          string         `gorm:"type:varchar(60);index"`
	Department      string         `gorm:"type:varchar(60);index"`
	Section         string         `gorm:"type:varchar(60)"`
	Branch          string         `gorm:"type:varchar(60)"`
	ShiftStart      string         `gorm:"type:varchar(5);not null;default:'09:00'"`
	TerminationDate *time.Time     `gorm:"type:date"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// ToEngine maps the row to the engine's read-only snapshot type.
func (e Employee) ToEngine() engine.Employee {
	return engine.Employee{
		Code:            e.Code,
		Name:            e.Name,
		Sector:          e.Sector,
		Department:      e.Department,
		Section:         e.Section,
		Branch:          e.Branch,
		ShiftStart:      e.ShiftStart,
		TerminationDate: e.TerminationDate,
	}
}
