package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-attendance/internal/engine"
)

type OfficialHoliday struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date      time.Time      `gorm:"type:date;not null;uniqueIndex"`
	Name      string         `gorm:"type:varchar(120);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (OfficialHoliday) TableName() string {
	return "official_holidays"
}

func (h OfficialHoliday) ToEngine() engine.OfficialHoliday {
	return engine.OfficialHoliday{
		Date: engine.DateOnly(h.Date),
		Name: h.Name,
	}
}
