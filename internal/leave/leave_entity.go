package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-attendance/internal/engine"
)

type Leave struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type       string         `gorm:"type:varchar(20);not null;default:'official'"`
	Scope      string         `gorm:"type:varchar(20);not null;default:'all'"`
	ScopeValue string         `gorm:"type:varchar(120)"`
	StartDate  time.Time      `gorm:"type:date;not null;index"`
	EndDate    time.Time      `gorm:"type:date;not null;index"`
	Note       string         `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Leave) TableName() string {
	return "leaves"
}

func (l Leave) ToEngine() engine.Leave {
	return engine.Leave{
		Type:       l.Type,
		Scope:      engine.LeaveScope(l.Scope),
		ScopeValue: l.ScopeValue,
		StartDate:  engine.DateOnly(l.StartDate),
		EndDate:    engine.DateOnly(l.EndDate),
		Note:       l.Note,
	}
}
