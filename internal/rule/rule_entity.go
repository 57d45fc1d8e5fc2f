package rule

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-attendance/internal/engine"
)

// SpecialRule stores the params payload as JSONB; the shape depends on
// rule_type and is decoded into the engine's tagged union on load.
type SpecialRule struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Scope     string          `gorm:"type:varchar(200);not null;default:'all'"`
	RuleType  string          `gorm:"type:varchar(30);not null;index"`
	StartDate time.Time       `gorm:"type:date;not null;index"`
	EndDate   time.Time       `gorm:"type:date;not null;index"`
	Priority  int             `gorm:"type:int;not null;default:0"`
	Params    json.RawMessage `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SpecialRule) TableName() string {
	return "special_rules"
}

type customShiftPayload struct {
	ShiftStart string `json:"shiftStart"`
	ShiftEnd   string `json:"shiftEnd"`
}

type exemptPayload struct {
	LeaveType string `json:"leaveType"`
}

// ToEngine decodes the row into the engine rule. Unknown rule types are
// rejected at creation, so a decode failure here is a data error.
func (r SpecialRule) ToEngine() (engine.SpecialRule, error) {
	out := engine.SpecialRule{
		ID:        r.ID.String(),
		Scope:     r.Scope,
		Type:      engine.RuleType(r.RuleType),
		StartDate: engine.DateOnly(r.StartDate),
		EndDate:   engine.DateOnly(r.EndDate),
		Priority:  r.Priority,
	}

	switch engine.RuleType(r.RuleType) {
	case engine.RuleCustomShift:
		var p customShiftPayload
		if err := json.Unmarshal(r.Params, &p); err != nil {
			return out, fmt.Errorf("decode custom_shift params: %w", err)
		}
		out.Params = engine.CustomShiftParams{ShiftStart: p.ShiftStart, ShiftEnd: p.ShiftEnd}
	case engine.RuleAttendanceExempt:
		var p exemptPayload
		if err := json.Unmarshal(r.Params, &p); err != nil {
			return out, fmt.Errorf("decode attendance_exempt params: %w", err)
		}
		out.Params = engine.ExemptParams{LeaveType: p.LeaveType}
	case engine.RuleOvernightStay:
		out.Params = engine.OvernightStayParams{}
	default:
		return out, fmt.Errorf("unknown rule type %q", r.RuleType)
	}
	return out, nil
}
