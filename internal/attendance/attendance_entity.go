package attendance

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"go-attendance/internal/engine"
)

// AttendanceRecord is the persisted form of one engine day record. The
// (employee_code, date) pair is unique; reprocessing a range deletes and
// reinserts rather than updating in place.
type AttendanceRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeCode  string     `gorm:"size:32;not null;uniqueIndex:uq_attendance_employee_date" json:"employee_code"`
	Date          time.Time  `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date" json:"date"`
	CheckIn       *time.Time `json:"check_in"`
	CheckOut      *time.Time `json:"check_out"`
	TotalHours    float64    `json:"total_hours"`
	Status        string     `gorm:"size:32;not null;index" json:"status"`
	OvertimeHours float64    `json:"overtime_hours"`

	Penalties json.RawMessage `gorm:"type:jsonb;default:'[]'" json:"penalties"`
	Notes     string          `gorm:"type:text" json:"notes"`

	MissionStart string `gorm:"size:8" json:"mission_start"`
	MissionEnd   string `gorm:"size:8" json:"mission_end"`

	HalfDayExcused          bool `json:"half_day_excused"`
	IsOfficialHoliday       bool `json:"is_official_holiday"`
	WorkedOnOfficialHoliday bool `json:"worked_on_official_holiday"`

	CompDayCredit         float64 `json:"comp_day_credit"`
	LeaveDeductionDays    float64 `json:"leave_deduction_days"`
	ExcusedAbsenceDays    float64 `json:"excused_absence_days"`
	TerminationPeriodDays float64 `json:"termination_period_days"`
	CompDaysFriday        float64 `json:"comp_days_friday"`
	CompDaysOfficial      float64 `json:"comp_days_official"`
	CompDaysTotal         float64 `json:"comp_days_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

func FromEngine(rec engine.DayRecord) (AttendanceRecord, error) {
	penalties := json.RawMessage("[]")
	if len(rec.Penalties) > 0 {
		b, err := json.Marshal(mapPenalties(rec.Penalties))
		if err != nil {
			return AttendanceRecord{}, err
		}
		penalties = b
	}

	return AttendanceRecord{
		ID:            uuid.New(),
		EmployeeCode:  rec.EmployeeCode,
		Date:          rec.Date,
		CheckIn:       rec.CheckIn,
		CheckOut:      rec.CheckOut,
		TotalHours:    rec.TotalHours,
		Status:        rec.Status,
		OvertimeHours: rec.OvertimeHours,
		Penalties:     penalties,
		Notes:         rec.Notes,
		MissionStart:  rec.MissionStart,
		MissionEnd:    rec.MissionEnd,

		HalfDayExcused:          rec.HalfDayExcused,
		IsOfficialHoliday:       rec.IsOfficialHoliday,
		WorkedOnOfficialHoliday: rec.WorkedOnOfficialHoliday,

		CompDayCredit:         rec.CompDayCredit,
		LeaveDeductionDays:    rec.LeaveDeductionDays,
		ExcusedAbsenceDays:    rec.ExcusedAbsenceDays,
		TerminationPeriodDays: rec.TerminationPeriodDays,
		CompDaysFriday:        rec.CompDaysFriday,
		CompDaysOfficial:      rec.CompDaysOfficial,
		CompDaysTotal:         rec.CompDaysTotal,
	}, nil
}

// PenaltyEntry is the JSON shape stored in the penalties column.
type PenaltyEntry struct {
	Type    string  `json:"type"`
	Value   float64 `json:"value"`
	Minutes int     `json:"minutes,omitempty"`
}

func mapPenalties(ps []engine.Penalty) []PenaltyEntry {
	out := make([]PenaltyEntry, len(ps))
	for i, p := range ps {
		out[i] = PenaltyEntry{Type: p.Type, Value: p.Value, Minutes: p.Minutes}
	}
	return out
}
