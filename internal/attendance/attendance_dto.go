package attendance

import "encoding/json"

type ProcessRequest struct {
	StartDate     string   `json:"start_date" binding:"required"`
	EndDate       string   `json:"end_date" binding:"required"`
	OffsetMinutes int      `json:"timezone_offset_minutes"`
	EmployeeCodes []string `json:"employee_codes"`
}

type ProcessResponse struct {
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	ProcessedCount int    `json:"processed_count"`
	EmployeeCount  int    `json:"employee_count"`
}

type GetAttendanceFilter struct {
	From         string `form:"from" binding:"required"`
	To           string `form:"to" binding:"required"`
	EmployeeCode string `form:"employee_code"`
	Status       string `form:"status"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

type RecordResponse struct {
	EmployeeCode  string          `json:"employee_code"`
	Date          string          `json:"date"`
	CheckIn       *string         `json:"check_in"`
	CheckOut      *string         `json:"check_out"`
	TotalHours    float64         `json:"total_hours"`
	Status        string          `json:"status"`
	OvertimeHours float64         `json:"overtime_hours"`
	Penalties     json.RawMessage `json:"penalties"`
	Notes         string          `json:"notes,omitempty"`
	MissionStart  string          `json:"mission_start,omitempty"`
	MissionEnd    string          `json:"mission_end,omitempty"`

	HalfDayExcused          bool `json:"half_day_excused,omitempty"`
	IsOfficialHoliday       bool `json:"is_official_holiday,omitempty"`
	WorkedOnOfficialHoliday bool `json:"worked_on_official_holiday,omitempty"`

	CompDayCredit         float64 `json:"comp_day_credit,omitempty"`
	LeaveDeductionDays    float64 `json:"leave_deduction_days,omitempty"`
	ExcusedAbsenceDays    float64 `json:"excused_absence_days,omitempty"`
	TerminationPeriodDays float64 `json:"termination_period_days,omitempty"`
	CompDaysTotal         float64 `json:"comp_days_total,omitempty"`
}
