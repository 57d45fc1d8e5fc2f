// Package engine resolves raw biometric punches against shift, leave and
// exception rules into one attendance record per employee per calendar day.
// It is a pure function of its inputs: no I/O, no clocks, no shared state.
package engine

import "time"

// Day statuses produced by the classifier.
const (
	StatusPresent           = "Present"
	StatusLate              = "Late"
	StatusAbsent            = "Absent"
	StatusExcused           = "Excused"
	StatusFriday            = "Friday"
	StatusFridayAttended    = "Friday Attended"
	StatusCompDay           = "Comp Day"
	StatusExcusedAbsence    = "Excused Absence"
	StatusLeaveDeduction    = "Leave Deduction"
	StatusTerminationPeriod = "Termination Period"
)

// Penalty types carry the Arabic labels the payroll export expects.
const (
	PenaltyLate         = "تأخير"
	PenaltyAbsence      = "غياب"
	PenaltyMissingStamp = "سهو بصمة"
	PenaltyEarlyLeave   = "انصراف مبكر"
)

type Employee struct {
	Code            string
	Name            string
	Sector          string
	Department      string
	Section         string
	Branch          string
	ShiftStart      string // "HH:MM", empty means "09:00"
	TerminationDate *time.Time
}

// Punch is a single raw clock stamp. Immutable; many per employee per day.
type Punch struct {
	EmployeeCode string
	At           time.Time
}

type RuleType string

const (
	RuleCustomShift      RuleType = "custom_shift"
	RuleAttendanceExempt RuleType = "attendance_exempt"
	RuleOvernightStay    RuleType = "overnight_stay"
)

// RuleParams is the per-type payload of a SpecialRule.
type RuleParams interface{ isRuleParams() }

type CustomShiftParams struct {
	ShiftStart string
	ShiftEnd   string
}

type ExemptParams struct {
	LeaveType string // "official" or anything else (HR leave)
}

type OvernightStayParams struct{}

func (CustomShiftParams) isRuleParams()   {}
func (ExemptParams) isRuleParams()        {}
func (OvernightStayParams) isRuleParams() {}

// SpecialRule is a scoped, priority-ranked behavior override valid over an
// inclusive [StartDate, EndDate] window.
type SpecialRule struct {
	ID        string
	Scope     string
	Type      RuleType
	StartDate time.Time
	EndDate   time.Time
	Priority  int
	Params    RuleParams
}

type AdjustmentType string

const (
	AdjMorningPermission AdjustmentType = "إذن صباحي"
	AdjEveningPermission AdjustmentType = "إذن مسائي"
	AdjHalfDayLeave      AdjustmentType = "إجازة نصف يوم"
	AdjMission           AdjustmentType = "مأمورية"
	AdjLeaveDeduction    AdjustmentType = "إجازة بالخصم"
	AdjExcusedAbsence    AdjustmentType = "غياب بعذر"
)

// Adjustment is an ad-hoc per-day window change for one employee.
type Adjustment struct {
	EmployeeCode string
	Date         time.Time
	Type         AdjustmentType
	FromTime     string // local "HH:MM"
	ToTime       string
}

type LeaveScope string

const (
	LeaveScopeAll        LeaveScope = "all"
	LeaveScopeSector     LeaveScope = "sector"
	LeaveScopeDepartment LeaveScope = "department"
	LeaveScopeSection    LeaveScope = "section"
	LeaveScopeBranch     LeaveScope = "branch"
	LeaveScopeEmployee   LeaveScope = "emp"
)

const (
	LeaveTypeOfficial    = "official"
	LeaveTypeCollections = "collections"
)

type Leave struct {
	Type       string
	Scope      LeaveScope
	ScopeValue string
	StartDate  time.Time
	EndDate    time.Time
	Note       string
}

type OfficialHoliday struct {
	Date time.Time
	Name string
}

type Penalty struct {
	Type    string
	Value   float64
	Minutes int // only set for lateness
}

// DayRecord is the normalized per-employee/day output. Field semantics are a
// stable contract with the reporting export.
type DayRecord struct {
	EmployeeCode  string
	Date          time.Time
	CheckIn       *time.Time
	CheckOut      *time.Time
	TotalHours    float64
	Status        string
	OvertimeHours float64
	Penalties     []Penalty
	Notes         string

	MissionStart string // local "HH:MM", empty when no mission
	MissionEnd   string

	HalfDayExcused          bool
	IsOfficialHoliday       bool
	WorkedOnOfficialHoliday bool

	CompDayCredit         float64
	LeaveDeductionDays    float64
	ExcusedAbsenceDays    float64
	TerminationPeriodDays float64
	CompDaysFriday        float64
	CompDaysOfficial      float64
	CompDaysTotal         float64
}
