package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeAdjustments_Permissions(t *testing.T) {
	win := ShiftWindow{Start: "09:00", End: "17:00"}
	adjs := []Adjustment{
		{Type: AdjMorningPermission, FromTime: "09:00", ToTime: "10:00"},
		{Type: AdjEveningPermission, FromTime: "16:00", ToTime: "17:00"},
	}

	eff := computeAdjustments(win, adjs, -1, -1)

	assert.Equal(t, parseClockSeconds("10:00"), eff.shiftStartSec)
	assert.Equal(t, parseClockSeconds("16:00"), eff.shiftEndSec)
	assert.False(t, eff.suppressPenalties)
	assert.False(t, eff.halfDayExcused)
}

func TestComputeAdjustments_HalfDay(t *testing.T) {
	win := ShiftWindow{Start: "09:00", End: "17:00"}

	morning := computeAdjustments(win, []Adjustment{
		{Type: AdjHalfDayLeave, FromTime: "09:00", ToTime: "13:00"},
	}, -1, -1)
	assert.Equal(t, parseClockSeconds("13:00"), morning.shiftStartSec)
	assert.True(t, morning.halfDayExcused)

	evening := computeAdjustments(win, []Adjustment{
		{Type: AdjHalfDayLeave, FromTime: "13:00", ToTime: "17:00"},
	}, -1, -1)
	assert.Equal(t, parseClockSeconds("13:00"), evening.shiftEndSec)
	assert.True(t, evening.halfDayExcused)

	// A mid-day slice touching neither edge changes nothing.
	neither := computeAdjustments(win, []Adjustment{
		{Type: AdjHalfDayLeave, FromTime: "11:00", ToTime: "14:00"},
	}, -1, -1)
	assert.Equal(t, parseClockSeconds("09:00"), neither.shiftStartSec)
	assert.Equal(t, parseClockSeconds("17:00"), neither.shiftEndSec)
	assert.False(t, neither.halfDayExcused)
}

func TestComputeAdjustments_MissionWidensAndStamps(t *testing.T) {
	win := ShiftWindow{Start: "09:00", End: "17:00"}
	adjs := []Adjustment{
		{Type: AdjMission, FromTime: "10:00", ToTime: "12:00"},
		{Type: AdjMission, FromTime: "14:00", ToTime: "18:00"},
	}
	checkIn := parseClockSeconds("09:05")
	checkOut := parseClockSeconds("16:00")

	eff := computeAdjustments(win, adjs, checkIn, checkOut)

	assert.Equal(t, parseClockSeconds("10:00"), eff.missionStartSec)
	assert.Equal(t, parseClockSeconds("18:00"), eff.missionEndSec)
	assert.True(t, eff.suppressPenalties)
	assert.Equal(t, checkIn, eff.firstStampSec)
	assert.Equal(t, parseClockSeconds("18:00"), eff.lastStampSec)
}

func TestResolveShift_CustomRulePriority(t *testing.T) {
	emp := Employee{Code: "55", Department: "الفروع"}
	rules := newRuleIndex([]SpecialRule{
		{
			ID: "low", Scope: "all", Type: RuleCustomShift, Priority: 1,
			StartDate: day("2025-03-01"), EndDate: day("2025-03-31"),
			Params: CustomShiftParams{ShiftStart: "08:00", ShiftEnd: "16:00"},
		},
		{
			ID: "high", Scope: "dept:الفروع", Type: RuleCustomShift, Priority: 5,
			StartDate: day("2025-03-01"), EndDate: day("2025-03-31"),
			Params: CustomShiftParams{ShiftStart: "10:00", ShiftEnd: "18:00"},
		},
	})

	win := rules.ResolveShift(emp, day("2025-03-03"))
	assert.Equal(t, ShiftWindow{Start: "10:00", End: "18:00"}, win)

	// Outside the validity window the defaults come back.
	assert.Equal(t,
		ShiftWindow{Start: defaultWeekdayStart, End: defaultWeekdayEnd},
		rules.ResolveShift(emp, day("2025-04-01")))

	// 2025-03-08 is a Saturday for an unscoped employee.
	assert.Equal(t,
		ShiftWindow{Start: defaultSaturdayStart, End: defaultSaturdayEnd},
		newRuleIndex(nil).ResolveShift(emp, day("2025-03-08")))
}

func TestResolveShift_PriorityTieKeepsInsertionOrder(t *testing.T) {
	emp := Employee{Code: "55"}
	rules := newRuleIndex([]SpecialRule{
		{
			ID: "first", Scope: "all", Type: RuleCustomShift, Priority: 3,
			StartDate: day("2025-03-01"), EndDate: day("2025-03-31"),
			Params: CustomShiftParams{ShiftStart: "07:00", ShiftEnd: "15:00"},
		},
		{
			ID: "second", Scope: "all", Type: RuleCustomShift, Priority: 3,
			StartDate: day("2025-03-01"), EndDate: day("2025-03-31"),
			Params: CustomShiftParams{ShiftStart: "11:00", ShiftEnd: "19:00"},
		},
	})

	win := rules.ResolveShift(emp, day("2025-03-03"))
	assert.Equal(t, "07:00", win.Start)
}

func TestResolveLeave_CollectionsSectorOnly(t *testing.T) {
	rules := newRuleIndex(nil)
	leaves := []Leave{{
		Type:      LeaveTypeCollections,
		Scope:     LeaveScopeAll,
		StartDate: day("2025-03-03"),
		EndDate:   day("2025-03-05"),
		Note:      "راحة التحصيل",
	}}

	collections := Employee{Code: "1", Sector: "التحصيل"}
	other := Employee{Code: "2", Sector: "المبيعات"}

	assert.True(t, resolveLeave(collections, day("2025-03-04"), rules, leaves).exempt)
	assert.False(t, resolveLeave(other, day("2025-03-04"), rules, leaves).exempt)
}

func TestResolveLeave_ExemptRuleCategory(t *testing.T) {
	emp := Employee{Code: "9"}
	rules := newRuleIndex([]SpecialRule{{
		ID: "x", Scope: "emp:9", Type: RuleAttendanceExempt, Priority: 1,
		StartDate: day("2025-03-01"), EndDate: day("2025-03-31"),
		Params: ExemptParams{LeaveType: "official"},
	}})

	m := resolveLeave(emp, day("2025-03-10"), rules, nil)
	assert.True(t, m.exempt)
	assert.Equal(t, "Official Leave", m.category)
}

func TestLatePenaltyTiers(t *testing.T) {
	assert.Equal(t, 0.25, latePenaltyValue(16))
	assert.Equal(t, 0.25, latePenaltyValue(30))
	assert.Equal(t, 0.5, latePenaltyValue(31))
	assert.Equal(t, 0.5, latePenaltyValue(60))
	assert.Equal(t, 1.0, latePenaltyValue(61))
}

func TestClassify_TerminationPeriodOverridesEverything(t *testing.T) {
	term := day("2025-03-01")
	emp := Employee{Code: "3", TerminationDate: &term}

	rec := classifyDay(dayContext{
		emp:    emp,
		day:    day("2025-03-10"),
		window: ShiftWindow{Start: "09:00", End: "17:00"},
		rules:  newRuleIndex(nil),
	})

	assert.Equal(t, StatusTerminationPeriod, rec.Status)
	assert.Equal(t, 1.0, rec.TerminationPeriodDays)
	assert.Empty(t, rec.Penalties)
}

func TestClassify_ExcusedAbsenceAndLeaveDeduction(t *testing.T) {
	base := dayContext{
		emp:    Employee{Code: "3"},
		day:    day("2025-03-10"),
		window: ShiftWindow{Start: "09:00", End: "17:00"},
		rules:  newRuleIndex(nil),
	}

	excused := base
	excused.adjs = []Adjustment{{Type: AdjExcusedAbsence}}
	rec := classifyDay(excused)
	assert.Equal(t, StatusExcusedAbsence, rec.Status)
	assert.Equal(t, 1.0, rec.ExcusedAbsenceDays)
	assert.Empty(t, rec.Penalties)

	deducted := base
	deducted.adjs = []Adjustment{{Type: AdjLeaveDeduction}}
	rec = classifyDay(deducted)
	assert.Equal(t, StatusLeaveDeduction, rec.Status)
	assert.Equal(t, 1.0, rec.LeaveDeductionDays)
	assert.Empty(t, rec.Penalties)
}

func TestClassify_OvernightStayCapsOvertime(t *testing.T) {
	emp := Employee{Code: "4", ShiftStart: "09:00"}
	rules := newRuleIndex([]SpecialRule{{
		ID: "stay", Scope: "emp:4", Type: RuleOvernightStay, Priority: 1,
		StartDate: day("2025-03-01"), EndDate: day("2025-03-31"),
		Params: OvernightStayParams{},
	}})

	// Checkout reassigned to 10:00 next day (seconds past midnight), past
	// the next shift's start.
	in := localPunch("4", "2025-03-03", "08:58")
	bucket := &dayBucket{stamps: []punchStamp{
		{at: in.At, seconds: parseClockSeconds("08:58")},
		{at: in.At.Add(25 * time.Hour), seconds: secondsPerDay + parseClockSeconds("10:00")},
	}}

	rec := classifyDay(dayContext{
		emp:     emp,
		day:     day("2025-03-03"),
		bucket:  bucket,
		window:  ShiftWindow{Start: "09:00", End: "17:00"},
		nextWin: ShiftWindow{Start: "09:00", End: "17:00"},
		rules:   rules,
	})

	// Cap at next-day 09:00: (24h+9h) - (17:00+1h) = 15h.
	assert.Equal(t, 15.0, rec.OvertimeHours)
	assert.Empty(t, rec.Penalties, "overnight_stay suppresses penalties")
}

func TestClassify_WorkedHolidayEarnsCompDay(t *testing.T) {
	emp := Employee{Code: "5"}
	h := OfficialHoliday{Date: day("2025-03-03"), Name: "عيد"}
	bucket := &dayBucket{stamps: []punchStamp{
		{seconds: parseClockSeconds("09:00")},
		{seconds: parseClockSeconds("17:00")},
	}}

	rec := classifyDay(dayContext{
		emp:     emp,
		day:     day("2025-03-03"),
		bucket:  bucket,
		window:  ShiftWindow{Start: "09:00", End: "17:00"},
		nextWin: ShiftWindow{Start: "09:00", End: "17:00"},
		holiday: &h,
		rules:   newRuleIndex(nil),
	})

	assert.True(t, rec.IsOfficialHoliday)
	assert.True(t, rec.WorkedOnOfficialHoliday)
	assert.Equal(t, 1.0, rec.CompDayCredit)
	assert.Equal(t, 1.0, rec.CompDaysOfficial)
	assert.Equal(t, 1.0, rec.CompDaysTotal)
	assert.Equal(t, StatusPresent, rec.Status)
}

func TestClassify_UnworkedHolidayIsCompDay(t *testing.T) {
	h := OfficialHoliday{Date: day("2025-03-03"), Name: "عيد الثورة"}

	rec := classifyDay(dayContext{
		emp:     Employee{Code: "5"},
		day:     day("2025-03-03"),
		window:  ShiftWindow{Start: "09:00", End: "17:00"},
		holiday: &h,
		rules:   newRuleIndex(nil),
	})

	assert.Equal(t, StatusCompDay, rec.Status)
	assert.True(t, rec.IsOfficialHoliday)
	assert.False(t, rec.WorkedOnOfficialHoliday)
	assert.Contains(t, rec.Notes, "عيد الثورة")
	assert.Empty(t, rec.Penalties)
}
