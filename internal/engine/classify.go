package engine

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const graceSeconds = 15 * 60

// Friday attendance validation windows. They validate presence only and
// never alter the shift window or penalties.
var fridayWindows = [][2]int{
	{11 * 3600, 16 * 3600},
	{12 * 3600, 17 * 3600},
}

// dayContext carries everything the classifier needs for one employee-day.
type dayContext struct {
	emp     Employee
	day     time.Time
	bucket  *dayBucket // nil when the day has no punches
	window  ShiftWindow
	nextWin ShiftWindow // next day's window, overtime cap under overnight_stay
	adjs    []Adjustment
	leave   leaveMatch
	holiday *OfficialHoliday
	rules   *ruleIndex
}

// classifyDay turns one employee-day's facts into a DayRecord. Branch order
// is precedence-by-specificity: explicit termination/adjustment/leave facts
// outrank derived lateness and absence logic.
func classifyDay(ctx dayContext) DayRecord {
	rec := DayRecord{
		EmployeeCode: ctx.emp.Code,
		Date:         ctx.day,
		Status:       StatusAbsent,
		Penalties:    []Penalty{},
	}

	var notes []string
	if ctx.bucket != nil {
		notes = append(notes, ctx.bucket.notes...)
	}

	checkInSec, checkOutSec := -1, -1
	var checkInAt, checkOutAt *time.Time
	stampCount := 0
	if ctx.bucket != nil {
		stampCount = len(ctx.bucket.stamps)
	}
	if stampCount > 0 {
		first := ctx.bucket.stamps[0]
		checkInSec = first.seconds
		t := first.at
		checkInAt = &t
		if stampCount >= 2 {
			last := ctx.bucket.stamps[stampCount-1]
			checkOutSec = last.seconds
			t2 := last.at
			checkOutAt = &t2
		}
	}
	rec.CheckIn = checkInAt
	rec.CheckOut = checkOutAt

	// 1. Termination period: everything at or past the termination date is a
	// deduction day, never an absence.
	if ctx.emp.TerminationDate != nil && !ctx.day.Before(DateOnly(*ctx.emp.TerminationDate)) {
		rec.Status = StatusTerminationPeriod
		rec.TerminationPeriodDays = 1
		rec.Notes = joinNotes(notes)
		return rec
	}

	// 2/3. Explicit absence adjustments outrank everything punch-derived.
	for _, a := range ctx.adjs {
		if a.Type == AdjExcusedAbsence {
			rec.Status = StatusExcusedAbsence
			rec.ExcusedAbsenceDays = 1
			rec.Notes = joinNotes(notes)
			return rec
		}
	}
	for _, a := range ctx.adjs {
		if a.Type == AdjLeaveDeduction {
			rec.Status = StatusLeaveDeduction
			rec.LeaveDeductionDays = 1
			rec.Notes = joinNotes(notes)
			return rec
		}
	}

	// 4. Friday.
	if ctx.day.Weekday() == time.Friday {
		return classifyFriday(ctx, rec, notes, checkInSec, checkOutSec)
	}

	// 5. Leave/exempt day.
	if ctx.leave.exempt {
		rec.Status = StatusCompDay
		if ctx.leave.category != "" {
			notes = append([]string{ctx.leave.category}, notes...)
		}
		notes = append(notes, ctx.leave.notes...)
		rec.Notes = joinNotes(notes)
		return rec
	}

	// 6. Official holiday: a rest day unless worked, in which case the
	// normal workday classification runs and a comp day is credited.
	if ctx.holiday != nil {
		rec.IsOfficialHoliday = true
		if stampCount == 0 {
			rec.Status = StatusCompDay
			notes = append(notes, "عطلة رسمية: "+ctx.holiday.Name)
			rec.Notes = joinNotes(notes)
			return rec
		}
	}

	// 7/8. Workday, or the absent fallback when nothing happened at all.
	rec = classifyWorkday(ctx, rec, notes, checkInSec, checkOutSec, stampCount)
	if ctx.holiday != nil && stampCount > 0 {
		rec.WorkedOnOfficialHoliday = true
		rec.CompDayCredit = 1
		rec.CompDaysOfficial = 1
		rec.CompDaysTotal = rec.CompDaysFriday + rec.CompDaysOfficial
	}
	return rec
}

func classifyFriday(ctx dayContext, rec DayRecord, notes []string, checkInSec, checkOutSec int) DayRecord {
	attended := false
	if ctx.bucket != nil {
		for _, st := range ctx.bucket.stamps {
			for _, w := range fridayWindows {
				if st.seconds >= w[0] && st.seconds <= w[1] {
					attended = true
				}
			}
		}
	}
	if attended {
		rec.Status = StatusFridayAttended
		rec.CompDaysFriday = 1
		rec.CompDaysTotal = 1
		if checkInSec >= 0 && checkOutSec >= 0 {
			rec.TotalHours = roundHours(checkOutSec - checkInSec)
		}
	} else {
		rec.Status = StatusFriday
	}
	rec.Notes = joinNotes(notes)
	return rec
}

func classifyWorkday(ctx dayContext, rec DayRecord, notes []string, checkInSec, checkOutSec, stampCount int) DayRecord {
	eff := computeAdjustments(ctx.window, ctx.adjs, checkInSec, checkOutSec)
	rec.HalfDayExcused = eff.halfDayExcused
	if eff.missionStartSec >= 0 {
		rec.MissionStart = formatClock(eff.missionStartSec)
		rec.MissionEnd = formatClock(eff.missionEndSec)
	}

	overnightStay := ctx.rules.hasActive(ctx.emp, ctx.day, RuleOvernightStay)
	excused := (eff.halfDayExcused && stampCount == 0) ||
		eff.missionStartSec >= 0 ||
		eff.suppressPenalties ||
		overnightStay

	nominalEnd := parseClockSeconds(ctx.window.End)

	switch {
	case excused:
		if eff.missionEndSec >= nominalEnd {
			rec.Status = StatusPresent
		} else {
			rec.Status = StatusExcused
		}
		// Mission day where the only punch comes after the mission window:
		// the entry stamp was covered by the mission itself.
		if eff.missionStartSec >= 0 && stampCount == 1 && checkInSec > eff.missionEndSec {
			notes = append(notes, "سهو بصمة دخول")
		}
	case checkInSec >= 0:
		lateSec := checkInSec - eff.shiftStartSec
		if lateSec > graceSeconds {
			rec.Status = StatusLate
			lateMin := lateSec / 60
			rec.Penalties = append(rec.Penalties, Penalty{
				Type:    PenaltyLate,
				Value:   latePenaltyValue(lateMin),
				Minutes: lateMin,
			})
		} else {
			rec.Status = StatusPresent
		}
	default:
		// Punch-free day: only adjustments brought us here, and none of
		// them excuses the absence.
		rec.Status = StatusAbsent
		rec.Penalties = append(rec.Penalties, Penalty{Type: PenaltyAbsence, Value: 1})
		rec.Notes = joinNotes(notes)
		return rec
	}

	if !excused {
		if checkInSec >= 0 && checkOutSec < 0 {
			rec.Penalties = append(rec.Penalties, Penalty{Type: PenaltyMissingStamp, Value: 0.5})
			notes = append(notes, PenaltyMissingStamp)
		} else if checkOutSec >= 0 && checkOutSec < eff.shiftEndSec-graceSeconds {
			rec.Penalties = append(rec.Penalties, Penalty{Type: PenaltyEarlyLeave, Value: 0.5})
			notes = append(notes, PenaltyEarlyLeave)
		}
	}

	rec.TotalHours = totalHours(eff, checkInSec, checkOutSec)
	rec.OvertimeHours = overtimeHours(eff, ctx.nextWin, checkOutSec, overnightStay)

	notes = append(notes, fmt.Sprintf("وردية %s-%s", ctx.window.Start, ctx.window.End))
	rec.Notes = joinNotes(notes)
	return rec
}

// latePenaltyValue maps minutes late to the payroll deduction tier.
func latePenaltyValue(lateMin int) float64 {
	switch {
	case lateMin > 60:
		return 1.0
	case lateMin > 30:
		return 0.5
	default:
		return 0.25
	}
}

func totalHours(eff adjustmentEffects, checkInSec, checkOutSec int) float64 {
	// Check-in and checkout both present: span them, widened by any mission.
	if checkInSec >= 0 && checkOutSec >= 0 {
		return roundHours(eff.lastStampSec - eff.firstStampSec)
	}
	// Mission-only day still counts its window as worked time.
	if eff.missionStartSec >= 0 && eff.missionEndSec > eff.missionStartSec && checkInSec < 0 {
		return roundHours(eff.missionEndSec - eff.missionStartSec)
	}
	return 0
}

// overtimeHours counts whole hours past the effective end plus a one-hour
// buffer. Under an overnight_stay rule the checkout is capped at the next
// day's shift start so a sleepover never double-counts into the next shift.
func overtimeHours(eff adjustmentEffects, nextWin ShiftWindow, checkOutSec int, overnightStay bool) float64 {
	if checkOutSec < 0 {
		return 0
	}
	out := checkOutSec
	if overnightStay {
		capSec := secondsPerDay + parseClockSeconds(nextWin.Start)
		if out > capSec {
			out = capSec
		}
	}
	extra := out - (eff.shiftEndSec + 3600)
	if extra <= 0 {
		return 0
	}
	return float64(extra / 3600)
}

func roundHours(seconds int) float64 {
	if seconds <= 0 {
		return 0
	}
	return math.Round(float64(seconds)/3600*100) / 100
}

// joinNotes de-duplicates preserving first occurrence order.
func joinNotes(notes []string) string {
	seen := make(map[string]struct{}, len(notes))
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return strings.Join(out, " | ")
}
