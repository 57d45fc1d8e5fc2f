package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func singleEmployeeInput(punches []Punch, adjs []Adjustment, from, to string) Input {
	return Input{
		Employees:   []Employee{{Code: "100", Name: "موظف", ShiftStart: "09:00"}},
		Punches:     punches,
		Adjustments: adjs,
		StartDate:   day(from),
		EndDate:     day(to),
	}
}

func TestProcess_NormalDay(t *testing.T) {
	in := singleEmployeeInput([]Punch{
		localPunch("100", "2025-03-03", "08:55"),
		localPunch("100", "2025-03-03", "17:05"),
	}, nil, "2025-03-03", "2025-03-03")

	recs := Process(in)

	assert.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, StatusPresent, rec.Status)
	assert.Empty(t, rec.Penalties)
	assert.InDelta(t, 8.17, rec.TotalHours, 0.001)
	assert.NotNil(t, rec.CheckIn)
	assert.NotNil(t, rec.CheckOut)
	assert.Equal(t, 0.0, rec.OvertimeHours)
}

func TestProcess_LateWithMissingCheckout(t *testing.T) {
	in := singleEmployeeInput([]Punch{
		localPunch("100", "2025-03-03", "09:40"),
	}, nil, "2025-03-03", "2025-03-03")

	rec := Process(in)[0]

	assert.Equal(t, StatusLate, rec.Status)
	assert.Len(t, rec.Penalties, 2)
	assert.Equal(t, Penalty{Type: PenaltyLate, Value: 0.5, Minutes: 40}, rec.Penalties[0])
	assert.Equal(t, Penalty{Type: PenaltyMissingStamp, Value: 0.5}, rec.Penalties[1])
	assert.Contains(t, rec.Notes, "سهو بصمة")
}

func TestProcess_MissionSuppressesPenalties(t *testing.T) {
	in := singleEmployeeInput(nil, []Adjustment{{
		EmployeeCode: "100",
		Date:         day("2025-03-03"),
		Type:         AdjMission,
		FromTime:     "10:00",
		ToTime:       "14:00",
	}}, "2025-03-03", "2025-03-03")

	rec := Process(in)[0]

	assert.Equal(t, StatusExcused, rec.Status, "mission ends before shift end")
	assert.Empty(t, rec.Penalties)
	assert.Equal(t, "10:00", rec.MissionStart)
	assert.Equal(t, "14:00", rec.MissionEnd)
	assert.Equal(t, 4.0, rec.TotalHours)
}

func TestProcess_MissionReachingShiftEndIsPresent(t *testing.T) {
	in := singleEmployeeInput(nil, []Adjustment{{
		EmployeeCode: "100",
		Date:         day("2025-03-03"),
		Type:         AdjMission,
		FromTime:     "09:00",
		ToTime:       "17:00",
	}}, "2025-03-03", "2025-03-03")

	rec := Process(in)[0]
	assert.Equal(t, StatusPresent, rec.Status)
	assert.Empty(t, rec.Penalties)
}

func TestProcess_OvernightReassignment(t *testing.T) {
	in := singleEmployeeInput([]Punch{
		localPunch("100", "2025-03-03", "22:10"),
		localPunch("100", "2025-03-04", "00:30"),
	}, nil, "2025-03-03", "2025-03-04")

	recs := Process(in)
	assert.Len(t, recs, 2)

	dayOne, dayTwo := recs[0], recs[1]
	assert.NotNil(t, dayOne.CheckOut)
	assert.Contains(t, dayOne.Notes, "خروج بعد منتصف الليل 00:30")
	assert.Equal(t, StatusAbsent, dayTwo.Status)
	assert.Equal(t, []Penalty{{Type: PenaltyAbsence, Value: 1}}, dayTwo.Penalties)

	// Punch conservation: both punches are attributed exactly once.
	attributed := 0
	for _, r := range recs {
		if r.CheckIn != nil {
			attributed++
		}
		if r.CheckOut != nil {
			attributed++
		}
	}
	assert.Equal(t, 2, attributed)
}

func TestProcess_EmptyDayIsAbsent(t *testing.T) {
	in := singleEmployeeInput(nil, nil, "2025-03-03", "2025-03-03")

	rec := Process(in)[0]
	assert.Equal(t, StatusAbsent, rec.Status)
	assert.Equal(t, []Penalty{{Type: PenaltyAbsence, Value: 1}}, rec.Penalties)
}

func TestProcess_FridayStatuses(t *testing.T) {
	// 2025-03-07 is a Friday.
	attended := singleEmployeeInput([]Punch{
		localPunch("100", "2025-03-07", "12:30"),
	}, nil, "2025-03-07", "2025-03-07")
	rec := Process(attended)[0]
	assert.Equal(t, StatusFridayAttended, rec.Status)
	assert.Equal(t, 1.0, rec.CompDaysFriday)
	assert.Equal(t, 1.0, rec.CompDaysTotal)
	assert.Empty(t, rec.Penalties)

	idle := singleEmployeeInput(nil, nil, "2025-03-07", "2025-03-07")
	rec = Process(idle)[0]
	assert.Equal(t, StatusFriday, rec.Status)
	assert.Empty(t, rec.Penalties)
	assert.Equal(t, 0.0, rec.TotalHours)
}

func TestProcess_LeaveDayIsCompDay(t *testing.T) {
	in := singleEmployeeInput(nil, nil, "2025-03-03", "2025-03-03")
	in.Leaves = []Leave{{
		Type:      LeaveTypeOfficial,
		Scope:     LeaveScopeAll,
		StartDate: day("2025-03-01"),
		EndDate:   day("2025-03-05"),
		Note:      "إجازة عيد",
	}}

	rec := Process(in)[0]
	assert.Equal(t, StatusCompDay, rec.Status)
	assert.Contains(t, rec.Notes, "Official Leave")
	assert.Contains(t, rec.Notes, "إجازة عيد")
	assert.Empty(t, rec.Penalties)
}

func TestProcess_Idempotence(t *testing.T) {
	in := Input{
		Employees: []Employee{
			{Code: "031", ShiftStart: "09:00"},
			{Code: "515", ShiftStart: "08:00"},
		},
		Punches: []Punch{
			localPunch("31", "2025-03-03", "08:55"),
			localPunch("031", "2025-03-03", "17:05"),
			localPunch("515", "2025-03-03", "09:40"),
			localPunch("515", "2025-03-04", "00:15"),
		},
		Adjustments: []Adjustment{{
			EmployeeCode: "515",
			Date:         day("2025-03-04"),
			Type:         AdjMission,
			FromTime:     "09:00",
			ToTime:       "13:00",
		}},
		StartDate: day("2025-03-03"),
		EndDate:   day("2025-03-05"),
	}

	first := Process(in)
	second := Process(in)

	assert.Equal(t, first, second)
	assert.Len(t, first, 6, "one record per employee per day")

	seen := make(map[string]struct{})
	for _, r := range first {
		key := NormalizeCode(r.EmployeeCode) + "|" + dateKey(r.Date)
		_, dup := seen[key]
		assert.False(t, dup, "duplicate record for %s", key)
		seen[key] = struct{}{}
	}
}

func TestProcess_CustomOffset(t *testing.T) {
	// Offset -180 (UTC+3): an 06:00 UTC punch is 09:00 local.
	at := time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC)
	in := Input{
		Employees:     []Employee{{Code: "100", ShiftStart: "09:00"}},
		Punches:       []Punch{{EmployeeCode: "100", At: at}},
		StartDate:     day("2025-03-03"),
		EndDate:       day("2025-03-03"),
		OffsetMinutes: -180,
	}

	rec := Process(in)[0]
	assert.Equal(t, StatusPresent, rec.Status)
}
