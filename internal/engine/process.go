package engine

import (
	"sort"
	"time"
)

// Input is a read-only snapshot of everything one processing run consumes.
type Input struct {
	Employees   []Employee
	Punches     []Punch
	Rules       []SpecialRule
	Leaves      []Leave
	Holidays    []OfficialHoliday
	Adjustments []Adjustment

	StartDate time.Time // inclusive
	EndDate   time.Time // inclusive

	// OffsetMinutes is the fixed UTC offset in getTimezoneOffset convention.
	// The zero value selects DefaultOffsetMinutes (UTC+2).
	OffsetMinutes int
}

// Process produces exactly one DayRecord per employee per day in
// [StartDate, EndDate], ordered by employee code then date. Two invocations
// over the same inputs produce identical output; the caller replaces prior
// records for the range rather than merging.
func Process(in Input) []DayRecord {
	offset := in.OffsetMinutes
	if offset == 0 {
		offset = DefaultOffsetMinutes
	}

	start := DateOnly(in.StartDate)
	end := DateOnly(in.EndDate)
	if end.Before(start) {
		return []DayRecord{}
	}

	rules := newRuleIndex(in.Rules)
	partition := partitionPunches(in.Punches, in.Employees, offset)

	adjIndex := make(map[string]map[time.Time][]Adjustment)
	for _, a := range in.Adjustments {
		code := NormalizeCode(a.EmployeeCode)
		day := DateOnly(a.Date)
		if adjIndex[code] == nil {
			adjIndex[code] = make(map[time.Time][]Adjustment)
		}
		adjIndex[code][day] = append(adjIndex[code][day], a)
	}

	holidayIndex := make(map[time.Time]OfficialHoliday, len(in.Holidays))
	for _, h := range in.Holidays {
		holidayIndex[DateOnly(h.Date)] = h
	}

	employees := make([]Employee, len(in.Employees))
	copy(employees, in.Employees)
	sort.SliceStable(employees, func(i, j int) bool {
		return NormalizeCode(employees[i].Code) < NormalizeCode(employees[j].Code)
	})

	var out []DayRecord
	for _, emp := range employees {
		code := NormalizeCode(emp.Code)
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			ctx := dayContext{
				emp:     emp,
				day:     day,
				bucket:  partition.bucket(code, day),
				window:  rules.ResolveShift(emp, day),
				nextWin: rules.ResolveShift(emp, day.AddDate(0, 0, 1)),
				adjs:    adjIndex[code][day],
				leave:   resolveLeave(emp, day, rules, in.Leaves),
				rules:   rules,
			}
			if h, ok := holidayIndex[day]; ok {
				ctx.holiday = &h
			}
			out = append(out, classifyDay(ctx))
		}
	}
	if out == nil {
		out = []DayRecord{}
	}
	return out
}
