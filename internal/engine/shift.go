package engine

import (
	"sort"
	"time"
)

// Default shift windows when no custom_shift rule applies.
const (
	defaultWeekdayStart  = "09:00"
	defaultWeekdayEnd    = "17:00"
	defaultSaturdayStart = "10:00"
	defaultSaturdayEnd   = "16:00"
)

type ShiftWindow struct {
	Start string
	End   string
}

// ruleIndex holds the run's rules sorted once by priority (descending,
// insertion order preserved on ties) with each scope expression parsed once.
type ruleIndex struct {
	rules  []SpecialRule
	scopes map[string]ScopeSpec // keyed by rule ID
}

func newRuleIndex(rules []SpecialRule) *ruleIndex {
	sorted := make([]SpecialRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	scopes := make(map[string]ScopeSpec, len(sorted))
	for _, r := range sorted {
		scopes[r.ID] = ParseScope(r.Scope)
	}
	return &ruleIndex{rules: sorted, scopes: scopes}
}

func (ri *ruleIndex) active(emp Employee, day time.Time) []SpecialRule {
	var out []SpecialRule
	for _, r := range ri.rules {
		if day.Before(r.StartDate) || day.After(r.EndDate) {
			continue
		}
		if !ri.scopes[r.ID].Matches(emp) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ResolveShift returns the employee's effective default window for the day,
// before adjustments: the highest-priority active custom_shift rule wins,
// otherwise the Saturday or weekday default.
func (ri *ruleIndex) ResolveShift(emp Employee, day time.Time) ShiftWindow {
	for _, r := range ri.active(emp, day) {
		if r.Type != RuleCustomShift {
			continue
		}
		if p, ok := r.Params.(CustomShiftParams); ok {
			return ShiftWindow{Start: p.ShiftStart, End: p.ShiftEnd}
		}
	}
	if day.Weekday() == time.Saturday {
		return ShiftWindow{Start: defaultSaturdayStart, End: defaultSaturdayEnd}
	}
	return ShiftWindow{Start: defaultWeekdayStart, End: defaultWeekdayEnd}
}

func (ri *ruleIndex) hasActive(emp Employee, day time.Time, t RuleType) bool {
	for _, r := range ri.active(emp, day) {
		if r.Type == t {
			return true
		}
	}
	return false
}

// exemptCategory reports whether an attendance_exempt rule covers the day
// and which leave bucket it belongs to.
func (ri *ruleIndex) exemptCategory(emp Employee, day time.Time) (string, bool) {
	for _, r := range ri.active(emp, day) {
		if r.Type != RuleAttendanceExempt {
			continue
		}
		if p, ok := r.Params.(ExemptParams); ok && p.LeaveType == LeaveTypeOfficial {
			return "Official Leave", true
		}
		return "HR Leave", true
	}
	return "", false
}
