package engine

import "time"

// collectionsSector gates "collections" leaves to the collections sector.
const collectionsSector = "التحصيل"

type leaveMatch struct {
	exempt   bool
	category string
	notes    []string
}

// resolveLeave decides whether the day is a full exemption: either an active
// attendance_exempt rule, or a Leave record whose window and scope cover the
// employee. Matched leave notes accumulate into the day's notes.
func resolveLeave(emp Employee, day time.Time, rules *ruleIndex, leaves []Leave) leaveMatch {
	var m leaveMatch
	if cat, ok := rules.exemptCategory(emp, day); ok {
		m.exempt = true
		m.category = cat
	}

	for _, l := range leaves {
		if day.Before(l.StartDate) || day.After(l.EndDate) {
			continue
		}
		if l.Type == LeaveTypeCollections && emp.Sector != collectionsSector {
			continue
		}
		if !leaveScopeMatches(l, emp) {
			continue
		}
		m.exempt = true
		if m.category == "" {
			if l.Type == LeaveTypeOfficial {
				m.category = "Official Leave"
			} else {
				m.category = "HR Leave"
			}
		}
		if l.Note != "" {
			m.notes = append(m.notes, l.Note)
		}
	}
	return m
}

func leaveScopeMatches(l Leave, emp Employee) bool {
	switch l.Scope {
	case "", LeaveScopeAll:
		return true
	case LeaveScopeSector:
		return emp.Sector == l.ScopeValue
	case LeaveScopeDepartment:
		return emp.Department == l.ScopeValue
	case LeaveScopeSection:
		return emp.Section == l.ScopeValue
	case LeaveScopeBranch:
		return emp.Branch == l.ScopeValue
	case LeaveScopeEmployee:
		return NormalizeCode(l.ScopeValue) == NormalizeCode(emp.Code)
	}
	return false
}
