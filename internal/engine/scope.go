package engine

import "strings"

// Scope expressions: "all" | "dept:<name>" | "sector:<name>" |
// "emp:<code>[,<code>...]". Unparseable or empty input matches everyone;
// that fail-open default is part of the contract, not an error path.

type ScopeKind int

const (
	ScopeAll ScopeKind = iota
	ScopeDepartment
	ScopeSector
	ScopeEmployees
)

type ScopeSpec struct {
	Kind  ScopeKind
	Value string
	Codes map[string]struct{} // normalized, ScopeEmployees only
}

// NormalizeCode trims whitespace and strips leading zeros from all-numeric
// employee codes so "031" and "31" compare equal.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return code
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return code
		}
	}
	stripped := strings.TrimLeft(code, "0")
	if stripped == "" {
		return "0"
	}
	return stripped
}

func ParseScope(expr string) ScopeSpec {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "" || expr == "all":
		return ScopeSpec{Kind: ScopeAll}
	case strings.HasPrefix(expr, "dept:"):
		return ScopeSpec{Kind: ScopeDepartment, Value: strings.TrimSpace(strings.TrimPrefix(expr, "dept:"))}
	case strings.HasPrefix(expr, "sector:"):
		return ScopeSpec{Kind: ScopeSector, Value: strings.TrimSpace(strings.TrimPrefix(expr, "sector:"))}
	case strings.HasPrefix(expr, "emp:"):
		codes := make(map[string]struct{})
		for _, part := range strings.Split(strings.TrimPrefix(expr, "emp:"), ",") {
			if c := NormalizeCode(part); c != "" {
				codes[c] = struct{}{}
			}
		}
		return ScopeSpec{Kind: ScopeEmployees, Codes: codes}
	}
	return ScopeSpec{Kind: ScopeAll}
}

func (s ScopeSpec) Matches(emp Employee) bool {
	switch s.Kind {
	case ScopeDepartment:
		return emp.Department == s.Value
	case ScopeSector:
		return emp.Sector == s.Value
	case ScopeEmployees:
		_, ok := s.Codes[NormalizeCode(emp.Code)]
		return ok
	default:
		return true
	}
}
