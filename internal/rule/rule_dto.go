package rule

import "encoding/json"

type CreateRuleRequest struct {
	Scope     string          `json:"scope"`
	RuleType  string          `json:"rule_type" binding:"required"`
	StartDate string          `json:"start_date" binding:"required"`
	EndDate   string          `json:"end_date" binding:"required"`
	Priority  int             `json:"priority"`
	Params    json.RawMessage `json:"params"`
}

type RuleResponse struct {
	ID        string          `json:"id"`
	Scope     string          `json:"scope"`
	RuleType  string          `json:"rule_type"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Priority  int             `json:"priority"`
	Params    json.RawMessage `json:"params,omitempty"`
}
