package leave

type CreateLeaveRequest struct {
	Type       string `json:"type" binding:"required,oneof=official collections"`
	Scope      string `json:"scope" binding:"omitempty,oneof=all sector department section branch emp"`
	ScopeValue string `json:"scope_value"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Note       string `json:"note"`
}

type LeaveResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Scope      string `json:"scope"`
	ScopeValue string `json:"scope_value,omitempty"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Note       string `json:"note,omitempty"`
}

type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}
