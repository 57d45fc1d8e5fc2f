package employee

type CreateEmployeeRequest struct {
	Code            string  `json:"code" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Sector          string  `json:"sector"`
	Department      string  `json:"department"`
	Section         string  `json:"section"`
	Branch          string  `json:"branch"`
	ShiftStart      string  `json:"shift_start"`
	TerminationDate *string `json:"termination_date"` // "2006-01-02"
}

type UpdateEmployeeRequest struct {
	Name            *string `json:"name"`
	Sector          *string `json:"sector"`
	Department      *string `json:"department"`
	Section         *string `json:"section"`
	Branch          *string `json:"branch"`
	ShiftStart      *string `json:"shift_start"`
	TerminationDate *string `json:"termination_date"`
}

type EmployeeResponse struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Sector          string  `json:"sector,omitempty"`
	Department      string  `json:"department,omitempty"`
	Section         string  `json:"section,omitempty"`
	Branch          string  `json:"branch,omitempty"`
	ShiftStart      string  `json:"shift_start"`
	TerminationDate *string `json:"termination_date,omitempty"`
}
