package punch

type PunchRecord struct {
	EmployeeCode  string `json:"employee_code" binding:"required"`
	PunchDatetime string `json:"punch_datetime" binding:"required"` // RFC3339
}

type ImportPunchesRequest struct {
	Punches []PunchRecord `json:"punches" binding:"required,min=1,dive"`
}

type ImportPunchesResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type PunchResponse struct {
	ID            string `json:"id"`
	EmployeeCode  string `json:"employee_code"`
	PunchDatetime string `json:"punch_datetime"`
}
