package adjustment

type CreateAdjustmentRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required"`
	Date         string `json:"date" binding:"required"` // "2006-01-02"
	Type         string `json:"type" binding:"required"`
	FromTime     string `json:"from_time"` // "HH:MM"
	ToTime       string `json:"to_time"`
}

type AdjustmentResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Date         string `json:"date"`
	Type         string `json:"type"`
	FromTime     string `json:"from_time,omitempty"`
	ToTime       string `json:"to_time,omitempty"`
}
