package overtime

type CreateOvertimeRequest struct {
	OvertimeDate string  `json:"overtime_date" binding:"required"`
	Hours        float64 `json:"hours" binding:"required,gt=0"`
	Reason       string  `json:"reason" binding:"required"`
}

type OvertimeResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	EmployeeID   string  `json:"employee_id"`
	OvertimeDate string  `json:"overtime_date"`
	Hours        string  `json:"hours"`
	Reason       string  `json:"reason,omitempty"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
}
