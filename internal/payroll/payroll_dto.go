package payroll

type SetBaseSalaryRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required,uuid"`
	BaseSalary    float64 `json:"base_salary" binding:"required,gte=0"`
	OvertimeRate  float64 `json:"overtime_rate" binding:"omitempty,gte=1"`
	EffectiveDate string  `json:"effective_date" binding:"required"`
}

type SalaryResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	BaseSalary    string `json:"base_salary"`
	OvertimeRate  string `json:"overtime_rate"`
	EffectiveDate string `json:"effective_date"`
}

type MonthlySummaryResponse struct {
	EmployeeID        string `json:"employee_id"`
	Year              int    `json:"year"`
	Month             int    `json:"month"`
	PresentDays       int    `json:"present_days"`
	LateDays          int    `json:"late_days"`
	EarlyLeaveDays    int    `json:"early_leave_days"`
	HalfDays          int    `json:"half_days"`
	LeaveDays         int    `json:"leave_days"`
	WorkHours         string `json:"work_hours"`
	OvertimeHours     string `json:"overtime_hours"`
	LateMinutes       int    `json:"late_minutes"`
	EarlyLeaveMinutes int    `json:"early_leave_minutes"`
}

type PayslipResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employee_id"`
	Year                int     `json:"year"`
	Month               int     `json:"month"`
	BaseSalary          string  `json:"base_salary"`
	OvertimePay         string  `json:"overtime_pay"`
	LateDeduction       string  `json:"late_deduction"`
	EarlyLeaveDeduction string  `json:"early_leave_deduction"`
	NetSalary           string  `json:"net_salary"`
	Status              string  `json:"status"`
	FinalizedBy         *string `json:"finalized_by,omitempty"`
	FinalizedAt         *string `json:"finalized_at,omitempty"`
}
