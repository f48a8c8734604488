package events

import "time"

const AttendanceDayClosedTopic = "hr.attendance.daily.v1"

// AttendanceDayClosedEvent is staged in the check-out transaction once an
// employee's day is fully recorded. The summary consumer folds it into the
// monthly totals payroll reads. Hours travel as decimal strings.
type AttendanceDayClosedEvent struct {
	EventType         string    `json:"event_type"`
	RequestID         string    `json:"request_id,omitempty"`
	CompanyID         string    `json:"company_id"`
	EmployeeID        string    `json:"employee_id"`
	AttendanceDate    string    `json:"attendance_date"`
	Status            string    `json:"status"`
	WorkHours         string    `json:"work_hours"`
	OvertimeHours     string    `json:"overtime_hours"`
	LateMinutes       int       `json:"late_minutes"`
	EarlyLeaveMinutes int       `json:"early_leave_minutes"`
	OccurredAt        time.Time `json:"occurred_at"`
}
