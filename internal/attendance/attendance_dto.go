package attendance

type GeoPoint struct {
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Accuracy         *float64 `json:"accuracy"`
	IsMockedLocation bool     `json:"isMockedLocation"`
}

type CheckInRequest struct {
	GeoPoint
	Note *string `json:"note"`
}

type CheckOutRequest struct {
	GeoPoint
	Note *string `json:"note"`
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	AttendanceDate string   `json:"attendance_date"`
	CheckInTime    *string  `json:"check_in_time,omitempty"`
	CheckOutTime   *string  `json:"check_out_time,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Status         string   `json:"status"`
	WorkHours      string   `json:"work_hours"`
	OvertimeHours  string   `json:"overtime_hours"`
	Note           *string  `json:"note,omitempty"`
}

type TodayStatusResponse struct {
	CheckedIn    bool    `json:"checked_in"`
	CheckedOut   bool    `json:"checked_out"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	WorkHours    string  `json:"work_hours"`
	Status       string  `json:"status"`
}
