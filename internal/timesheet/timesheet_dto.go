package timesheet

type TimesheetDayResponse struct {
	EmployeeID   string `json:"employee_id"`
	WorkDate     string `json:"work_date"`
	TotalMinutes int    `json:"total_minutes"`
}
