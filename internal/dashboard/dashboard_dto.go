package dashboard

type EmployeeDashboardResponse struct {
	TotalDays  int     `json:"totalDays"`
	TotalHours float64 `json:"totalHours"`
}

// ManagerDashboardResponse carries raw counts only; no derived ratios.
type ManagerDashboardResponse struct {
	TotalEmployees  int64 `json:"totalEmployees"`
	TotalAttendance int64 `json:"totalAttendance"`
}
