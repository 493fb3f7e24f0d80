package attendance

import "time"

type CheckInResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type CheckOutResponse struct {
	Message    string  `json:"message"`
	TotalHours float64 `json:"totalHours"`
}

type RecordResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	UserName     string   `json:"userName,omitempty"`
	EmployeeID   string   `json:"employeeId,omitempty"`
	Date         string   `json:"date"`
	CheckInTime  string   `json:"checkInTime"`
	CheckOutTime *string  `json:"checkOutTime,omitempty"`
	Status       string   `json:"status"`
	TotalHours   *float64 `json:"totalHours,omitempty"`
}

type FleetSummaryResponse struct {
	TotalEmployees int64 `json:"totalEmployees"`
	PresentToday   int   `json:"presentToday"`
	LateToday      int   `json:"lateToday"`
}

// ExportRow is one flat line of the manager export; the handler serializes
// rows as CSV under the header Name,Date,Status,Total Hours.
type ExportRow struct {
	Name   string
	Date   string
	Status string
	Hours  *float64
}

func mapToResponse(r AttendanceRecord) RecordResponse {
	resp := RecordResponse{
		ID:          r.ID.String(),
		UserID:      r.UserID.String(),
		Date:        r.Date,
		CheckInTime: r.CheckInTime.Format(time.RFC3339),
		Status:      r.Status,
		TotalHours:  r.TotalHours,
	}
	if r.CheckOutTime != nil {
		v := r.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	if r.User != nil {
		resp.UserName = r.User.Name
		resp.EmployeeID = r.User.EmployeeID
	}
	return resp
}

func mapToResponses(rows []AttendanceRecord) []RecordResponse {
	res := make([]RecordResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
