package events

import "time"

const (
	CheckedInTopic  = "attendance.checked_in"
	CheckedOutTopic = "attendance.checked_out"

	CheckedInEventType  = "attendance.checked_in.v1"
	CheckedOutEventType = "attendance.checked_out.v1"

	AttendanceAggregateType = "attendance_record"
)

type AttendanceCheckedInEvent struct {
	RecordID    string    `json:"record_id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"`
	Status      string    `json:"status"`
	CheckInTime time.Time `json:"check_in_time"`
}

type AttendanceCheckedOutEvent struct {
	RecordID     string    `json:"record_id"`
	UserID       string    `json:"user_id"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	TotalHours   float64   `json:"total_hours"`
	CheckOutTime time.Time `json:"check_out_time"`
}
