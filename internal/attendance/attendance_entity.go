package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusHalfDay = "half-day"
)

// DateLayout is the calendar-day key format. Records are unique per
// (user_id, date); the composite index backs the duplicate check-in guard.
const DateLayout = "2006-01-02"

type AttendanceRecord struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_attendance_user_date"`
	Date         string     `gorm:"column:date;type:varchar(10);not null;uniqueIndex:idx_attendance_user_date"`
	CheckInTime  time.Time  `gorm:"column:check_in_time;type:timestamptz;not null"`
	CheckOutTime *time.Time `gorm:"column:check_out_time;type:timestamptz"`
	Status       string     `gorm:"column:status;type:varchar(20);not null"`
	TotalHours   *float64   `gorm:"column:total_hours"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	User         *UserRef   `gorm:"foreignKey:UserID;references:ID"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// UserRef is the joined slice of the user row needed for display and the
// employeeId post-filter.
type UserRef struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"column:name"`
	EmployeeID string    `gorm:"column:employee_id"`
	Department string    `gorm:"column:department"`
}

func (UserRef) TableName() string {
	return "users"
}
