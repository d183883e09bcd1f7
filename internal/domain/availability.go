package domain

import "time"

type AvailabilityEntry struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employeeID"`
	WeekStart   time.Time `json:"weekStart"`
	DayOfWeek   int32     `json:"dayOfWeek"` // 0 表示周一，6 表示周日
	ShiftType   ShiftType `json:"shiftType"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
