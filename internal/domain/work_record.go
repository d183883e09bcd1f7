package domain

import "time"

// WorkRecord 员工对某个班次提交的实际工时记录，
// 班次被顶班后原员工的工时记录会被作废
type WorkRecord struct {
	ID          int64     `json:"id"`
	ShiftID     int64     `json:"shiftID"`
	EmployeeID  int64     `json:"employeeID"`
	Hours       float64   `json:"hours"`
	SubmittedAt time.Time `json:"submittedAt"`
	Version     int32     `json:"-"`
}
