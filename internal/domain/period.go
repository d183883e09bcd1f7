package domain

import "time"

type PeriodStatus string

const (
	PeriodStatusPending  PeriodStatus = "待审批"
	PeriodStatusApproved PeriodStatus = "已批准"
	PeriodStatusRejected PeriodStatus = "已驳回"
)

// AbsencePeriod 缺勤申请，只有已批准的申请才会覆盖空闲时间
type AbsencePeriod struct {
	ID         int64        `json:"id"`
	EmployeeID int64        `json:"employeeID"`
	StartDate  time.Time    `json:"startDate"`
	EndDate    time.Time    `json:"endDate"`
	Reason     string       `json:"reason"`
	Status     PeriodStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	Version    int32        `json:"-"`
}

// LeavePeriod 请假申请，审批语义和缺勤一致
type LeavePeriod struct {
	ID         int64        `json:"id"`
	EmployeeID int64        `json:"employeeID"`
	StartDate  time.Time    `json:"startDate"`
	EndDate    time.Time    `json:"endDate"`
	Reason     string       `json:"reason"`
	Status     PeriodStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	Version    int32        `json:"-"`
}

// coversDay 判断日期是否落在区间内，区间两端都包含
func coversDay(start, end, day time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

func (p *AbsencePeriod) Covers(day time.Time) bool {
	return coversDay(p.StartDate, p.EndDate, day)
}

func (p *LeavePeriod) Covers(day time.Time) bool {
	return coversDay(p.StartDate, p.EndDate, day)
}
