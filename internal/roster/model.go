package roster

import (
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

// Matrix 表示一周内每个员工在每个 (天, 班段) 上的有效空闲情况
// 不在 Matrix 中的员工不会成为任何班次的候选人
type Matrix map[int64]map[int32]map[domain.ShiftType]bool

func (m Matrix) IsAvailable(employeeID int64, day int32, shiftType domain.ShiftType) bool {
	days, exists := m[employeeID]
	if !exists {
		return false
	}
	return days[day][shiftType]
}

// Input 是一次排班所需的全部数据快照，
// 在生成过程中不会再读取数据库，保证同一份输入产生相同的结果
type Input struct {
	WeekStart time.Time
	Employees []*domain.Employee
	Entries   []*domain.AvailabilityEntry
	Absences  []*domain.AbsencePeriod
	Leaves    []*domain.LeavePeriod
	Limits    []*domain.StaffingLimit
	Targets   []*domain.StartTimeTarget
}

// slotKey 是引擎填充的最小单位：某一天某个班段的某个岗位
type slotKey struct {
	day       int32
	shiftType domain.ShiftType
	role      domain.Role
}

// pairKey 用于保证一个员工在同一个 (天, 班段) 中最多持有一个班次
type pairKey struct {
	day       int32
	shiftType domain.ShiftType
}

type startTimeKey struct {
	day       int32
	shiftType domain.ShiftType
	role      domain.Role
	startTime string
}
