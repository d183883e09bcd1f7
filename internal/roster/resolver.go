package roster

import (
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	"github.com/canteen-dev/restaurant-roster/backend/internal/utils"
)

// ResolveAvailability 计算一周的有效空闲矩阵：
// 以员工自己提交的空闲时间为基础（没有提交的时段视为没空），
// 再用已批准的缺勤和请假把对应天的所有班段强制置为没空。
// 离职员工和管理员不会出现在矩阵中。
func ResolveAvailability(weekStart time.Time, employees []*domain.Employee, entries []*domain.AvailabilityEntry, absences []*domain.AbsencePeriod, leaves []*domain.LeavePeriod) (Matrix, error) {
	if !utils.IsWeekStart(weekStart) {
		return nil, domain.ErrInvalidWeekStart
	}

	matrix := make(Matrix)

	for _, employee := range employees {
		if !employee.IsSchedulable() {
			continue
		}

		days := make(map[int32]map[domain.ShiftType]bool, 7)
		for day := int32(0); day < 7; day++ {
			days[day] = make(map[domain.ShiftType]bool, len(domain.ShiftTypes))
			for _, shiftType := range domain.ShiftTypes {
				days[day][shiftType] = false
			}
		}
		matrix[employee.ID] = days
	}

	for _, entry := range entries {
		if !entry.WeekStart.Equal(weekStart) {
			continue
		}
		if entry.DayOfWeek < 0 || entry.DayOfWeek > 6 {
			continue
		}
		days, exists := matrix[entry.EmployeeID]
		if !exists {
			// 提交者已离职或不参与排班
			continue
		}
		days[entry.DayOfWeek][entry.ShiftType] = entry.IsAvailable
	}

	// 已批准的缺勤和请假覆盖员工自己提交的空闲时间
	for day := int32(0); day < 7; day++ {
		date := utils.DateOfDay(weekStart, day)

		for _, absence := range absences {
			if absence.Status != domain.PeriodStatusApproved || !absence.Covers(date) {
				continue
			}
			markUnavailable(matrix, absence.EmployeeID, day)
		}

		for _, leave := range leaves {
			if leave.Status != domain.PeriodStatusApproved || !leave.Covers(date) {
				continue
			}
			markUnavailable(matrix, leave.EmployeeID, day)
		}
	}

	return matrix, nil
}

func markUnavailable(matrix Matrix, employeeID int64, day int32) {
	days, exists := matrix[employeeID]
	if !exists {
		return
	}
	for _, shiftType := range domain.ShiftTypes {
		days[day][shiftType] = false
	}
}
