package utils

import (
	"fmt"
	"slices"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

// NormalizeWeekStart 把任意日期归一化到其所在 ISO 周的周一零点（UTC）
func NormalizeWeekStart(t time.Time) time.Time {
	t = t.UTC()
	// time.Weekday 以周日为 0，这里换算成以周一为 0
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
}

// IsWeekStart 判断日期是否已经是归一化后的周一零点
func IsWeekStart(t time.Time) bool {
	return t.Equal(NormalizeWeekStart(t))
}

// DayOfWeek 返回日期在其所在周中的下标，0 表示周一
func DayOfWeek(t time.Time) int32 {
	return int32((int(t.UTC().Weekday()) + 6) % 7)
}

// DateOfDay 返回某一周中第 day 天对应的日期
func DateOfDay(weekStart time.Time, day int32) time.Time {
	return weekStart.AddDate(0, 0, int(day))
}

func ValidateShiftWindow(startTime string, endTime string) error {
	start, err := time.Parse("15:04:05", startTime)
	if err != nil {
		return fmt.Errorf("开始时间格式错误")
	}
	end, err := time.Parse("15:04:05", endTime)
	if err != nil {
		return fmt.Errorf("结束时间格式错误")
	}
	if !end.After(start) {
		return fmt.Errorf("结束时间必须晚于开始时间")
	}
	return nil
}

func ValidateStaffingLimit(limit *domain.StaffingLimit) error {
	if limit.DayOfWeek < 0 || limit.DayOfWeek > 6 {
		return fmt.Errorf("星期下标必须在 0 到 6 之间")
	}
	if !slices.Contains(domain.ShiftTypes, limit.ShiftType) {
		return fmt.Errorf("班段 %s 不合法", limit.ShiftType)
	}
	if !slices.Contains(domain.SchedulableRoles, limit.Role) {
		return fmt.Errorf("岗位 %s 不参与排班", limit.Role)
	}
	if limit.MinStaff < 0 {
		return fmt.Errorf("最少人数不能为负数")
	}
	if limit.MaxStaff < limit.MinStaff {
		return fmt.Errorf("最多人数不能小于最少人数")
	}
	return nil
}

func ValidateStartTimeTarget(target *domain.StartTimeTarget) error {
	if !slices.Contains(domain.ShiftTypes, target.ShiftType) {
		return fmt.Errorf("班段 %s 不合法", target.ShiftType)
	}
	if !slices.Contains(domain.SchedulableRoles, target.Role) {
		return fmt.Errorf("岗位 %s 不参与排班", target.Role)
	}
	if _, err := time.Parse("15:04:05", target.StartTime); err != nil {
		return fmt.Errorf("到岗时间格式错误")
	}
	if target.TargetCount <= 0 {
		return fmt.Errorf("目标人数必须大于 0")
	}
	return nil
}

func ValidatePeriod(startDate time.Time, endDate time.Time) error {
	if endDate.Before(startDate) {
		return fmt.Errorf("结束日期不能早于开始日期")
	}
	return nil
}
