package utils

import (
	"testing"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

// ── 周起始日期测试 ──

func TestNormalizeWeekStart(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	// 一周内的任意一天都应归一化到同一个周一
	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset).Add(13 * time.Hour)
		got := NormalizeWeekStart(day)
		if !got.Equal(monday) {
			t.Errorf("日期 %s 应归一化到 %s，实际=%s", day.Format("2006-01-02"), monday.Format("2006-01-02"), got.Format("2006-01-02"))
		}
	}
}

func TestNormalizeWeekStart_Idempotent(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	if got := NormalizeWeekStart(monday); !got.Equal(monday) {
		t.Errorf("周一零点归一化后应保持不变，实际=%s", got)
	}
}

func TestIsWeekStart(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	if !IsWeekStart(monday) {
		t.Error("周一零点应通过周起始检查")
	}
	if IsWeekStart(monday.AddDate(0, 0, 1)) {
		t.Error("周二不应通过周起始检查")
	}
	if IsWeekStart(monday.Add(time.Hour)) {
		t.Error("周一非零点不应通过周起始检查")
	}
}

func TestDayOfWeek(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	for offset := int32(0); offset < 7; offset++ {
		if got := DayOfWeek(monday.AddDate(0, 0, int(offset))); got != offset {
			t.Errorf("期望下标 %d（周一为 0），实际=%d", offset, got)
		}
	}
}

func TestDateOfDay(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	if got := DateOfDay(monday, 6); !got.Equal(sunday) {
		t.Errorf("第 6 天应为周日 %s，实际=%s", sunday.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}

// ── 校验函数测试 ──

func TestValidateShiftWindow(t *testing.T) {
	if err := ValidateShiftWindow("11:30:00", "14:00:00"); err != nil {
		t.Errorf("合法的时间窗口应通过校验: %v", err)
	}
	if err := ValidateShiftWindow("14:00:00", "11:30:00"); err == nil {
		t.Error("结束时间早于开始时间应校验失败")
	}
	if err := ValidateShiftWindow("11:30", "14:00:00"); err == nil {
		t.Error("格式错误的开始时间应校验失败")
	}
}

func TestValidateStaffingLimit(t *testing.T) {
	limit := &domain.StaffingLimit{
		DayOfWeek: 0,
		ShiftType: domain.ShiftTypeLunch,
		Role:      domain.RoleCook,
		MinStaff:  1,
		MaxStaff:  2,
	}
	if err := ValidateStaffingLimit(limit); err != nil {
		t.Errorf("合法的人数约束应通过校验: %v", err)
	}

	bad := *limit
	bad.DayOfWeek = 7
	if err := ValidateStaffingLimit(&bad); err == nil {
		t.Error("星期下标超出范围应校验失败")
	}

	bad = *limit
	bad.Role = domain.RoleAdmin
	if err := ValidateStaffingLimit(&bad); err == nil {
		t.Error("管理员岗位不应通过人数约束校验")
	}

	bad = *limit
	bad.MaxStaff = 0
	if err := ValidateStaffingLimit(&bad); err == nil {
		t.Error("最多人数小于最少人数应校验失败")
	}
}

func TestValidateStartTimeTarget(t *testing.T) {
	target := &domain.StartTimeTarget{
		ShiftType:   domain.ShiftTypeLunch,
		Role:        domain.RoleCook,
		StartTime:   "10:30:00",
		TargetCount: 1,
	}
	if err := ValidateStartTimeTarget(target); err != nil {
		t.Errorf("合法的到岗时间目标应通过校验: %v", err)
	}

	bad := *target
	bad.StartTime = "早上十点半"
	if err := ValidateStartTimeTarget(&bad); err == nil {
		t.Error("格式错误的到岗时间应校验失败")
	}

	bad = *target
	bad.TargetCount = 0
	if err := ValidateStartTimeTarget(&bad); err == nil {
		t.Error("目标人数为 0 应校验失败")
	}
}

func TestValidatePeriod(t *testing.T) {
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	if err := ValidatePeriod(start, start); err != nil {
		t.Errorf("单天区间应通过校验: %v", err)
	}
	if err := ValidatePeriod(start, start.AddDate(0, 0, 3)); err != nil {
		t.Errorf("合法区间应通过校验: %v", err)
	}
	if err := ValidatePeriod(start, start.AddDate(0, 0, -1)); err == nil {
		t.Error("结束日期早于开始日期应校验失败")
	}
}
