package roster

import (
	"errors"
	"testing"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

// ── 测试辅助 ──

var testWeekStart = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // 周一

func rolePtr(r domain.Role) *domain.Role {
	return &r
}

func newTestEmployee(id int64, primary domain.Role, secondary *domain.Role, maxShifts int32) *domain.Employee {
	return &domain.Employee{
		ID:               id,
		Username:         "employee",
		PrimaryRole:      primary,
		SecondaryRole:    secondary,
		IsActive:         true,
		MaxShiftsPerWeek: maxShifts,
	}
}

func newEntry(employeeID int64, day int32, shiftType domain.ShiftType, available bool) *domain.AvailabilityEntry {
	return &domain.AvailabilityEntry{
		EmployeeID:  employeeID,
		WeekStart:   testWeekStart,
		DayOfWeek:   day,
		ShiftType:   shiftType,
		IsAvailable: available,
	}
}

// fullWeekEntries 生成某员工整周全部有空的提交
func fullWeekEntries(employeeID int64) []*domain.AvailabilityEntry {
	entries := make([]*domain.AvailabilityEntry, 0, 14)
	for day := int32(0); day < 7; day++ {
		for _, shiftType := range domain.ShiftTypes {
			entries = append(entries, newEntry(employeeID, day, shiftType, true))
		}
	}
	return entries
}

// ── ResolveAvailability 测试 ──

func TestResolveAvailability_InvalidWeekStart(t *testing.T) {
	notMonday := testWeekStart.AddDate(0, 0, 1)

	_, err := ResolveAvailability(notMonday, nil, nil, nil, nil)
	if !errors.Is(err, domain.ErrInvalidWeekStart) {
		t.Errorf("期望 ErrInvalidWeekStart，实际: %v", err)
	}
}

func TestResolveAvailability_DefaultsToUnavailable(t *testing.T) {
	employees := []*domain.Employee{newTestEmployee(1, domain.RoleCook, nil, 10)}

	matrix, err := ResolveAvailability(testWeekStart, employees, nil, nil, nil)
	if err != nil {
		t.Fatalf("ResolveAvailability 应成功: %v", err)
	}

	for day := int32(0); day < 7; day++ {
		for _, shiftType := range domain.ShiftTypes {
			if matrix.IsAvailable(1, day, shiftType) {
				t.Errorf("没有提交空闲时间的时段应视为没空: day=%d shiftType=%s", day, shiftType)
			}
		}
	}
}

func TestResolveAvailability_ExcludesAdminAndInactive(t *testing.T) {
	admin := newTestEmployee(1, domain.RoleAdmin, nil, 14)
	inactive := newTestEmployee(2, domain.RoleCook, nil, 10)
	inactive.IsActive = false
	cook := newTestEmployee(3, domain.RoleCook, nil, 10)

	matrix, err := ResolveAvailability(testWeekStart, []*domain.Employee{admin, inactive, cook}, nil, nil, nil)
	if err != nil {
		t.Fatalf("ResolveAvailability 应成功: %v", err)
	}

	if _, exists := matrix[1]; exists {
		t.Error("管理员不应出现在空闲矩阵中")
	}
	if _, exists := matrix[2]; exists {
		t.Error("离职员工不应出现在空闲矩阵中")
	}
	if _, exists := matrix[3]; !exists {
		t.Error("在职员工应出现在空闲矩阵中")
	}
}

func TestResolveAvailability_AppliesEntries(t *testing.T) {
	employees := []*domain.Employee{newTestEmployee(1, domain.RoleCook, nil, 10)}
	entries := []*domain.AvailabilityEntry{
		newEntry(1, 0, domain.ShiftTypeLunch, true),
		newEntry(1, 0, domain.ShiftTypeDinner, false),
	}

	matrix, err := ResolveAvailability(testWeekStart, employees, entries, nil, nil)
	if err != nil {
		t.Fatalf("ResolveAvailability 应成功: %v", err)
	}

	if !matrix.IsAvailable(1, 0, domain.ShiftTypeLunch) {
		t.Error("周一午市应有空")
	}
	if matrix.IsAvailable(1, 0, domain.ShiftTypeDinner) {
		t.Error("周一晚市应没空")
	}
}

func TestResolveAvailability_IgnoresBogusEntries(t *testing.T) {
	employees := []*domain.Employee{newTestEmployee(1, domain.RoleCook, nil, 10)}

	otherWeek := newEntry(1, 0, domain.ShiftTypeLunch, true)
	otherWeek.WeekStart = testWeekStart.AddDate(0, 0, 7)

	outOfRange := newEntry(1, 7, domain.ShiftTypeLunch, true)
	unknownEmployee := newEntry(99, 0, domain.ShiftTypeLunch, true)

	matrix, err := ResolveAvailability(testWeekStart, employees, []*domain.AvailabilityEntry{otherWeek, outOfRange, unknownEmployee}, nil, nil)
	if err != nil {
		t.Fatalf("ResolveAvailability 应成功: %v", err)
	}

	if matrix.IsAvailable(1, 0, domain.ShiftTypeLunch) {
		t.Error("其他周的提交不应影响本周的空闲矩阵")
	}
	if matrix.IsAvailable(99, 0, domain.ShiftTypeLunch) {
		t.Error("未知员工的提交不应进入空闲矩阵")
	}
}

func TestResolveAvailability_ApprovedAbsenceOverrides(t *testing.T) {
	employees := []*domain.Employee{newTestEmployee(1, domain.RoleCook, nil, 10)}
	entries := fullWeekEntries(1)

	// 缺勤覆盖周三到周四（区间两端都包含）
	absence := &domain.AbsencePeriod{
		EmployeeID: 1,
		StartDate:  testWeekStart.AddDate(0, 0, 2),
		EndDate:    testWeekStart.AddDate(0, 0, 3),
		Status:     domain.PeriodStatusApproved,
	}

	matrix, err := ResolveAvailability(testWeekStart, employees, entries, []*domain.AbsencePeriod{absence}, nil)
	if err != nil {
		t.Fatalf("ResolveAvailability 应成功: %v", err)
	}

	for day := int32(0); day < 7; day++ {
		covered := day == 2 || day == 3
		for _, shiftType := range domain.ShiftTypes {
			if covered && matrix.IsAvailable(1, day, shiftType) {
				t.Errorf("缺勤覆盖的天应没空: day=%d shiftType=%s", day, shiftType)
			}
			if !covered && !matrix.IsAvailable(1, day, shiftType) {
				t.Errorf("缺勤未覆盖的天应保持有空: day=%d shiftType=%s", day, shiftType)
			}
		}
	}
}

func TestResolveAvailability_PendingAbsenceIgnored(t *testing.T) {
	employees := []*domain.Employee{newTestEmployee(1, domain.RoleCook, nil, 10)}
	entries := fullWeekEntries(1)

	absence := &domain.AbsencePeriod{
		EmployeeID: 1,
		StartDate:  testWeekStart,
		EndDate:    testWeekStart.AddDate(0, 0, 6),
		Status:     domain.PeriodStatusPending,
	}

	matrix, err := ResolveAvailability(testWeekStart, employees, entries, []*domain.AbsencePeriod{absence}, nil)
	if err != nil {
		t.Fatalf("ResolveAvailability 应成功: %v", err)
	}

	if !matrix.IsAvailable(1, 0, domain.ShiftTypeLunch) {
		t.Error("待审批的缺勤不应覆盖空闲时间")
	}
}

func TestResolveAvailability_ApprovedLeaveOverrides(t *testing.T) {
	employees := []*domain.Employee{newTestEmployee(1, domain.RoleCook, nil, 10)}
	entries := fullWeekEntries(1)

	leave := &domain.LeavePeriod{
		EmployeeID: 1,
		StartDate:  testWeekStart.AddDate(0, 0, 5),
		EndDate:    testWeekStart.AddDate(0, 0, 6),
		Status:     domain.PeriodStatusApproved,
	}

	matrix, err := ResolveAvailability(testWeekStart, employees, entries, nil, []*domain.LeavePeriod{leave})
	if err != nil {
		t.Fatalf("ResolveAvailability 应成功: %v", err)
	}

	if matrix.IsAvailable(1, 5, domain.ShiftTypeLunch) || matrix.IsAvailable(1, 6, domain.ShiftTypeDinner) {
		t.Error("请假覆盖的周末应没空")
	}
	if !matrix.IsAvailable(1, 4, domain.ShiftTypeLunch) {
		t.Error("请假未覆盖的天应保持有空")
	}
}
