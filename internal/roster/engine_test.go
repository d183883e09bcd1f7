package roster

import (
	"reflect"
	"testing"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

// ── 测试辅助 ──

func newLimit(day int32, shiftType domain.ShiftType, role domain.Role, min, max int32) *domain.StaffingLimit {
	return &domain.StaffingLimit{
		DayOfWeek: day,
		ShiftType: shiftType,
		Role:      role,
		MinStaff:  min,
		MaxStaff:  max,
	}
}

// ── Generate 测试 ──

func TestGenerate_Deterministic(t *testing.T) {
	input := &Input{
		WeekStart: testWeekStart,
		Employees: []*domain.Employee{
			newTestEmployee(1, domain.RoleCook, rolePtr(domain.RoleDelivery), 8),
			newTestEmployee(2, domain.RoleDelivery, nil, 10),
			newTestEmployee(3, domain.RoleCashier, rolePtr(domain.RoleCook), 6),
		},
		Entries: append(append(fullWeekEntries(1), fullWeekEntries(2)...), fullWeekEntries(3)...),
		Limits: []*domain.StaffingLimit{
			newLimit(0, domain.ShiftTypeLunch, domain.RoleCook, 1, 2),
			newLimit(0, domain.ShiftTypeLunch, domain.RoleDelivery, 1, 1),
		},
	}

	firstShifts, firstGaps, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	secondShifts, secondGaps, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	if !reflect.DeepEqual(firstShifts, secondShifts) {
		t.Error("相同的输入应产生完全相同的班次")
	}
	if !reflect.DeepEqual(firstGaps, secondGaps) {
		t.Error("相同的输入应产生完全相同的缺口记录")
	}
}

func TestGenerate_NoDoubleBooking(t *testing.T) {
	input := &Input{
		WeekStart: testWeekStart,
		Employees: []*domain.Employee{
			newTestEmployee(1, domain.RoleCook, rolePtr(domain.RoleDelivery), 14),
		},
		Entries: fullWeekEntries(1),
	}

	shifts, _, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	seen := make(map[[2]any]bool)
	for _, shift := range shifts {
		key := [2]any{shift.DayOfWeek, shift.ShiftType}
		if seen[key] {
			t.Errorf("员工在同一个 (天, 班段) 中持有了多个班次: day=%d shiftType=%s", shift.DayOfWeek, shift.ShiftType)
		}
		seen[key] = true
	}
}

func TestGenerate_RespectsMaxShiftsPerWeek(t *testing.T) {
	input := &Input{
		WeekStart: testWeekStart,
		Employees: []*domain.Employee{
			newTestEmployee(1, domain.RoleCook, nil, 3),
		},
		Entries: fullWeekEntries(1),
	}

	shifts, _, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	if len(shifts) != 3 {
		t.Errorf("期望分配 3 个班次（员工周上限），实际=%d", len(shifts))
	}
}

func TestGenerate_RespectsMaxStaff(t *testing.T) {
	input := &Input{
		WeekStart: testWeekStart,
		Employees: []*domain.Employee{
			newTestEmployee(1, domain.RoleCook, nil, 14),
			newTestEmployee(2, domain.RoleCook, nil, 14),
			newTestEmployee(3, domain.RoleCook, nil, 14),
		},
		Entries: []*domain.AvailabilityEntry{
			newEntry(1, 0, domain.ShiftTypeLunch, true),
			newEntry(2, 0, domain.ShiftTypeLunch, true),
			newEntry(3, 0, domain.ShiftTypeLunch, true),
		},
		Limits: []*domain.StaffingLimit{
			newLimit(0, domain.ShiftTypeLunch, domain.RoleCook, 1, 2),
		},
	}

	shifts, gaps, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	if len(shifts) != 2 {
		t.Errorf("期望分配 2 个班次（人数上限），实际=%d", len(shifts))
	}
	if len(gaps) != 0 {
		t.Errorf("达到最低人数时不应产生缺口，实际=%d", len(gaps))
	}
}

func TestGenerate_GapWhenUnderstaffed(t *testing.T) {
	input := &Input{
		WeekStart: testWeekStart,
		Employees: []*domain.Employee{
			newTestEmployee(1, domain.RoleCook, nil, 14),
		},
		Entries: []*domain.AvailabilityEntry{
			newEntry(1, 0, domain.ShiftTypeLunch, true),
		},
		Limits: []*domain.StaffingLimit{
			newLimit(0, domain.ShiftTypeLunch, domain.RoleCook, 2, 3),
		},
	}

	shifts, gaps, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	if len(shifts) != 1 {
		t.Fatalf("期望分配 1 个班次，实际=%d", len(shifts))
	}
	if len(gaps) != 1 {
		t.Fatalf("期望产生 1 条缺口记录，实际=%d", len(gaps))
	}

	gap := gaps[0]
	if gap.Required != 2 || gap.Filled != 1 || gap.Deficit != 1 {
		t.Errorf("期望缺口 required=2 filled=1 deficit=1，实际 required=%d filled=%d deficit=%d", gap.Required, gap.Filled, gap.Deficit)
	}
	if gap.DayOfWeek != 0 || gap.ShiftType != domain.ShiftTypeLunch || gap.Role != domain.RoleCook {
		t.Errorf("缺口记录的槽位不正确: %+v", gap)
	}
}

func TestGenerate_PrefersPrimaryRole(t *testing.T) {
	// ID 更小的员工只有副岗位匹配，主岗位匹配的员工应优先被选中
	secondaryCook := newTestEmployee(1, domain.RoleDelivery, rolePtr(domain.RoleCook), 14)
	primaryCook := newTestEmployee(2, domain.RoleCook, nil, 14)

	input := &Input{
		WeekStart: testWeekStart,
		Employees: []*domain.Employee{secondaryCook, primaryCook},
		Entries: []*domain.AvailabilityEntry{
			newEntry(1, 0, domain.ShiftTypeLunch, true),
			newEntry(2, 0, domain.ShiftTypeLunch, true),
		},
		Limits: []*domain.StaffingLimit{
			newLimit(0, domain.ShiftTypeLunch, domain.RoleCook, 1, 1),
			newLimit(0, domain.ShiftTypeLunch, domain.RoleDelivery, 0, 0),
			newLimit(0, domain.ShiftTypeLunch, domain.RoleCashier, 0, 0),
		},
	}

	shifts, _, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	if len(shifts) != 1 {
		t.Fatalf("期望分配 1 个班次，实际=%d", len(shifts))
	}
	if shifts[0].EmployeeID != 2 {
		t.Errorf("主岗位匹配的员工应优先被选中，实际选中员工 %d", shifts[0].EmployeeID)
	}
}

func TestGenerate_BalancesLoad(t *testing.T) {
	// 两名厨师整周有空，每天午市一个名额，分配应在两人之间交替
	input := &Input{
		WeekStart: testWeekStart,
		Employees: []*domain.Employee{
			newTestEmployee(1, domain.RoleCook, nil, 14),
			newTestEmployee(2, domain.RoleCook, nil, 14),
		},
		Entries: append(fullWeekEntries(1), fullWeekEntries(2)...),
		Limits: func() []*domain.StaffingLimit {
			limits := make([]*domain.StaffingLimit, 0, 14)
			for day := int32(0); day < 7; day++ {
				limits = append(limits,
					newLimit(day, domain.ShiftTypeLunch, domain.RoleCook, 1, 1),
					newLimit(day, domain.ShiftTypeDinner, domain.RoleCook, 0, 0),
				)
			}
			return limits
		}(),
	}

	shifts, _, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	counts := make(map[int64]int)
	for _, shift := range shifts {
		counts[shift.EmployeeID]++
	}

	diff := counts[1] - counts[2]
	if diff < -1 || diff > 1 {
		t.Errorf("负载应均衡分配，实际 员工1=%d 员工2=%d", counts[1], counts[2])
	}
}

func TestGenerate_UsesDefaultWindowWithoutTargets(t *testing.T) {
	input := &Input{
		WeekStart: testWeekStart,
		Employees: []*domain.Employee{newTestEmployee(1, domain.RoleCook, nil, 14)},
		Entries: []*domain.AvailabilityEntry{
			newEntry(1, 0, domain.ShiftTypeLunch, true),
			newEntry(1, 0, domain.ShiftTypeDinner, true),
		},
	}

	shifts, _, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	for _, shift := range shifts {
		window := domain.DefaultShiftWindows[shift.ShiftType]
		if shift.StartTime != window.StartTime || shift.EndTime != window.EndTime {
			t.Errorf("没有到岗时间目标时应使用默认时间窗口，实际 %s-%s", shift.StartTime, shift.EndTime)
		}
	}
}

func TestGenerate_DistributesStartTimesByDeficit(t *testing.T) {
	// 两个到岗时间目标：10:30 需要 1 人（优先级高），11:00 需要 2 人。
	// 三名厨师在同一个午市分配时应先补缺口最大的 11:00，
	// 缺口相同时选优先级更高的 10:30。
	input := &Input{
		WeekStart: testWeekStart,
		Employees: []*domain.Employee{
			newTestEmployee(1, domain.RoleCook, nil, 14),
			newTestEmployee(2, domain.RoleCook, nil, 14),
			newTestEmployee(3, domain.RoleCook, nil, 14),
		},
		Entries: []*domain.AvailabilityEntry{
			newEntry(1, 0, domain.ShiftTypeLunch, true),
			newEntry(2, 0, domain.ShiftTypeLunch, true),
			newEntry(3, 0, domain.ShiftTypeLunch, true),
		},
		Targets: []*domain.StartTimeTarget{
			{ShiftType: domain.ShiftTypeLunch, Role: domain.RoleCook, StartTime: "10:30:00", TargetCount: 1, Priority: 0, IsActive: true},
			{ShiftType: domain.ShiftTypeLunch, Role: domain.RoleCook, StartTime: "11:00:00", TargetCount: 2, Priority: 1, IsActive: true},
		},
	}

	shifts, _, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	if len(shifts) != 3 {
		t.Fatalf("期望分配 3 个班次，实际=%d", len(shifts))
	}

	startTimes := []string{shifts[0].StartTime, shifts[1].StartTime, shifts[2].StartTime}
	expected := []string{"11:00:00", "10:30:00", "11:00:00"}
	if !reflect.DeepEqual(startTimes, expected) {
		t.Errorf("期望到岗时间序列 %v，实际 %v", expected, startTimes)
	}

	for _, shift := range shifts {
		if shift.EndTime != domain.DefaultShiftWindows[domain.ShiftTypeLunch].EndTime {
			t.Errorf("结束时间应始终为班段默认结束时间，实际 %s", shift.EndTime)
		}
	}
}

func TestGenerate_IgnoresInactiveTargets(t *testing.T) {
	input := &Input{
		WeekStart: testWeekStart,
		Employees: []*domain.Employee{newTestEmployee(1, domain.RoleCook, nil, 14)},
		Entries: []*domain.AvailabilityEntry{
			newEntry(1, 0, domain.ShiftTypeLunch, true),
		},
		Targets: []*domain.StartTimeTarget{
			{ShiftType: domain.ShiftTypeLunch, Role: domain.RoleCook, StartTime: "09:00:00", TargetCount: 1, Priority: 0, IsActive: false},
		},
	}

	shifts, _, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	if len(shifts) != 1 {
		t.Fatalf("期望分配 1 个班次，实际=%d", len(shifts))
	}
	if shifts[0].StartTime != domain.DefaultShiftWindows[domain.ShiftTypeLunch].StartTime {
		t.Errorf("停用的到岗时间目标不应参与选择，实际到岗时间 %s", shifts[0].StartTime)
	}
}

func TestGenerate_SlotOrderIsCanonical(t *testing.T) {
	input := &Input{
		WeekStart: testWeekStart,
		Employees: []*domain.Employee{
			newTestEmployee(1, domain.RoleCook, rolePtr(domain.RoleDelivery), 14),
		},
		Entries: fullWeekEntries(1),
	}

	shifts, _, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	// 天升序，午市在晚市前
	for i := 1; i < len(shifts); i++ {
		prev, cur := shifts[i-1], shifts[i]
		if cur.DayOfWeek < prev.DayOfWeek {
			t.Fatalf("班次应按天升序排列: %d 出现在 %d 之后", cur.DayOfWeek, prev.DayOfWeek)
		}
		if cur.DayOfWeek == prev.DayOfWeek && prev.ShiftType == domain.ShiftTypeDinner && cur.ShiftType == domain.ShiftTypeLunch {
			t.Fatal("同一天内午市班次应排在晚市之前")
		}
	}
}
