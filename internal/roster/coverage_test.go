package roster

import (
	"testing"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

func TestCoverage_CoversEverySlot(t *testing.T) {
	entries := Coverage(nil, nil)

	expected := 7 * len(domain.ShiftTypes) * len(domain.SchedulableRoles)
	if len(entries) != expected {
		t.Fatalf("期望 %d 条覆盖记录，实际=%d", expected, len(entries))
	}

	// 没有约束的槽位覆盖率视为 100%
	for _, entry := range entries {
		if entry.Required != 0 || entry.Filled != 0 {
			t.Errorf("空输入下不应有人数要求和已排班人数: %+v", entry)
		}
		if entry.FillRate != 100.0 {
			t.Errorf("没有人数要求的槽位覆盖率应为 100%%，实际=%f", entry.FillRate)
		}
	}
}

func TestCoverage_ComputesFillRate(t *testing.T) {
	shifts := []domain.Shift{
		{DayOfWeek: 0, ShiftType: domain.ShiftTypeLunch, Role: domain.RoleCook, EmployeeID: 1},
	}
	limits := []*domain.StaffingLimit{
		newLimit(0, domain.ShiftTypeLunch, domain.RoleCook, 2, 3),
	}

	entries := Coverage(shifts, limits)

	var found *CoverageEntry
	for i := range entries {
		if entries[i].DayOfWeek == 0 && entries[i].ShiftType == domain.ShiftTypeLunch && entries[i].Role == domain.RoleCook {
			found = &entries[i]
			break
		}
	}

	if found == nil {
		t.Fatal("没有找到周一午市厨师的覆盖记录")
	}
	if found.Required != 2 || found.Filled != 1 {
		t.Errorf("期望 required=2 filled=1，实际 required=%d filled=%d", found.Required, found.Filled)
	}
	if found.FillRate != 50.0 {
		t.Errorf("期望覆盖率 50%%，实际=%f", found.FillRate)
	}
}

func TestCoverage_OrderMatchesEngine(t *testing.T) {
	entries := Coverage(nil, nil)

	idx := 0
	for day := int32(0); day < 7; day++ {
		for _, shiftType := range domain.ShiftTypes {
			for _, role := range domain.SchedulableRoles {
				entry := entries[idx]
				if entry.DayOfWeek != day || entry.ShiftType != shiftType || entry.Role != role {
					t.Fatalf("覆盖记录顺序应和引擎填充顺序一致，第 %d 条实际为 %+v", idx, entry)
				}
				idx++
			}
		}
	}
}
