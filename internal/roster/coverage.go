package roster

import (
	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

// CoverageEntry 管理端查看的单个 (天, 班段, 岗位) 覆盖情况
type CoverageEntry struct {
	DayOfWeek int32            `json:"dayOfWeek"`
	ShiftType domain.ShiftType `json:"shiftType"`
	Role      domain.Role      `json:"role"`
	Required  int32            `json:"required"`
	Filled    int32            `json:"filled"`
	FillRate  float64          `json:"fillRate"` // 百分比
}

// Coverage 根据已持久化的班次和人数约束计算每个槽位的覆盖率，
// 顺序和引擎填充槽位的顺序一致
func Coverage(shifts []domain.Shift, limits []*domain.StaffingLimit) []CoverageEntry {
	limitMap := make(map[slotKey]*domain.StaffingLimit, len(limits))
	for _, limit := range limits {
		limitMap[slotKey{day: limit.DayOfWeek, shiftType: limit.ShiftType, role: limit.Role}] = limit
	}

	filledMap := make(map[slotKey]int32)
	for _, shift := range shifts {
		filledMap[slotKey{day: shift.DayOfWeek, shiftType: shift.ShiftType, role: shift.Role}]++
	}

	entries := make([]CoverageEntry, 0, 7*len(domain.ShiftTypes)*len(domain.SchedulableRoles))
	for day := int32(0); day < 7; day++ {
		for _, shiftType := range domain.ShiftTypes {
			for _, role := range domain.SchedulableRoles {
				key := slotKey{day: day, shiftType: shiftType, role: role}

				required := int32(0)
				if limit, exists := limitMap[key]; exists {
					required = limit.MinStaff
				}
				filled := filledMap[key]

				fillRate := 100.0
				if required > 0 {
					fillRate = float64(filled) / float64(required) * 100
				}

				entries = append(entries, CoverageEntry{
					DayOfWeek: day,
					ShiftType: shiftType,
					Role:      role,
					Required:  required,
					Filled:    filled,
					FillRate:  fillRate,
				})
			}
		}
	}

	return entries
}
