package roster

import (
	"math"
	"sort"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

type Engine struct {
	weekStart time.Time
	employees []*domain.Employee
	matrix    Matrix
	limits    map[slotKey]*domain.StaffingLimit
	targets   []*domain.StartTimeTarget

	// 生成过程中的状态
	assignedCount  map[int64]int32        // 员工本周已分配的班次数
	holdsPair      map[pairKey]map[int64]bool // 员工在某个 (天, 班段) 中是否已经持有班次
	startTimeCount map[startTimeKey]int32 // 某个到岗时间已经分配的人数
}

func NewEngine(weekStart time.Time, employees []*domain.Employee, matrix Matrix, limits []*domain.StaffingLimit, targets []*domain.StartTimeTarget) *Engine {
	e := &Engine{
		weekStart:      weekStart,
		employees:      make([]*domain.Employee, 0, len(employees)),
		matrix:         matrix,
		limits:         make(map[slotKey]*domain.StaffingLimit, len(limits)),
		targets:        make([]*domain.StartTimeTarget, 0, len(targets)),
		assignedCount:  make(map[int64]int32),
		holdsPair:      make(map[pairKey]map[int64]bool),
		startTimeCount: make(map[startTimeKey]int32),
	}

	for _, employee := range employees {
		if !employee.IsSchedulable() {
			continue
		}
		e.employees = append(e.employees, employee)
	}
	// 员工顺序固定为 ID 升序，保证输出可复现
	sort.Slice(e.employees, func(i, j int) bool {
		return e.employees[i].ID < e.employees[j].ID
	})

	for _, limit := range limits {
		e.limits[slotKey{day: limit.DayOfWeek, shiftType: limit.ShiftType, role: limit.Role}] = limit
	}

	for _, target := range targets {
		if !target.IsActive {
			continue
		}
		e.targets = append(e.targets, target)
	}
	// 目标顺序同样固定，避免输入顺序影响结果
	sort.Slice(e.targets, func(i, j int) bool {
		if e.targets[i].Priority != e.targets[j].Priority {
			return e.targets[i].Priority < e.targets[j].Priority
		}
		return e.targets[i].StartTime < e.targets[j].StartTime
	})

	return e
}

// Generate 按固定顺序填充每个 (天, 班段, 岗位)：
// 天升序，午市在前，岗位按 SchedulableRoles 的声明顺序。
// 候选人不足导致没有达到最低人数时产生 Gap 记录而不是错误。
func (e *Engine) Generate() ([]domain.Shift, []domain.Gap) {
	shifts := make([]domain.Shift, 0)
	gaps := make([]domain.Gap, 0)

	for day := int32(0); day < 7; day++ {
		for _, shiftType := range domain.ShiftTypes {
			for _, role := range domain.SchedulableRoles {
				slotShifts, gap := e.fillSlot(day, shiftType, role)
				shifts = append(shifts, slotShifts...)
				if gap != nil {
					gaps = append(gaps, *gap)
				}
			}
		}
	}

	return shifts, gaps
}

func (e *Engine) fillSlot(day int32, shiftType domain.ShiftType, role domain.Role) ([]domain.Shift, *domain.Gap) {
	minStaff := int32(0)
	maxStaff := int32(math.MaxInt32)
	if limit, exists := e.limits[slotKey{day: day, shiftType: shiftType, role: role}]; exists {
		minStaff = limit.MinStaff
		maxStaff = limit.MaxStaff
	}

	candidates := e.rankCandidates(day, shiftType, role)

	shifts := make([]domain.Shift, 0)
	for _, candidate := range candidates {
		if int32(len(shifts)) >= maxStaff {
			break
		}

		startTime, endTime := e.pickWindow(day, shiftType, role)
		shifts = append(shifts, domain.Shift{
			DayOfWeek:  day,
			ShiftType:  shiftType,
			Role:       role,
			EmployeeID: candidate.ID,
			StartTime:  startTime,
			EndTime:    endTime,
			Status:     domain.ShiftStatusAssigned,
		})

		e.assignedCount[candidate.ID]++
		pair := pairKey{day: day, shiftType: shiftType}
		if _, exists := e.holdsPair[pair]; !exists {
			e.holdsPair[pair] = make(map[int64]bool)
		}
		e.holdsPair[pair][candidate.ID] = true
	}

	filled := int32(len(shifts))
	if filled < minStaff {
		return shifts, &domain.Gap{
			DayOfWeek: day,
			ShiftType: shiftType,
			Role:      role,
			Required:  minStaff,
			Filled:    filled,
			Deficit:   minStaff - filled,
		}
	}

	return shifts, nil
}

// rankCandidates 构建并排序候选池：
//  1. 本周已分配班次少的优先（负载均衡）
//  2. 主岗位匹配优先于副岗位匹配
//  3. 员工 ID 升序兜底，保证确定性
func (e *Engine) rankCandidates(day int32, shiftType domain.ShiftType, role domain.Role) []*domain.Employee {
	candidates := make([]*domain.Employee, 0)

	for _, employee := range e.employees {
		if !employee.HasRole(role) {
			continue
		}
		if !e.matrix.IsAvailable(employee.ID, day, shiftType) {
			continue
		}
		if e.assignedCount[employee.ID] >= employee.MaxShiftsPerWeek {
			continue
		}
		if e.holdsPair[pairKey{day: day, shiftType: shiftType}][employee.ID] {
			continue
		}
		candidates = append(candidates, employee)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if e.assignedCount[ci.ID] != e.assignedCount[cj.ID] {
			return e.assignedCount[ci.ID] < e.assignedCount[cj.ID]
		}
		iPrimary := ci.PrimaryRole == role
		jPrimary := cj.PrimaryRole == role
		if iPrimary != jPrimary {
			return iPrimary
		}
		return ci.ID < cj.ID
	})

	return candidates
}

// pickWindow 选择班次的到岗时间：在该岗位该班段所有启用的到岗时间目标中，
// 选择当前缺口（目标人数 - 已分配人数）最大的那个；缺口允许为负，
// 超出目标的到岗时间依然参与排序，只是优先级更低。
// 没有任何目标时使用班段的默认时间窗口。
func (e *Engine) pickWindow(day int32, shiftType domain.ShiftType, role domain.Role) (string, string) {
	window := domain.DefaultShiftWindows[shiftType]

	var best *domain.StartTimeTarget
	bestDeficit := int32(0)

	for _, target := range e.targets {
		if target.ShiftType != shiftType || target.Role != role {
			continue
		}

		key := startTimeKey{day: day, shiftType: shiftType, role: role, startTime: target.StartTime}
		deficit := target.TargetCount - e.startTimeCount[key]

		// e.targets 已经按优先级和到岗时间排序，所以缺口相同时保留先遇到的目标
		if best == nil || deficit > bestDeficit {
			best = target
			bestDeficit = deficit
		}
	}

	if best == nil {
		return window.StartTime, window.EndTime
	}

	e.startTimeCount[startTimeKey{day: day, shiftType: shiftType, role: role, startTime: best.StartTime}]++
	return best.StartTime, window.EndTime
}

// Generate 是一次完整的排班：先解析有效空闲矩阵，再运行引擎
func Generate(input *Input) ([]domain.Shift, []domain.Gap, error) {
	matrix, err := ResolveAvailability(input.WeekStart, input.Employees, input.Entries, input.Absences, input.Leaves)
	if err != nil {
		return nil, nil, err
	}

	engine := NewEngine(input.WeekStart, input.Employees, matrix, input.Limits, input.Targets)
	shifts, gaps := engine.Generate()
	return shifts, gaps, nil
}
