package domain

// StaffingLimit 对某个 (天, 班段, 岗位) 的人数上下限约束
// 数据库中不存在对应行时表示没有约束（最少 0 人，人数不设上限）
type StaffingLimit struct {
	ID        int64     `json:"id"`
	DayOfWeek int32     `json:"dayOfWeek"`
	ShiftType ShiftType `json:"shiftType"`
	Role      Role      `json:"role"`
	MinStaff  int32     `json:"minStaff"`
	MaxStaff  int32     `json:"maxStaff"`
	Version   int32     `json:"-"`
}

// StartTimeTarget 到岗时间目标，属于软约束：
// 引擎在分配班次时优先选择当前排班人数距离目标人数缺口最大的到岗时间
type StartTimeTarget struct {
	ID          int64     `json:"id"`
	ShiftType   ShiftType `json:"shiftType"`
	Role        Role      `json:"role"`
	StartTime   string    `json:"startTime"` // 格式为 15:04:05
	TargetCount int32     `json:"targetCount"`
	Priority    int32     `json:"priority"` // 缺口相同时优先级小的优先
	IsActive    bool      `json:"isActive"`
	Version     int32     `json:"-"`
}
