package domain

import "time"

type ShiftType string

const (
	ShiftTypeLunch  ShiftType = "午市"
	ShiftTypeDinner ShiftType = "晚市"
)

// ShiftTypes 是排班引擎处理班段的固定顺序，午市在前
var ShiftTypes = []ShiftType{ShiftTypeLunch, ShiftTypeDinner}

type ShiftWindow struct {
	StartTime string `json:"startTime"` // 格式为 15:04:05
	EndTime   string `json:"endTime"`
}

// DefaultShiftWindows 没有设置到岗时间目标时使用的默认班段时间
var DefaultShiftWindows = map[ShiftType]ShiftWindow{
	ShiftTypeLunch:  {StartTime: "11:30:00", EndTime: "14:00:00"},
	ShiftTypeDinner: {StartTime: "18:00:00", EndTime: "22:00:00"},
}

type ShiftStatus string

const (
	ShiftStatusAssigned    ShiftStatus = "已排班"
	ShiftStatusSubstituted ShiftStatus = "已顶班"
)

type Schedule struct {
	ID        int64     `json:"id"`
	WeekStart time.Time `json:"weekStart"`
	Shifts    []Shift   `json:"shifts"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

var weekdayNames = [...]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// WeekdayName 把以周一为 0 的星期下标转成中文星期名
func WeekdayName(dayOfWeek int32) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ""
	}
	return weekdayNames[dayOfWeek]
}

type Shift struct {
	ID         int64       `json:"id"`
	ScheduleID int64       `json:"scheduleID"`
	DayOfWeek  int32       `json:"dayOfWeek"` // 0 表示周一，6 表示周日
	ShiftType  ShiftType   `json:"shiftType"`
	Role       Role        `json:"role"`
	EmployeeID int64       `json:"employeeID"`
	StartTime  string      `json:"startTime"`
	EndTime    string      `json:"endTime"`
	Status     ShiftStatus `json:"status"`
}

// Gap 表示某个 (天, 班段, 岗位) 的排班人数没有达到最低要求
type Gap struct {
	DayOfWeek int32     `json:"dayOfWeek"`
	ShiftType ShiftType `json:"shiftType"`
	Role      Role      `json:"role"`
	Required  int32     `json:"required"`
	Filled    int32     `json:"filled"`
	Deficit   int32     `json:"deficit"`
}
