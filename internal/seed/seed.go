package seed

import (
	"log/slog"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	"github.com/canteen-dev/restaurant-roster/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type fixtureEmployee struct {
	Username         string
	FullName         string
	Email            string
	PrimaryRole      domain.Role
	SecondaryRole    *domain.Role
	MaxShiftsPerWeek int32
}

func rolePtr(r domain.Role) *domain.Role {
	return &r
}

// 一家中等规模餐厅的典型人员配置
var fixtureEmployees = []fixtureEmployee{
	{Username: "wangshifu", FullName: "王师傅", Email: "wangshifu@example.com", PrimaryRole: domain.RoleCook, MaxShiftsPerWeek: 10},
	{Username: "lishifu", FullName: "李师傅", Email: "lishifu@example.com", PrimaryRole: domain.RoleCook, MaxShiftsPerWeek: 10},
	{Username: "zhanghua", FullName: "张华", Email: "zhanghua@example.com", PrimaryRole: domain.RoleCook, SecondaryRole: rolePtr(domain.RoleDelivery), MaxShiftsPerWeek: 8},
	{Username: "chenqiang", FullName: "陈强", Email: "chenqiang@example.com", PrimaryRole: domain.RoleDelivery, MaxShiftsPerWeek: 12},
	{Username: "liuyang", FullName: "刘洋", Email: "liuyang@example.com", PrimaryRole: domain.RoleDelivery, SecondaryRole: rolePtr(domain.RoleCashier), MaxShiftsPerWeek: 10},
	{Username: "zhaomin", FullName: "赵敏", Email: "zhaomin@example.com", PrimaryRole: domain.RoleCashier, MaxShiftsPerWeek: 10},
	{Username: "sunli", FullName: "孙丽", Email: "sunli@example.com", PrimaryRole: domain.RoleCashier, SecondaryRole: rolePtr(domain.RoleDelivery), MaxShiftsPerWeek: 8},
}

// 工作日和周末的典型人数约束，周末客流更大
var fixtureStaffingLimits = func() []*domain.StaffingLimit {
	limits := make([]*domain.StaffingLimit, 0, 7*len(domain.ShiftTypes)*len(domain.SchedulableRoles))

	for day := int32(0); day < 7; day++ {
		weekend := day >= 5
		for _, shiftType := range domain.ShiftTypes {
			for _, role := range domain.SchedulableRoles {
				minStaff := int32(1)
				maxStaff := int32(2)
				if weekend || shiftType == domain.ShiftTypeDinner {
					maxStaff = 3
				}
				if weekend && role == domain.RoleCook {
					minStaff = 2
				}
				limits = append(limits, &domain.StaffingLimit{
					DayOfWeek: day,
					ShiftType: shiftType,
					Role:      role,
					MinStaff:  minStaff,
					MaxStaff:  maxStaff,
				})
			}
		}
	}

	return limits
}()

// 厨师需要提前备菜，配送员在高峰前到岗
var fixtureStartTimeTargets = []*domain.StartTimeTarget{
	{ShiftType: domain.ShiftTypeLunch, Role: domain.RoleCook, StartTime: "10:30:00", TargetCount: 1, Priority: 0, IsActive: true},
	{ShiftType: domain.ShiftTypeLunch, Role: domain.RoleDelivery, StartTime: "11:00:00", TargetCount: 1, Priority: 1, IsActive: true},
	{ShiftType: domain.ShiftTypeDinner, Role: domain.RoleCook, StartTime: "17:00:00", TargetCount: 1, Priority: 0, IsActive: true},
	{ShiftType: domain.ShiftTypeDinner, Role: domain.RoleDelivery, StartTime: "17:30:00", TargetCount: 2, Priority: 1, IsActive: true},
}

// SeedFixtureData 插入一套固定的演示数据，方便本地开发时直接生成排班表
func SeedFixtureData(r *repository.Repository, password string) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("无法生成密码哈希", "error", err)
		return
	}

	employeeCnt := 0
	for _, fe := range fixtureEmployees {
		employee := &domain.Employee{
			Username:         fe.Username,
			PasswordHash:     string(passwordHash),
			FullName:         fe.FullName,
			Email:            fe.Email,
			PrimaryRole:      fe.PrimaryRole,
			SecondaryRole:    fe.SecondaryRole,
			MaxShiftsPerWeek: fe.MaxShiftsPerWeek,
		}
		if err := r.CreateEmployee(employee); err != nil {
			slog.Error("无法插入员工", "username", fe.Username, "error", err)
			continue
		}
		employeeCnt++
	}
	slog.Info("插入员工成功", "count", employeeCnt)

	limitCnt := 0
	for _, limit := range fixtureStaffingLimits {
		if err := r.CreateStaffingLimit(limit); err != nil {
			slog.Error("无法插入人数约束", "error", err)
			continue
		}
		limitCnt++
	}
	slog.Info("插入人数约束成功", "count", limitCnt)

	targetCnt := 0
	for _, target := range fixtureStartTimeTargets {
		if err := r.CreateStartTimeTarget(target); err != nil {
			slog.Error("无法插入到岗时间目标", "error", err)
			continue
		}
		targetCnt++
	}
	slog.Info("插入到岗时间目标成功", "count", targetCnt)
}
