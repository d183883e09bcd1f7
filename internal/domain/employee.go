package domain

import (
	"time"
)

type Role string

const (
	RoleCook     Role = "厨师"
	RoleDelivery Role = "配送员"
	RoleCashier  Role = "收银员"
	RoleAdmin    Role = "管理员"
)

// SchedulableRoles 是排班引擎填充岗位的固定顺序，管理员不参与排班
var SchedulableRoles = []Role{RoleCook, RoleDelivery, RoleCashier}

type Employee struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	PrimaryRole      Role      `json:"primaryRole"`
	SecondaryRole    *Role     `json:"secondaryRole"`
	IsActive         bool      `json:"isActive"`
	MaxShiftsPerWeek int32     `json:"maxShiftsPerWeek"`
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`
}

// HasRole 判断员工的主岗位或副岗位是否匹配指定岗位
func (e *Employee) HasRole(role Role) bool {
	if e.PrimaryRole == role {
		return true
	}
	return e.SecondaryRole != nil && *e.SecondaryRole == role
}

// IsSchedulable 管理员和离职员工不进入候选池
func (e *Employee) IsSchedulable() bool {
	return e.IsActive && e.PrimaryRole != RoleAdmin
}
