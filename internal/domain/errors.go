package domain

import "errors"

var (
	ErrInvalidWeekStart = errors.New("周起始日期必须是周一零点")
	ErrInvalidState     = errors.New("当前状态不允许此操作")
	ErrForbidden        = errors.New("没有权限执行此操作")
	ErrDeadlinePassed   = errors.New("已超过审批截止时间")
	ErrConflict         = errors.New("数据已被其他操作修改，请重试")
)
