package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	"github.com/canteen-dev/restaurant-roster/backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) CreateStaffingLimit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DayOfWeek int32  `json:"dayOfWeek" validate:"min=0,max=6"`
		ShiftType string `json:"shiftType" validate:"required,oneof=午市 晚市"`
		Role      string `json:"role" validate:"required,oneof=厨师 配送员 收银员"`
		MinStaff  int32  `json:"minStaff" validate:"min=0"`
		MaxStaff  int32  `json:"maxStaff" validate:"min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	limit := &domain.StaffingLimit{
		DayOfWeek: req.DayOfWeek,
		ShiftType: domain.ShiftType(req.ShiftType),
		Role:      domain.Role(req.Role),
		MinStaff:  req.MinStaff,
		MaxStaff:  req.MaxStaff,
	}

	if err := utils.ValidateStaffingLimit(limit); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateStaffingLimit(limit); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "staffing_limits_day_of_week_shift_type_role_key":
				h.errorResponse(w, r, "该班次岗位的人数约束已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建人数约束成功", limit)
}

func (h *Handler) GetAllStaffingLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := h.repository.GetAllStaffingLimits()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取人数约束列表成功", limits)
}

func (h *Handler) UpdateStaffingLimit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("无效的约束 id"))
		return
	}

	var req struct {
		MinStaff *int32 `json:"minStaff" validate:"omitempty,min=0"`
		MaxStaff *int32 `json:"maxStaff" validate:"omitempty,min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	limit, err := h.repository.GetStaffingLimitByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "人数约束不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.MinStaff != nil {
		limit.MinStaff = *req.MinStaff
	}
	if req.MaxStaff != nil {
		limit.MaxStaff = *req.MaxStaff
	}

	if err := utils.ValidateStaffingLimit(limit); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateStaffingLimit(limit); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新人数约束失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新人数约束成功", limit)
}

func (h *Handler) DeleteStaffingLimit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("无效的约束 id"))
		return
	}

	if err := h.repository.DeleteStaffingLimit(id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除人数约束成功", nil)
}

func (h *Handler) CreateStartTimeTarget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShiftType   string `json:"shiftType" validate:"required,oneof=午市 晚市"`
		Role        string `json:"role" validate:"required,oneof=厨师 配送员 收银员"`
		StartTime   string `json:"startTime" validate:"required"`
		TargetCount int32  `json:"targetCount" validate:"required,min=1"`
		Priority    int32  `json:"priority" validate:"min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	target := &domain.StartTimeTarget{
		ShiftType:   domain.ShiftType(req.ShiftType),
		Role:        domain.Role(req.Role),
		StartTime:   req.StartTime,
		TargetCount: req.TargetCount,
		Priority:    req.Priority,
		IsActive:    true,
	}

	if err := utils.ValidateStartTimeTarget(target); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateStartTimeTarget(target); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建到岗时间目标成功", target)
}

func (h *Handler) GetAllStartTimeTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.repository.GetAllStartTimeTargets()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取到岗时间目标列表成功", targets)
}

func (h *Handler) UpdateStartTimeTarget(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("无效的目标 id"))
		return
	}

	var req struct {
		StartTime   *string `json:"startTime"`
		TargetCount *int32  `json:"targetCount" validate:"omitempty,min=1"`
		Priority    *int32  `json:"priority" validate:"omitempty,min=0"`
		IsActive    *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	target, err := h.repository.GetStartTimeTargetByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "到岗时间目标不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.StartTime != nil {
		target.StartTime = *req.StartTime
	}
	if req.TargetCount != nil {
		target.TargetCount = *req.TargetCount
	}
	if req.Priority != nil {
		target.Priority = *req.Priority
	}
	if req.IsActive != nil {
		target.IsActive = *req.IsActive
	}

	if err := utils.ValidateStartTimeTarget(target); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateStartTimeTarget(target); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新到岗时间目标失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新到岗时间目标成功", target)
}

func (h *Handler) DeleteStartTimeTarget(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("无效的目标 id"))
		return
	}

	if err := h.repository.DeleteStartTimeTarget(id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除到岗时间目标成功", nil)
}
