package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	"github.com/canteen-dev/restaurant-roster/backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateAbsencePeriod(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		StartDate time.Time `json:"startDate" validate:"required"`
		EndDate   time.Time `json:"endDate" validate:"required"`
		Reason    string    `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	period := &domain.AbsencePeriod{
		EmployeeID: myInfo.ID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
		Status:     domain.PeriodStatusPending,
	}

	// 检查日期区间是否合法
	if err := utils.ValidatePeriod(period.StartDate, period.EndDate); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateAbsencePeriod(period); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交缺勤申请成功", period)
}

func (h *Handler) GetAbsencePeriods(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	// 管理员可以查看所有员工的申请，普通员工只能查看自己的申请
	var employeeID *int64
	if myInfo.PrimaryRole != domain.RoleAdmin {
		employeeID = &myInfo.ID
	}

	periods, err := h.repository.GetAbsencePeriods(employeeID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取缺勤申请列表成功", periods)
}

func (h *Handler) ReviewAbsencePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("无效的申请 id"))
		return
	}

	var req struct {
		Approve bool `json:"approve"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	period, err := h.repository.GetAbsencePeriodByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "缺勤申请不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if period.Status != domain.PeriodStatusPending {
		h.errorResponse(w, r, "该申请已被审批过")
		return
	}

	if req.Approve {
		period.Status = domain.PeriodStatusApproved
	} else {
		period.Status = domain.PeriodStatusRejected
	}

	if err := h.repository.UpdateAbsencePeriodStatus(period); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "审批失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "审批缺勤申请成功", period)
}

func (h *Handler) CreateLeavePeriod(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		StartDate time.Time `json:"startDate" validate:"required"`
		EndDate   time.Time `json:"endDate" validate:"required"`
		Reason    string    `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	period := &domain.LeavePeriod{
		EmployeeID: myInfo.ID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
		Status:     domain.PeriodStatusPending,
	}

	if err := utils.ValidatePeriod(period.StartDate, period.EndDate); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateLeavePeriod(period); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交请假申请成功", period)
}

func (h *Handler) GetLeavePeriods(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var employeeID *int64
	if myInfo.PrimaryRole != domain.RoleAdmin {
		employeeID = &myInfo.ID
	}

	periods, err := h.repository.GetLeavePeriods(employeeID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取请假申请列表成功", periods)
}

func (h *Handler) ReviewLeavePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("无效的申请 id"))
		return
	}

	var req struct {
		Approve bool `json:"approve"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	period, err := h.repository.GetLeavePeriodByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请假申请不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if period.Status != domain.PeriodStatusPending {
		h.errorResponse(w, r, "该申请已被审批过")
		return
	}

	if req.Approve {
		period.Status = domain.PeriodStatusApproved
	} else {
		period.Status = domain.PeriodStatusRejected
	}

	if err := h.repository.UpdateLeavePeriodStatus(period); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "审批失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "审批请假申请成功", period)
}
