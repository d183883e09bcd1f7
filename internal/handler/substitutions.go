package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) RequestSubstitution(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		ShiftID  int64     `json:"shiftID" validate:"required"`
		Deadline time.Time `json:"deadline" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !req.Deadline.After(time.Now()) {
		h.badRequest(w, r, errors.New("审批截止时间必须晚于当前时间"))
		return
	}

	shift, err := h.repository.GetShiftByID(req.ShiftID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "班次不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 只有班次持有者本人才能为其发起顶班请求
	if shift.EmployeeID != myInfo.ID {
		h.errorResponse(w, r, domain.ErrForbidden.Error())
		return
	}

	// 同一个班次同时只能存在一个未完成的顶班请求
	hasLive, err := h.repository.HasLiveSubstitutionRequest(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if hasLive {
		h.errorResponse(w, r, "该班次已存在未完成的顶班请求")
		return
	}

	request := &domain.SubstitutionRequest{
		ShiftID:     shift.ID,
		RequesterID: myInfo.ID,
		Status:      domain.SubstitutionStatusPending,
		Deadline:    req.Deadline,
	}

	if err := h.repository.CreateSubstitutionRequest(request); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "发起顶班请求成功", request)
}

func (h *Handler) GetMySubstitutionRequests(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	requests, err := h.repository.GetSubstitutionRequestsByRequesterID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取顶班请求列表成功", requests)
}

func (h *Handler) GetSubstitutionRequest(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(SubstitutionCtx).(*domain.SubstitutionRequest)
	h.successResponse(w, r, "获取顶班请求成功", request)
}

func (h *Handler) GetShiftSubstitutionRequests(w http.ResponseWriter, r *http.Request) {
	shiftID, err := strconv.ParseInt(chi.URLParam(r, "shiftID"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("无效的班次 id"))
		return
	}

	requests, err := h.repository.GetSubstitutionRequestsByShiftID(shiftID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次顶班请求列表成功", requests)
}

func (h *Handler) ApplySubstitution(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)
	request := r.Context().Value(SubstitutionCtx).(*domain.SubstitutionRequest)

	// 发起人不能报名顶自己的班
	if request.RequesterID == myInfo.ID {
		h.errorResponse(w, r, domain.ErrForbidden.Error())
		return
	}

	if err := request.CanApply(); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	request.SubstituteID = &myInfo.ID
	request.Status = domain.SubstitutionStatusApplied

	if err := h.repository.UpdateSubstitutionRequest(request); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.errorResponse(w, r, domain.ErrConflict.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "报名顶班成功", request)
}

func (h *Handler) ApproveSubstitution(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)
	request := r.Context().Value(SubstitutionCtx).(*domain.SubstitutionRequest)

	// 只有发起人或管理员才能批准
	if request.RequesterID != myInfo.ID && myInfo.PrimaryRole != domain.RoleAdmin {
		h.errorResponse(w, r, domain.ErrForbidden.Error())
		return
	}

	var req struct {
		ResponseNote string `json:"responseNote"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := request.CanApprove(time.Now()); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	substituteID := *request.SubstituteID

	if err := h.repository.ApproveSubstitution(request, req.ResponseNote); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.errorResponse(w, r, domain.ErrConflict.Error())
		case errors.Is(err, domain.ErrInvalidState):
			h.errorResponse(w, r, domain.ErrInvalidState.Error())
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "顶班请求不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 通知顶班者结果，通知失败不影响批准结果
	h.notifySubstitutionDecided(substituteID, request, "已批准")

	h.successResponse(w, r, "批准顶班成功", request)
}

func (h *Handler) RejectSubstitution(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)
	request := r.Context().Value(SubstitutionCtx).(*domain.SubstitutionRequest)

	if request.RequesterID != myInfo.ID && myInfo.PrimaryRole != domain.RoleAdmin {
		h.errorResponse(w, r, domain.ErrForbidden.Error())
		return
	}

	var req struct {
		ResponseNote string `json:"responseNote"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := request.CanReject(); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	var substituteID *int64
	if request.SubstituteID != nil {
		id := *request.SubstituteID
		substituteID = &id
	}

	request.Status = domain.SubstitutionStatusRejected
	request.ResponseNote = req.ResponseNote
	request.SubstituteID = nil

	if err := h.repository.UpdateSubstitutionRequest(request); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.errorResponse(w, r, domain.ErrConflict.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if substituteID != nil {
		h.notifySubstitutionDecided(*substituteID, request, "已驳回")
	}

	h.successResponse(w, r, "驳回顶班成功", request)
}

func (h *Handler) CancelSubstitution(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)
	request := r.Context().Value(SubstitutionCtx).(*domain.SubstitutionRequest)

	// 只有发起人才能取消自己的请求
	if request.RequesterID != myInfo.ID {
		h.errorResponse(w, r, domain.ErrForbidden.Error())
		return
	}

	if err := request.CanCancel(); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	request.Status = domain.SubstitutionStatusCancelled
	request.SubstituteID = nil

	if err := h.repository.UpdateSubstitutionRequest(request); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.errorResponse(w, r, domain.ErrConflict.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "取消顶班请求成功", request)
}

// notifySubstitutionDecided 把审批结果通知给顶班者
func (h *Handler) notifySubstitutionDecided(substituteID int64, request *domain.SubstitutionRequest, decision string) {
	substitute, err := h.repository.GetEmployeeByID(substituteID)
	if err != nil {
		return
	}

	shift, err := h.repository.GetShiftByID(request.ShiftID)
	if err != nil {
		return
	}

	weekStart, err := h.repository.GetWeekStartByScheduleID(shift.ScheduleID)
	if err != nil {
		return
	}

	h.publishNotification(domain.NotificationMessage{
		Type: "substitution_decided",
		To:   substitute.Email,
		Data: domain.SubstitutionDecidedNotificationData{
			FullName:     substitute.FullName,
			Decision:     decision,
			ResponseNote: request.ResponseNote,
			WeekStart:    weekStart.Format("2006-01-02"),
			Weekday:      domain.WeekdayName(shift.DayOfWeek),
			ShiftType:    string(shift.ShiftType),
		},
	})
}
