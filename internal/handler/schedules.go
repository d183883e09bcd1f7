package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	"github.com/canteen-dev/restaurant-roster/backend/internal/roster"
	"github.com/canteen-dev/restaurant-roster/backend/internal/utils"
)

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeekStart string `json:"weekStart" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	parsed, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		h.badRequest(w, r, errors.New("周起始日期格式错误，应为 YYYY-MM-DD"))
		return
	}
	weekStart := utils.NormalizeWeekStart(parsed)

	// 同一周的排班生成必须串行，防止并发生成互相覆盖
	h.weekLocker.Lock(weekStart)
	defer h.weekLocker.Unlock(weekStart)

	// 先采集本次排班所需的全部数据快照
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	entries, err := h.repository.GetAvailabilityEntriesByWeek(weekStart)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	absences, err := h.repository.GetApprovedAbsencePeriodsOverlappingWeek(weekStart)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	leaves, err := h.repository.GetApprovedLeavePeriodsOverlappingWeek(weekStart)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	limits, err := h.repository.GetAllStaffingLimits()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	targets, err := h.repository.GetAllStartTimeTargets()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 生成排班
	shifts, gaps, err := roster.Generate(&roster.Input{
		WeekStart: weekStart,
		Employees: employees,
		Entries:   entries,
		Absences:  absences,
		Leaves:    leaves,
		Limits:    limits,
		Targets:   targets,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidWeekStart):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 整周替换式写入，重新生成会覆盖旧的排班表
	schedule := &domain.Schedule{
		WeekStart: weekStart,
		Shifts:    shifts,
	}

	if err := h.repository.ReplaceSchedule(schedule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通知所有被排班的员工，通知失败不影响排班结果
	notified := make(map[int64]bool)
	for _, shift := range schedule.Shifts {
		if notified[shift.EmployeeID] {
			continue
		}
		notified[shift.EmployeeID] = true

		for _, employee := range employees {
			if employee.ID != shift.EmployeeID {
				continue
			}
			h.publishNotification(domain.NotificationMessage{
				Type: "schedule_published",
				To:   employee.Email,
				Data: domain.SchedulePublishedNotificationData{
					FullName:  employee.FullName,
					WeekStart: weekStart.Format("2006-01-02"),
					ShiftsNum: len(schedule.Shifts),
				},
			})
			break
		}
	}

	h.successResponse(w, r, "生成排班表成功", map[string]any{
		"scheduleID":      schedule.ID,
		"shiftsGenerated": len(schedule.Shifts),
		"gaps":            gaps,
	})
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	weekStart, err := weekStartFromURL(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := h.repository.GetScheduleByWeekStart(weekStart)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "该周还没有排班表", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取排班表成功", schedule)
}

func (h *Handler) GetScheduleCoverage(w http.ResponseWriter, r *http.Request) {
	weekStart, err := weekStartFromURL(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := h.repository.GetScheduleByWeekStart(weekStart)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "该周还没有排班表")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	limits, err := h.repository.GetAllStaffingLimits()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班覆盖率成功", roster.Coverage(schedule.Shifts, limits))
}
