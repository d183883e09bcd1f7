package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	"github.com/canteen-dev/restaurant-roster/backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// weekStartFromURL 解析 URL 中的周起始日期参数，并将其规整到所在周的周一零点
func weekStartFromURL(r *http.Request) (time.Time, error) {
	param := chi.URLParam(r, "weekStart")

	t, err := time.Parse("2006-01-02", param)
	if err != nil {
		return time.Time{}, errors.New("周起始日期格式错误，应为 YYYY-MM-DD")
	}

	return utils.NormalizeWeekStart(t), nil
}

func (h *Handler) SubmitMyAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	weekStart, err := weekStartFromURL(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 排班表生成后不允许再修改该周的空闲时间
	if _, err := h.repository.GetScheduleByWeekStart(weekStart); err == nil {
		h.errorResponse(w, r, "该周的排班表已生成，无法再修改空闲时间")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}

	var req []struct {
		DayOfWeek   int32  `json:"dayOfWeek" validate:"min=0,max=6"`
		ShiftType   string `json:"shiftType" validate:"required,oneof=午市 晚市"`
		IsAvailable bool   `json:"isAvailable"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Var(req, "required,dive"); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries := make([]*domain.AvailabilityEntry, len(req))
	for i, item := range req {
		entries[i] = &domain.AvailabilityEntry{
			EmployeeID:  myInfo.ID,
			WeekStart:   weekStart,
			DayOfWeek:   item.DayOfWeek,
			ShiftType:   domain.ShiftType(item.ShiftType),
			IsAvailable: item.IsAvailable,
		}
	}

	if err := h.repository.UpsertAvailabilityEntries(entries); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "成功提交空闲时间", entries)
}

func (h *Handler) GetMyAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	weekStart, err := weekStartFromURL(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries, err := h.repository.GetAvailabilityEntriesByEmployeeAndWeek(myInfo.ID, weekStart)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if len(entries) == 0 {
		h.successResponse(w, r, "你还没有提交过该周的空闲时间", entries)
		return
	}

	h.successResponse(w, r, "获取空闲时间成功", entries)
}
