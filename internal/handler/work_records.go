package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) SubmitWorkRecord(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		ShiftID int64   `json:"shiftID" validate:"required"`
		Hours   float64 `json:"hours" validate:"required,gt=0,lte=24"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
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

	// 只有班次当前的持有者才能提交工时
	if shift.EmployeeID != myInfo.ID {
		h.errorResponse(w, r, domain.ErrForbidden.Error())
		return
	}

	record := &domain.WorkRecord{
		ShiftID:    shift.ID,
		EmployeeID: myInfo.ID,
		Hours:      req.Hours,
	}

	if err := h.repository.CreateWorkRecord(record); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "work_records_shift_id_employee_id_key":
				h.errorResponse(w, r, "该班次的工时记录已提交过")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "提交工时记录成功", record)
}

func (h *Handler) GetMyWorkRecords(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	records, err := h.repository.GetWorkRecordsByEmployeeID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取工时记录成功", records)
}
