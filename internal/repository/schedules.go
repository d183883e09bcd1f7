package repository

import (
	"database/sql"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

// ReplaceSchedule 以整体替换的方式持久化一周的班表：
// 同一个事务内先删除这一周已有的班表（班次级联删除），再插入新的班表和班次，
// 避免出现外界能看到半张班表的中间状态
func (r *Repository) ReplaceSchedule(schedule *domain.Schedule) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM schedules WHERE week_start = $1`
	if _, err := tx.ExecContext(ctx, query, schedule.WeekStart); err != nil {
		return err
	}

	query = `
		INSERT INTO schedules (week_start)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	if err := tx.QueryRowContext(ctx, query, schedule.WeekStart).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.Version); err != nil {
		return err
	}

	for i := range schedule.Shifts {
		shift := &schedule.Shifts[i]
		shift.ScheduleID = schedule.ID

		query := `
			INSERT INTO shifts (schedule_id, day_of_week, shift_type, role, employee_id, start_time, end_time, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`

		args := []any{shift.ScheduleID, shift.DayOfWeek, shift.ShiftType, shift.Role, shift.EmployeeID, shift.StartTime, shift.EndTime, shift.Status}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetScheduleByWeekStart(weekStart time.Time) (*domain.Schedule, error) {
	query := `
		SELECT
			s.id,
			s.created_at,
			s.version,
			sh.id,
			sh.day_of_week,
			sh.shift_type,
			sh.role,
			sh.employee_id,
			sh.start_time,
			sh.end_time,
			sh.status
		FROM schedules s
		LEFT JOIN shifts sh ON s.id = sh.schedule_id
		WHERE s.week_start = $1
		ORDER BY sh.day_of_week, sh.shift_type, sh.role, sh.id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedule := &domain.Schedule{
		WeekStart: weekStart,
		Shifts:    make([]domain.Shift, 0),
	}

	for rows.Next() {
		var row struct {
			shiftID    sql.NullInt64
			dayOfWeek  sql.NullInt32
			shiftType  sql.NullString
			role       sql.NullString
			employeeID sql.NullInt64
			startTime  sql.NullString
			endTime    sql.NullString
			status     sql.NullString
		}

		dst := []any{
			&schedule.ID,
			&schedule.CreatedAt,
			&schedule.Version,
			&row.shiftID,
			&row.dayOfWeek,
			&row.shiftType,
			&row.role,
			&row.employeeID,
			&row.startTime,
			&row.endTime,
			&row.status,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !row.shiftID.Valid {
			// 班表存在但没有任何班次，说明当周所有槽位都没有候选人，属于正常情况
			continue
		}

		schedule.Shifts = append(schedule.Shifts, domain.Shift{
			ID:         row.shiftID.Int64,
			ScheduleID: schedule.ID,
			DayOfWeek:  row.dayOfWeek.Int32,
			ShiftType:  domain.ShiftType(row.shiftType.String),
			Role:       domain.Role(row.role.String),
			EmployeeID: row.employeeID.Int64,
			StartTime:  row.startTime.String,
			EndTime:    row.endTime.String,
			Status:     domain.ShiftStatus(row.status.String),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if schedule.ID == 0 {
		return nil, sql.ErrNoRows
	}

	return schedule, nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT schedule_id, day_of_week, shift_type, role, employee_id, start_time, end_time, status
		FROM shifts WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{&shift.ScheduleID, &shift.DayOfWeek, &shift.ShiftType, &shift.Role, &shift.EmployeeID, &shift.StartTime, &shift.EndTime, &shift.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) GetWeekStartByScheduleID(scheduleID int64) (time.Time, error) {
	query := `SELECT week_start FROM schedules WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	var weekStart time.Time
	if err := r.dbpool.QueryRowContext(ctx, query, scheduleID).Scan(&weekStart); err != nil {
		return time.Time{}, err
	}

	return weekStart, nil
}

func (r *Repository) GetShiftsByEmployeeAndWeek(employeeID int64, weekStart time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT sh.id, sh.schedule_id, sh.day_of_week, sh.shift_type, sh.role, sh.employee_id, sh.start_time, sh.end_time, sh.status
		FROM shifts sh
		JOIN schedules s ON s.id = sh.schedule_id
		WHERE sh.employee_id = $1 AND s.week_start = $2
		ORDER BY sh.day_of_week, sh.shift_type
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.ScheduleID, &shift.DayOfWeek, &shift.ShiftType, &shift.Role, &shift.EmployeeID, &shift.StartTime, &shift.EndTime, &shift.Status}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
