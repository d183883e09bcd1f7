package repository

import (
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

func (r *Repository) CreateAbsencePeriod(period *domain.AbsencePeriod) error {
	query := `
		INSERT INTO absence_periods (employee_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{period.EmployeeID, period.StartDate, period.EndDate, period.Reason, period.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&period.ID, &period.CreatedAt, &period.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAbsencePeriodByID(id int64) (*domain.AbsencePeriod, error) {
	query := `
		SELECT employee_id, start_date, end_date, reason, status, created_at, version
		FROM absence_periods WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	period := &domain.AbsencePeriod{
		ID: id,
	}

	dst := []any{&period.EmployeeID, &period.StartDate, &period.EndDate, &period.Reason, &period.Status, &period.CreatedAt, &period.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return period, nil
}

func (r *Repository) GetAbsencePeriods(employeeID *int64) ([]*domain.AbsencePeriod, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, reason, status, created_at, version
		FROM absence_periods
		WHERE $1::bigint IS NULL OR employee_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]*domain.AbsencePeriod, 0)
	for rows.Next() {
		period := &domain.AbsencePeriod{}
		dst := []any{&period.ID, &period.EmployeeID, &period.StartDate, &period.EndDate, &period.Reason, &period.Status, &period.CreatedAt, &period.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

// GetApprovedAbsencePeriodsOverlappingWeek 获取和指定周有重叠的已批准缺勤，
// 重叠判断两端都包含
func (r *Repository) GetApprovedAbsencePeriodsOverlappingWeek(weekStart time.Time) ([]*domain.AbsencePeriod, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, reason, status, created_at, version
		FROM absence_periods
		WHERE status = $1 AND start_date <= $2 AND end_date >= $3
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	weekEnd := weekStart.AddDate(0, 0, 6)

	rows, err := r.dbpool.QueryContext(ctx, query, domain.PeriodStatusApproved, weekEnd, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]*domain.AbsencePeriod, 0)
	for rows.Next() {
		period := &domain.AbsencePeriod{}
		dst := []any{&period.ID, &period.EmployeeID, &period.StartDate, &period.EndDate, &period.Reason, &period.Status, &period.CreatedAt, &period.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

func (r *Repository) UpdateAbsencePeriodStatus(period *domain.AbsencePeriod) error {
	query := `
		UPDATE absence_periods
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, period.Status, period.ID, period.Version).Scan(&period.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateLeavePeriod(period *domain.LeavePeriod) error {
	query := `
		INSERT INTO leave_periods (employee_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{period.EmployeeID, period.StartDate, period.EndDate, period.Reason, period.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&period.ID, &period.CreatedAt, &period.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetLeavePeriodByID(id int64) (*domain.LeavePeriod, error) {
	query := `
		SELECT employee_id, start_date, end_date, reason, status, created_at, version
		FROM leave_periods WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	period := &domain.LeavePeriod{
		ID: id,
	}

	dst := []any{&period.EmployeeID, &period.StartDate, &period.EndDate, &period.Reason, &period.Status, &period.CreatedAt, &period.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return period, nil
}

func (r *Repository) GetLeavePeriods(employeeID *int64) ([]*domain.LeavePeriod, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, reason, status, created_at, version
		FROM leave_periods
		WHERE $1::bigint IS NULL OR employee_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]*domain.LeavePeriod, 0)
	for rows.Next() {
		period := &domain.LeavePeriod{}
		dst := []any{&period.ID, &period.EmployeeID, &period.StartDate, &period.EndDate, &period.Reason, &period.Status, &period.CreatedAt, &period.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

func (r *Repository) GetApprovedLeavePeriodsOverlappingWeek(weekStart time.Time) ([]*domain.LeavePeriod, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, reason, status, created_at, version
		FROM leave_periods
		WHERE status = $1 AND start_date <= $2 AND end_date >= $3
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	weekEnd := weekStart.AddDate(0, 0, 6)

	rows, err := r.dbpool.QueryContext(ctx, query, domain.PeriodStatusApproved, weekEnd, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]*domain.LeavePeriod, 0)
	for rows.Next() {
		period := &domain.LeavePeriod{}
		dst := []any{&period.ID, &period.EmployeeID, &period.StartDate, &period.EndDate, &period.Reason, &period.Status, &period.CreatedAt, &period.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

func (r *Repository) UpdateLeavePeriodStatus(period *domain.LeavePeriod) error {
	query := `
		UPDATE leave_periods
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, period.Status, period.ID, period.Version).Scan(&period.Version); err != nil {
		return err
	}

	return nil
}
