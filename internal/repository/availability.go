package repository

import (
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

// UpsertAvailabilityEntries 覆盖式写入员工一周的空闲时间，
// 每个 (员工, 周, 天, 班段) 只保留一条记录
func (r *Repository) UpsertAvailabilityEntries(entries []*domain.AvailabilityEntry) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO availability_entries (employee_id, week_start, day_of_week, shift_type, is_available)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, week_start, day_of_week, shift_type)
		DO UPDATE SET is_available = EXCLUDED.is_available, version = availability_entries.version + 1
		RETURNING id, created_at, version
	`

	for _, entry := range entries {
		args := []any{entry.EmployeeID, entry.WeekStart, entry.DayOfWeek, entry.ShiftType, entry.IsAvailable}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt, &entry.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAvailabilityEntriesByWeek(weekStart time.Time) ([]*domain.AvailabilityEntry, error) {
	query := `
		SELECT id, employee_id, week_start, day_of_week, shift_type, is_available, created_at, version
		FROM availability_entries
		WHERE week_start = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.AvailabilityEntry, 0)
	for rows.Next() {
		entry := &domain.AvailabilityEntry{}
		dst := []any{&entry.ID, &entry.EmployeeID, &entry.WeekStart, &entry.DayOfWeek, &entry.ShiftType, &entry.IsAvailable, &entry.CreatedAt, &entry.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repository) GetAvailabilityEntriesByEmployeeAndWeek(employeeID int64, weekStart time.Time) ([]*domain.AvailabilityEntry, error) {
	query := `
		SELECT id, employee_id, week_start, day_of_week, shift_type, is_available, created_at, version
		FROM availability_entries
		WHERE employee_id = $1 AND week_start = $2
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.AvailabilityEntry, 0)
	for rows.Next() {
		entry := &domain.AvailabilityEntry{}
		dst := []any{&entry.ID, &entry.EmployeeID, &entry.WeekStart, &entry.DayOfWeek, &entry.ShiftType, &entry.IsAvailable, &entry.CreatedAt, &entry.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
