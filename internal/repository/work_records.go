package repository

import "github.com/canteen-dev/restaurant-roster/backend/internal/domain"

func (r *Repository) CreateWorkRecord(record *domain.WorkRecord) error {
	query := `
		INSERT INTO work_records (shift_id, employee_id, hours)
		VALUES ($1, $2, $3)
		RETURNING id, submitted_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{record.ShiftID, record.EmployeeID, record.Hours}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.SubmittedAt, &record.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWorkRecordsByEmployeeID(employeeID int64) ([]*domain.WorkRecord, error) {
	query := `
		SELECT id, shift_id, employee_id, hours, submitted_at, version
		FROM work_records
		WHERE employee_id = $1
		ORDER BY submitted_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.WorkRecord, 0)
	for rows.Next() {
		record := &domain.WorkRecord{}
		dst := []any{&record.ID, &record.ShiftID, &record.EmployeeID, &record.Hours, &record.SubmittedAt, &record.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
