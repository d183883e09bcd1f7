package repository

import "github.com/canteen-dev/restaurant-roster/backend/internal/domain"

func (r *Repository) CreateStaffingLimit(limit *domain.StaffingLimit) error {
	query := `
		INSERT INTO staffing_limits (day_of_week, shift_type, role, min_staff, max_staff)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{limit.DayOfWeek, limit.ShiftType, limit.Role, limit.MinStaff, limit.MaxStaff}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&limit.ID, &limit.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllStaffingLimits() ([]*domain.StaffingLimit, error) {
	query := `
		SELECT id, day_of_week, shift_type, role, min_staff, max_staff, version
		FROM staffing_limits
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	limits := make([]*domain.StaffingLimit, 0)
	for rows.Next() {
		limit := &domain.StaffingLimit{}
		dst := []any{&limit.ID, &limit.DayOfWeek, &limit.ShiftType, &limit.Role, &limit.MinStaff, &limit.MaxStaff, &limit.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		limits = append(limits, limit)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return limits, nil
}

func (r *Repository) GetStaffingLimitByID(id int64) (*domain.StaffingLimit, error) {
	query := `
		SELECT day_of_week, shift_type, role, min_staff, max_staff, version
		FROM staffing_limits WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	limit := &domain.StaffingLimit{
		ID: id,
	}

	dst := []any{&limit.DayOfWeek, &limit.ShiftType, &limit.Role, &limit.MinStaff, &limit.MaxStaff, &limit.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return limit, nil
}

func (r *Repository) UpdateStaffingLimit(limit *domain.StaffingLimit) error {
	query := `
		UPDATE staffing_limits
		SET min_staff = $1, max_staff = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, limit.MinStaff, limit.MaxStaff, limit.ID, limit.Version).Scan(&limit.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteStaffingLimit(id int64) error {
	query := `
		DELETE FROM staffing_limits WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateStartTimeTarget(target *domain.StartTimeTarget) error {
	query := `
		INSERT INTO start_time_targets (shift_type, role, start_time, target_count, priority, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{target.ShiftType, target.Role, target.StartTime, target.TargetCount, target.Priority, target.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&target.ID, &target.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllStartTimeTargets() ([]*domain.StartTimeTarget, error) {
	query := `
		SELECT id, shift_type, role, start_time, target_count, priority, is_active, version
		FROM start_time_targets
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := make([]*domain.StartTimeTarget, 0)
	for rows.Next() {
		target := &domain.StartTimeTarget{}
		dst := []any{&target.ID, &target.ShiftType, &target.Role, &target.StartTime, &target.TargetCount, &target.Priority, &target.IsActive, &target.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return targets, nil
}

func (r *Repository) GetStartTimeTargetByID(id int64) (*domain.StartTimeTarget, error) {
	query := `
		SELECT shift_type, role, start_time, target_count, priority, is_active, version
		FROM start_time_targets WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	target := &domain.StartTimeTarget{
		ID: id,
	}

	dst := []any{&target.ShiftType, &target.Role, &target.StartTime, &target.TargetCount, &target.Priority, &target.IsActive, &target.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return target, nil
}

func (r *Repository) UpdateStartTimeTarget(target *domain.StartTimeTarget) error {
	query := `
		UPDATE start_time_targets
		SET start_time = $1, target_count = $2, priority = $3, is_active = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{target.StartTime, target.TargetCount, target.Priority, target.IsActive, target.ID, target.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&target.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteStartTimeTarget(id int64) error {
	query := `
		DELETE FROM start_time_targets WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
