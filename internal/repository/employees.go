package repository

import (
	"database/sql"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT username, password_hash, full_name, email, primary_role, secondary_role, is_active, max_shifts_per_week, created_at, version
		FROM employees WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	employee := &domain.Employee{
		ID: id,
	}

	var secondaryRole sql.NullString
	dst := []any{&employee.Username, &employee.PasswordHash, &employee.FullName, &employee.Email, &employee.PrimaryRole, &secondaryRole, &employee.IsActive, &employee.MaxShiftsPerWeek, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if secondaryRole.Valid {
		role := domain.Role(secondaryRole.String)
		employee.SecondaryRole = &role
	}

	return employee, nil
}

func (r *Repository) GetEmployeeByUsername(username string) (*domain.Employee, error) {
	query := `
		SELECT id, password_hash, full_name, email, primary_role, secondary_role, is_active, max_shifts_per_week, created_at, version
		FROM employees WHERE username = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	employee := &domain.Employee{
		Username: username,
	}

	var secondaryRole sql.NullString
	dst := []any{&employee.ID, &employee.PasswordHash, &employee.FullName, &employee.Email, &employee.PrimaryRole, &secondaryRole, &employee.IsActive, &employee.MaxShiftsPerWeek, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	if secondaryRole.Valid {
		role := domain.Role(secondaryRole.String)
		employee.SecondaryRole = &role
	}

	return employee, nil
}

func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET
		    password_hash = $1,
			email = $2,
			primary_role = $3,
			secondary_role = $4,
			is_active = $5,
			max_shifts_per_week = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING username, full_name, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var secondaryRole any = nil
	if employee.SecondaryRole != nil {
		secondaryRole = string(*employee.SecondaryRole)
	}

	args := []any{employee.PasswordHash, employee.Email, employee.PrimaryRole, secondaryRole, employee.IsActive, employee.MaxShiftsPerWeek, employee.ID, employee.Version}
	dst := []any{&employee.Username, &employee.FullName, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, primary_role, secondary_role, is_active, max_shifts_per_week, created_at, version FROM employees
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		var secondaryRole sql.NullString
		dst := []any{&employee.ID, &employee.Username, &employee.PasswordHash, &employee.FullName, &employee.Email, &employee.PrimaryRole, &secondaryRole, &employee.IsActive, &employee.MaxShiftsPerWeek, &employee.CreatedAt, &employee.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if secondaryRole.Valid {
			role := domain.Role(secondaryRole.String)
			employee.SecondaryRole = &role
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) DeleteEmployee(id int64) error {
	query := `
		DELETE FROM employees WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO employees (username, password_hash, full_name, email, primary_role, secondary_role, max_shifts_per_week)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at, version
	`

	var secondaryRole any = nil
	if employee.SecondaryRole != nil {
		secondaryRole = string(*employee.SecondaryRole)
	}

	args := []any{employee.Username, employee.PasswordHash, employee.FullName, employee.Email, employee.PrimaryRole, secondaryRole, employee.MaxShiftsPerWeek}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.ID, &employee.IsActive, &employee.CreatedAt, &employee.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
