package repository

import (
	"database/sql"
	"errors"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
)

func (r *Repository) CreateSubstitutionRequest(request *domain.SubstitutionRequest) error {
	query := `
		INSERT INTO substitution_requests (shift_id, requester_id, status, deadline)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{request.ShiftID, request.RequesterID, request.Status, request.Deadline}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.ID, &request.CreatedAt, &request.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSubstitutionRequestByID(id int64) (*domain.SubstitutionRequest, error) {
	query := `
		SELECT shift_id, requester_id, substitute_id, status, deadline, response_note, created_at, version
		FROM substitution_requests WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	request := &domain.SubstitutionRequest{
		ID: id,
	}

	var substituteID sql.NullInt64
	dst := []any{&request.ShiftID, &request.RequesterID, &substituteID, &request.Status, &request.Deadline, &request.ResponseNote, &request.CreatedAt, &request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if substituteID.Valid {
		request.SubstituteID = &substituteID.Int64
	}

	return request, nil
}

func (r *Repository) GetSubstitutionRequestsByShiftID(shiftID int64) ([]*domain.SubstitutionRequest, error) {
	query := `
		SELECT id, shift_id, requester_id, substitute_id, status, deadline, response_note, created_at, version
		FROM substitution_requests
		WHERE shift_id = $1
		ORDER BY created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSubstitutionRequests(rows)
}

func (r *Repository) GetSubstitutionRequestsByRequesterID(requesterID int64) ([]*domain.SubstitutionRequest, error) {
	query := `
		SELECT id, shift_id, requester_id, substitute_id, status, deadline, response_note, created_at, version
		FROM substitution_requests
		WHERE requester_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSubstitutionRequests(rows)
}

func scanSubstitutionRequests(rows *sql.Rows) ([]*domain.SubstitutionRequest, error) {
	requests := make([]*domain.SubstitutionRequest, 0)
	for rows.Next() {
		request := &domain.SubstitutionRequest{}
		var substituteID sql.NullInt64
		dst := []any{&request.ID, &request.ShiftID, &request.RequesterID, &substituteID, &request.Status, &request.Deadline, &request.ResponseNote, &request.CreatedAt, &request.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if substituteID.Valid {
			request.SubstituteID = &substituteID.Int64
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// HasLiveSubstitutionRequest 判断班次上是否已经存在处于非终态的顶班请求，
// 状态机保证每个班次同时最多只有一个
func (r *Repository) HasLiveSubstitutionRequest(shiftID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM substitution_requests
			WHERE shift_id = $1 AND status IN ($2, $3)
		)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	exists := false
	args := []any{shiftID, domain.SubstitutionStatusPending, domain.SubstitutionStatusApplied}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// UpdateSubstitutionRequest 更新请求的状态、顶班人和备注，
// 版本不匹配说明请求被并发修改过，返回 ErrConflict 让调用方重试
func (r *Repository) UpdateSubstitutionRequest(request *domain.SubstitutionRequest) error {
	query := `
		UPDATE substitution_requests
		SET status = $1, substitute_id = $2, response_note = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var substituteID any = nil
	if request.SubstituteID != nil {
		substituteID = *request.SubstituteID
	}

	args := []any{request.Status, substituteID, request.ResponseNote, request.ID, request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrConflict
		}
		return err
	}

	return nil
}

// ApproveSubstitution 批准顶班，以下动作必须在同一个事务中完成：
//  1. 把班次转给顶班人并标记为已顶班
//  2. 把这条请求标记为已批准
//  3. 把同一班次上其他非终态请求全部驳回
//  4. 作废原员工对这个班次提交的工时记录
//
// 先用 FOR UPDATE 锁住这个班次的全部请求行，
// 消除「检查状态」和「批准」之间的竞态
func (r *Repository) ApproveSubstitution(request *domain.SubstitutionRequest, note string) error {
	if request.SubstituteID == nil {
		return domain.ErrInvalidState
	}

	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 锁定同一班次的所有请求行
	query := `
		SELECT id, status, version FROM substitution_requests
		WHERE shift_id = $1
		FOR UPDATE
	`

	rows, err := tx.QueryContext(ctx, query, request.ShiftID)
	if err != nil {
		return err
	}

	locked := make([]domain.SubstitutionRow, 0)
	for rows.Next() {
		var row domain.SubstitutionRow
		if err := rows.Scan(&row.ID, &row.Status, &row.Version); err != nil {
			rows.Close()
			return err
		}
		locked = append(locked, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	// 加锁后重新校验目标请求，并确定需要连带驳回的请求
	rejectIDs, found, err := domain.PlanApproval(locked, request.ID, request.Version)
	if err != nil {
		return err
	}
	if !found {
		return sql.ErrNoRows
	}

	// 1. 班次转给顶班人
	query = `
		UPDATE shifts
		SET employee_id = $1, status = $2
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, query, *request.SubstituteID, domain.ShiftStatusSubstituted, request.ShiftID); err != nil {
		return err
	}

	// 2. 批准这条请求
	query = `
		UPDATE substitution_requests
		SET status = $1, response_note = $2, version = version + 1
		WHERE id = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, domain.SubstitutionStatusApproved, note, request.ID).Scan(&request.Version); err != nil {
		return err
	}
	request.Status = domain.SubstitutionStatusApproved
	request.ResponseNote = note

	// 3. 驳回同一班次上其他非终态的请求
	query = `
		UPDATE substitution_requests
		SET status = $1, response_note = $2, substitute_id = NULL, version = version + 1
		WHERE id = $3
	`
	for _, id := range rejectIDs {
		args := []any{domain.SubstitutionStatusRejected, "该班次已由其他请求完成顶班", id}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	// 4. 作废原员工对这个班次的工时记录
	query = `
		DELETE FROM work_records WHERE shift_id = $1 AND employee_id = $2
	`
	if _, err := tx.ExecContext(ctx, query, request.ShiftID, request.RequesterID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
