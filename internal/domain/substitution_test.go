package domain

import (
	"errors"
	"testing"
	"time"
)

func newRequest(status SubstitutionStatus) *SubstitutionRequest {
	request := &SubstitutionRequest{
		ID:          1,
		ShiftID:     1,
		RequesterID: 1,
		Status:      status,
		Deadline:    time.Now().Add(24 * time.Hour),
	}
	if status == SubstitutionStatusApplied {
		substituteID := int64(2)
		request.SubstituteID = &substituteID
	}
	return request
}

// ── 状态转移守卫测试 ──

func TestSubstitutionRequest_IsTerminal(t *testing.T) {
	cases := []struct {
		status   SubstitutionStatus
		terminal bool
	}{
		{SubstitutionStatusPending, false},
		{SubstitutionStatusApplied, false},
		{SubstitutionStatusApproved, true},
		{SubstitutionStatusRejected, true},
		{SubstitutionStatusCancelled, true},
	}

	for _, c := range cases {
		if got := newRequest(c.status).IsTerminal(); got != c.terminal {
			t.Errorf("状态 %s 的终态判断错误: 期望=%v 实际=%v", c.status, c.terminal, got)
		}
	}
}

func TestSubstitutionRequest_CanApply(t *testing.T) {
	if err := newRequest(SubstitutionStatusPending).CanApply(); err != nil {
		t.Errorf("待顶班状态应允许报名: %v", err)
	}

	for _, status := range []SubstitutionStatus{SubstitutionStatusApplied, SubstitutionStatusApproved, SubstitutionStatusRejected, SubstitutionStatusCancelled} {
		if err := newRequest(status).CanApply(); !errors.Is(err, ErrInvalidState) {
			t.Errorf("状态 %s 不应允许报名，期望 ErrInvalidState，实际: %v", status, err)
		}
	}
}

func TestSubstitutionRequest_CanApprove(t *testing.T) {
	now := time.Now()

	if err := newRequest(SubstitutionStatusApplied).CanApprove(now); err != nil {
		t.Errorf("已报名状态应允许批准: %v", err)
	}

	for _, status := range []SubstitutionStatus{SubstitutionStatusPending, SubstitutionStatusApproved, SubstitutionStatusRejected, SubstitutionStatusCancelled} {
		if err := newRequest(status).CanApprove(now); !errors.Is(err, ErrInvalidState) {
			t.Errorf("状态 %s 不应允许批准，期望 ErrInvalidState，实际: %v", status, err)
		}
	}
}

func TestSubstitutionRequest_CanApprove_NilSubstitute(t *testing.T) {
	request := newRequest(SubstitutionStatusApplied)
	request.SubstituteID = nil

	if err := request.CanApprove(time.Now()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("没有顶班人的请求不应允许批准，期望 ErrInvalidState，实际: %v", err)
	}
}

func TestSubstitutionRequest_CanApprove_DeadlinePassed(t *testing.T) {
	request := newRequest(SubstitutionStatusApplied)
	request.Deadline = time.Now().Add(-time.Hour)

	if err := request.CanApprove(time.Now()); !errors.Is(err, ErrDeadlinePassed) {
		t.Errorf("超过截止时间应返回 ErrDeadlinePassed，实际: %v", err)
	}
}

func TestSubstitutionRequest_CanReject(t *testing.T) {
	for _, status := range []SubstitutionStatus{SubstitutionStatusPending, SubstitutionStatusApplied} {
		if err := newRequest(status).CanReject(); err != nil {
			t.Errorf("状态 %s 应允许驳回: %v", status, err)
		}
	}

	for _, status := range []SubstitutionStatus{SubstitutionStatusApproved, SubstitutionStatusRejected, SubstitutionStatusCancelled} {
		if err := newRequest(status).CanReject(); !errors.Is(err, ErrInvalidState) {
			t.Errorf("终态 %s 不应允许驳回，期望 ErrInvalidState，实际: %v", status, err)
		}
	}
}

func TestSubstitutionRequest_CanCancel(t *testing.T) {
	for _, status := range []SubstitutionStatus{SubstitutionStatusPending, SubstitutionStatusApplied} {
		if err := newRequest(status).CanCancel(); err != nil {
			t.Errorf("状态 %s 应允许取消: %v", status, err)
		}
	}

	for _, status := range []SubstitutionStatus{SubstitutionStatusApproved, SubstitutionStatusRejected, SubstitutionStatusCancelled} {
		if err := newRequest(status).CanCancel(); !errors.Is(err, ErrInvalidState) {
			t.Errorf("终态 %s 不应允许取消，期望 ErrInvalidState，实际: %v", status, err)
		}
	}
}

// ── 批准顶班的互斥测试 ──

func TestPlanApproval_RejectsLiveSiblings(t *testing.T) {
	rows := []SubstitutionRow{
		{ID: 1, Status: SubstitutionStatusApplied, Version: 3},
		{ID: 2, Status: SubstitutionStatusPending, Version: 1},
		{ID: 3, Status: SubstitutionStatusApplied, Version: 2},
	}

	rejectIDs, found, err := PlanApproval(rows, 1, 3)
	if err != nil {
		t.Fatalf("批准不应失败: %v", err)
	}
	if !found {
		t.Fatal("目标请求应在快照中")
	}
	if len(rejectIDs) != 2 || rejectIDs[0] != 2 || rejectIDs[1] != 3 {
		t.Errorf("同一班次的待顶班和已报名请求都应被驳回，实际: %v", rejectIDs)
	}
}

func TestPlanApproval_KeepsTerminalSiblings(t *testing.T) {
	rows := []SubstitutionRow{
		{ID: 1, Status: SubstitutionStatusApplied, Version: 1},
		{ID: 2, Status: SubstitutionStatusRejected, Version: 2},
		{ID: 3, Status: SubstitutionStatusCancelled, Version: 1},
	}

	rejectIDs, _, err := PlanApproval(rows, 1, 1)
	if err != nil {
		t.Fatalf("批准不应失败: %v", err)
	}
	if len(rejectIDs) != 0 {
		t.Errorf("终态请求不应被连带驳回，实际: %v", rejectIDs)
	}
}

func TestPlanApproval_VersionConflict(t *testing.T) {
	rows := []SubstitutionRow{
		{ID: 1, Status: SubstitutionStatusApplied, Version: 2},
		{ID: 2, Status: SubstitutionStatusPending, Version: 1},
	}

	if _, _, err := PlanApproval(rows, 1, 1); !errors.Is(err, ErrConflict) {
		t.Errorf("版本不一致应返回 ErrConflict，实际: %v", err)
	}
}

func TestPlanApproval_TargetNotApplied(t *testing.T) {
	for _, status := range []SubstitutionStatus{SubstitutionStatusPending, SubstitutionStatusApproved, SubstitutionStatusRejected, SubstitutionStatusCancelled} {
		rows := []SubstitutionRow{{ID: 1, Status: status, Version: 1}}
		if _, _, err := PlanApproval(rows, 1, 1); !errors.Is(err, ErrInvalidState) {
			t.Errorf("状态 %s 的目标请求不应允许批准，期望 ErrInvalidState，实际: %v", status, err)
		}
	}
}

func TestPlanApproval_TargetMissing(t *testing.T) {
	rows := []SubstitutionRow{{ID: 2, Status: SubstitutionStatusPending, Version: 1}}

	rejectIDs, found, err := PlanApproval(rows, 1, 1)
	if err != nil {
		t.Fatalf("目标缺失不应返回错误: %v", err)
	}
	if found {
		t.Error("目标请求不在快照中时 found 应为 false")
	}
	if rejectIDs != nil {
		t.Errorf("目标缺失时不应驳回任何请求，实际: %v", rejectIDs)
	}
}
