package domain

import "time"

type SubstitutionStatus string

const (
	SubstitutionStatusPending   SubstitutionStatus = "待顶班"
	SubstitutionStatusApplied   SubstitutionStatus = "已报名"
	SubstitutionStatusApproved  SubstitutionStatus = "已批准"
	SubstitutionStatusRejected  SubstitutionStatus = "已驳回"
	SubstitutionStatusCancelled SubstitutionStatus = "已取消"
)

type SubstitutionRequest struct {
	ID           int64              `json:"id"`
	ShiftID      int64              `json:"shiftID"`
	RequesterID  int64              `json:"requesterID"`
	SubstituteID *int64             `json:"substituteID"`
	Status       SubstitutionStatus `json:"status"`
	Deadline     time.Time          `json:"deadline"`
	ResponseNote string             `json:"responseNote"`
	CreatedAt    time.Time          `json:"createdAt"`
	Version      int32              `json:"-"`
}

// IsTerminal 已批准、已驳回和已取消是终态，不允许再发生任何状态转移
func (r *SubstitutionRequest) IsTerminal() bool {
	switch r.Status {
	case SubstitutionStatusApproved, SubstitutionStatusRejected, SubstitutionStatusCancelled:
		return true
	default:
		return false
	}
}

// CanApply 只有待顶班状态的请求才能报名
func (r *SubstitutionRequest) CanApply() error {
	if r.Status != SubstitutionStatusPending {
		return ErrInvalidState
	}
	return nil
}

// CanApprove 只有已报名且有顶班人的请求才能批准，且必须在截止时间之前
func (r *SubstitutionRequest) CanApprove(now time.Time) error {
	if r.Status != SubstitutionStatusApplied || r.SubstituteID == nil {
		return ErrInvalidState
	}
	if now.After(r.Deadline) {
		return ErrDeadlinePassed
	}
	return nil
}

// SubstitutionRow 是批准顶班时对同一班次全部请求行的快照。
type SubstitutionRow struct {
	ID      int64
	Status  SubstitutionStatus
	Version int32
}

// PlanApproval 根据同一班次全部请求行的快照，校验目标请求并给出
// 需要连带驳回的请求：同一个班次上只能有一条请求被批准，
// 其余待顶班和已报名的请求全部驳回，终态请求保持不变。
// 目标请求不在快照中时 found 为 false。
func PlanApproval(rows []SubstitutionRow, targetID int64, targetVersion int32) (rejectIDs []int64, found bool, err error) {
	for _, row := range rows {
		if row.ID == targetID {
			found = true
			if row.Version != targetVersion {
				return nil, true, ErrConflict
			}
			if row.Status != SubstitutionStatusApplied {
				return nil, true, ErrInvalidState
			}
			continue
		}
		if row.Status == SubstitutionStatusPending || row.Status == SubstitutionStatusApplied {
			rejectIDs = append(rejectIDs, row.ID)
		}
	}
	if !found {
		return nil, false, nil
	}
	return rejectIDs, true, nil
}

// CanReject 任何非终态的请求都可以被驳回
func (r *SubstitutionRequest) CanReject() error {
	if r.IsTerminal() {
		return ErrInvalidState
	}
	return nil
}

// CanCancel 待顶班和已报名的请求可以由发起人取消
func (r *SubstitutionRequest) CanCancel() error {
	if r.Status != SubstitutionStatusPending && r.Status != SubstitutionStatusApplied {
		return ErrInvalidState
	}
	return nil
}
