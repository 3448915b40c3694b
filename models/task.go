package models

import (
	"errors"
	"time"

	"github.com/abhijan2402/tomarket-admin/lifecycle"

	"gorm.io/gorm"
)

// Task is a unit of rewarded work. Single tasks carry their own target link
// and reward; group tasks carry them on sub-tasks and cap participation at
// ParticipantLimit. Kind is decided at creation and never changes.
type Task struct {
	ID               uint                       `gorm:"primaryKey" json:"id"`
	Kind             lifecycle.TaskKind         `gorm:"type:enum('single','group');not null" json:"kind"`
	Title            string                     `gorm:"size:150" json:"title"`
	Description      string                     `gorm:"type:text" json:"description"`
	Reward           float64                    `gorm:"type:decimal(15,2);default:0" json:"reward"`
	Link             string                     `gorm:"size:500" json:"link"`
	Category         string                     `gorm:"size:100" json:"category"`
	Platform         string                     `gorm:"size:255" json:"platform"`
	RequiresProof    lifecycle.ProofRequirement `gorm:"type:enum('none','screenshot','link');default:'none'" json:"requires_proof"`
	ParticipantLimit int                        `gorm:"default:0" json:"participant_limit"`
	Status           lifecycle.TaskStatus       `gorm:"type:enum('pending','approved','rejected');default:'pending';index" json:"status"`
	CreatedBy        uint                       `gorm:"not null;index" json:"created_by"`
	SubTasks         []SubTask                  `gorm:"constraint:OnDelete:CASCADE" json:"sub_tasks,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// SubTask is one participation unit within a group task. Sub-tasks share the
// parent's status and are not independently approvable.
type SubTask struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TaskID      uint      `gorm:"not null;index" json:"task_id"`
	Position    int       `gorm:"default:0" json:"position"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Reward      float64   `gorm:"type:decimal(15,2);not null" json:"reward"`
	Link        string    `gorm:"size:500;not null" json:"link"`
	Category    string    `gorm:"size:100" json:"category"`
	Platform    string    `gorm:"size:255" json:"platform"`
	CreatedAt   time.Time `json:"-"`
}

// Proof is one user's attempt at a task. One row per user per task.
type Proof struct {
	ID        uint                  `gorm:"primaryKey" json:"id"`
	TaskID    uint                  `gorm:"not null;uniqueIndex:idx_task_user" json:"task_id"`
	UserID    uint                  `gorm:"not null;uniqueIndex:idx_task_user" json:"user_id"`
	Status    lifecycle.ProofStatus `gorm:"type:enum('started','submitted','approved','rejected','claimed');default:'started';index" json:"status"`
	ProofURL  *string               `gorm:"size:500" json:"proof_url,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
	CreatedAt time.Time             `json:"created_at"`
}

// ErrStale signals a conditional write that matched no row: the record either
// changed underneath the caller or no longer exists. The caller re-reads to
// tell which.
var ErrStale = errors.New("record changed since read")

// ApplyTaskTransition persists the new status only while the observed status
// still holds at write time, so two concurrent reviewers cannot silently
// overwrite each other.
func ApplyTaskTransition(db *gorm.DB, taskID uint, observed, target lifecycle.TaskStatus) error {
	res := db.Model(&Task{}).
		Where("id = ? AND status = ?", taskID, observed).
		Update("status", target)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}

// ApplyProofTransition is the proof-side conditional write. proofURL, when
// non-nil, is overwritten together with the status (re-submission path).
func ApplyProofTransition(db *gorm.DB, proofID uint, observed, target lifecycle.ProofStatus, proofURL *string) error {
	updates := map[string]interface{}{
		"status":    target,
		"timestamp": time.Now(),
	}
	if proofURL != nil {
		updates["proof_url"] = *proofURL
	}
	res := db.Model(&Proof{}).
		Where("id = ? AND status = ?", proofID, observed).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}

// CountActiveProofs counts the proofs occupying a participation slot on a
// task. Rejected proofs free their slot.
func CountActiveProofs(db *gorm.DB, taskID uint) (int64, error) {
	var n int64
	err := db.Model(&Proof{}).
		Where("task_id = ? AND status <> ?", taskID, lifecycle.ProofRejected).
		Count(&n).Error
	return n, err
}
