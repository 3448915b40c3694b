package admins

import (
	"errors"

	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/models"

	"gorm.io/gorm"
)

// reviewOutcome distinguishes a status actually written from an idempotent
// repeat of a decision already on the record.
type reviewOutcome int

const (
	reviewApplied reviewOutcome = iota
	reviewNoop
)

// taskStore is the slice of persistence the review cycle needs: a point read
// and the conditional status write.
type taskStore interface {
	Get(id uint) (models.Task, error)
	Apply(id uint, observed, target lifecycle.TaskStatus) error
}

type proofStore interface {
	Get(id uint) (models.Proof, error)
	Apply(id uint, observed, target lifecycle.ProofStatus) error
}

type gormTaskStore struct{ db *gorm.DB }

func (s gormTaskStore) Get(id uint) (models.Task, error) {
	var task models.Task
	err := s.db.First(&task, id).Error
	return task, err
}

func (s gormTaskStore) Apply(id uint, observed, target lifecycle.TaskStatus) error {
	return models.ApplyTaskTransition(s.db, id, observed, target)
}

type gormProofStore struct{ db *gorm.DB }

func (s gormProofStore) Get(id uint) (models.Proof, error) {
	var proof models.Proof
	err := s.db.First(&proof, id).Error
	return proof, err
}

func (s gormProofStore) Apply(id uint, observed, target lifecycle.ProofStatus) error {
	return models.ApplyProofTransition(s.db, id, observed, target, nil)
}

// resolveTaskReview runs the read-validate-write cycle with a conditional
// update. A write that matches no row means the record moved underneath us;
// the cycle re-reads and retries once before reporting a conflict. A re-read
// that already shows the target status is an idempotent no-op, not an error.
func resolveTaskReview(store taskStore, actor lifecycle.Actor, taskID uint, target lifecycle.TaskStatus) (models.Task, reviewOutcome, error) {
	for attempt := 0; attempt < 2; attempt++ {
		task, err := store.Get(taskID)
		if err != nil {
			return models.Task{}, reviewApplied, &lifecycle.NotFoundError{Entity: "task", ID: taskID}
		}
		if err := lifecycle.CanReviewTask(actor, task.CreatedBy); err != nil {
			return models.Task{}, reviewApplied, err
		}
		noop, err := lifecycle.ValidateTaskTransition(task.Status, target)
		if err != nil {
			return models.Task{}, reviewApplied, err
		}
		if noop {
			return task, reviewNoop, nil
		}

		err = store.Apply(task.ID, task.Status, target)
		if errors.Is(err, models.ErrStale) {
			continue
		}
		if err != nil {
			return models.Task{}, reviewApplied, err
		}
		task.Status = target
		return task, reviewApplied, nil
	}
	return models.Task{}, reviewApplied, &lifecycle.ConflictError{Reason: "task was changed by another reviewer, please reload"}
}

// resolveProofReview mirrors resolveTaskReview for submissions.
func resolveProofReview(store proofStore, actor lifecycle.Actor, proofID uint, target lifecycle.ProofStatus) (models.Proof, reviewOutcome, error) {
	for attempt := 0; attempt < 2; attempt++ {
		proof, err := store.Get(proofID)
		if err != nil {
			return models.Proof{}, reviewApplied, &lifecycle.NotFoundError{Entity: "proof", ID: proofID}
		}
		if err := lifecycle.CanReviewProof(actor, proof.UserID); err != nil {
			return models.Proof{}, reviewApplied, err
		}
		if proof.Status == target {
			return proof, reviewNoop, nil
		}
		if err := lifecycle.ValidateProofTransition(proof.Status, target); err != nil {
			return models.Proof{}, reviewApplied, err
		}

		err = store.Apply(proof.ID, proof.Status, target)
		if errors.Is(err, models.ErrStale) {
			continue
		}
		if err != nil {
			return models.Proof{}, reviewApplied, err
		}
		proof.Status = target
		return proof, reviewApplied, nil
	}
	return models.Proof{}, reviewApplied, &lifecycle.ConflictError{Reason: "submission was changed by another reviewer, please reload"}
}
