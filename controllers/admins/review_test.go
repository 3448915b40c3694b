package admins

import (
	"errors"
	"testing"

	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/models"

	"github.com/stretchr/testify/require"
)

// fakeTaskStore replays a scripted sequence of reads and write results so the
// retry cycle can be driven through stale-write interleavings.
type fakeTaskStore struct {
	reads     []models.Task
	applyErrs []error
	readIdx   int
	applies   int
}

func (f *fakeTaskStore) Get(id uint) (models.Task, error) {
	task := f.reads[f.readIdx]
	if f.readIdx < len(f.reads)-1 {
		f.readIdx++
	}
	return task, nil
}

func (f *fakeTaskStore) Apply(id uint, observed, target lifecycle.TaskStatus) error {
	err := f.applyErrs[f.applies]
	f.applies++
	return err
}

type fakeProofStore struct {
	reads     []models.Proof
	applyErrs []error
	readIdx   int
	applies   int
}

func (f *fakeProofStore) Get(id uint) (models.Proof, error) {
	proof := f.reads[f.readIdx]
	if f.readIdx < len(f.reads)-1 {
		f.readIdx++
	}
	return proof, nil
}

func (f *fakeProofStore) Apply(id uint, observed, target lifecycle.ProofStatus) error {
	err := f.applyErrs[f.applies]
	f.applies++
	return err
}

var reviewer = lifecycle.Actor{ID: 2, Role: lifecycle.RoleAdmin}

func pendingTask() models.Task {
	return models.Task{ID: 10, Status: lifecycle.TaskPending, CreatedBy: 1}
}

func TestTaskReview_RetriesOnceAfterStaleWrite(t *testing.T) {
	store := &fakeTaskStore{
		reads:     []models.Task{pendingTask(), pendingTask()},
		applyErrs: []error{models.ErrStale, nil},
	}

	task, outcome, err := resolveTaskReview(store, reviewer, 10, lifecycle.TaskApproved)
	require.NoError(t, err)
	require.Equal(t, reviewApplied, outcome)
	require.Equal(t, lifecycle.TaskApproved, task.Status)
	require.Equal(t, 2, store.applies)
}

func TestTaskReview_StaleThenAlreadyTargetIsNoop(t *testing.T) {
	// another reviewer won the race and wrote the same decision
	approved := pendingTask()
	approved.Status = lifecycle.TaskApproved
	store := &fakeTaskStore{
		reads:     []models.Task{pendingTask(), approved},
		applyErrs: []error{models.ErrStale},
	}

	task, outcome, err := resolveTaskReview(store, reviewer, 10, lifecycle.TaskApproved)
	require.NoError(t, err)
	require.Equal(t, reviewNoop, outcome)
	require.Equal(t, lifecycle.TaskApproved, task.Status)
	require.Equal(t, 1, store.applies)
}

func TestTaskReview_ConflictAfterSecondStaleWrite(t *testing.T) {
	store := &fakeTaskStore{
		reads:     []models.Task{pendingTask(), pendingTask()},
		applyErrs: []error{models.ErrStale, models.ErrStale},
	}

	_, _, err := resolveTaskReview(store, reviewer, 10, lifecycle.TaskApproved)
	var cerr *lifecycle.ConflictError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, 2, store.applies)
}

func TestTaskReview_AuthorCannotReviewOwnTask(t *testing.T) {
	store := &fakeTaskStore{reads: []models.Task{pendingTask()}}
	author := lifecycle.Actor{ID: 1, Role: lifecycle.RoleAdmin}

	_, _, err := resolveTaskReview(store, author, 10, lifecycle.TaskApproved)
	var aerr *lifecycle.AuthorizationError
	require.True(t, errors.As(err, &aerr))
	require.Equal(t, 0, store.applies)
}

func submittedProof() models.Proof {
	return models.Proof{ID: 7, TaskID: 10, UserID: 5, Status: lifecycle.ProofSubmitted}
}

func TestProofReview_RetriesOnceAfterStaleWrite(t *testing.T) {
	store := &fakeProofStore{
		reads:     []models.Proof{submittedProof(), submittedProof()},
		applyErrs: []error{models.ErrStale, nil},
	}

	proof, outcome, err := resolveProofReview(store, reviewer, 7, lifecycle.ProofApproved)
	require.NoError(t, err)
	require.Equal(t, reviewApplied, outcome)
	require.Equal(t, lifecycle.ProofApproved, proof.Status)
	require.Equal(t, 2, store.applies)
}

func TestProofReview_StaleThenAlreadyTargetIsNoop(t *testing.T) {
	approved := submittedProof()
	approved.Status = lifecycle.ProofApproved
	store := &fakeProofStore{
		reads:     []models.Proof{submittedProof(), approved},
		applyErrs: []error{models.ErrStale},
	}

	proof, outcome, err := resolveProofReview(store, reviewer, 7, lifecycle.ProofApproved)
	require.NoError(t, err)
	require.Equal(t, reviewNoop, outcome)
	require.Equal(t, lifecycle.ProofApproved, proof.Status)
	require.Equal(t, 1, store.applies)
}

func TestProofReview_ConflictAfterSecondStaleWrite(t *testing.T) {
	store := &fakeProofStore{
		reads:     []models.Proof{submittedProof(), submittedProof()},
		applyErrs: []error{models.ErrStale, models.ErrStale},
	}

	_, _, err := resolveProofReview(store, reviewer, 7, lifecycle.ProofApproved)
	var cerr *lifecycle.ConflictError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, 2, store.applies)
}

func TestProofReview_SubmitterCannotReviewOwnProof(t *testing.T) {
	store := &fakeProofStore{reads: []models.Proof{submittedProof()}}
	submitter := lifecycle.Actor{ID: 5, Role: lifecycle.RoleAdmin}

	_, _, err := resolveProofReview(store, submitter, 7, lifecycle.ProofApproved)
	var aerr *lifecycle.AuthorizationError
	require.True(t, errors.As(err, &aerr))
	require.Equal(t, 0, store.applies)
}
