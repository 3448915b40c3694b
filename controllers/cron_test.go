package controllers

import (
	"errors"
	"testing"

	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/models"

	"github.com/stretchr/testify/require"
)

type fakePayoutStore struct {
	proofs       []models.Proof
	tasks        map[uint]models.Task
	groupRewards map[uint]float64
	groupErr     error
	claimErrs    map[uint]error

	claims []float64
}

func (f *fakePayoutStore) ApprovedProofs(limit int) ([]models.Proof, error) {
	return f.proofs, nil
}

func (f *fakePayoutStore) TaskFor(taskID uint) (models.Task, error) {
	task, ok := f.tasks[taskID]
	if !ok {
		return models.Task{}, errors.New("record not found")
	}
	return task, nil
}

func (f *fakePayoutStore) GroupReward(taskID uint) (float64, error) {
	if f.groupErr != nil {
		return 0, f.groupErr
	}
	return f.groupRewards[taskID], nil
}

func (f *fakePayoutStore) Claim(proof models.Proof, reward float64, note string) error {
	if err := f.claimErrs[proof.ID]; err != nil {
		return err
	}
	f.claims = append(f.claims, reward)
	return nil
}

func TestRunPayout_ClaimsSingleAndGroupRewards(t *testing.T) {
	store := &fakePayoutStore{
		proofs: []models.Proof{
			{ID: 1, TaskID: 10, UserID: 5, Status: lifecycle.ProofApproved},
			{ID: 2, TaskID: 20, UserID: 6, Status: lifecycle.ProofApproved},
		},
		tasks: map[uint]models.Task{
			10: {ID: 10, Kind: lifecycle.KindSingle, Reward: 1.5},
			20: {ID: 20, Kind: lifecycle.KindGroup},
		},
		groupRewards: map[uint]float64{20: 3.75},
	}

	eligible, claimed, paid, err := runPayout(store, 500)
	require.NoError(t, err)
	require.Equal(t, 2, eligible)
	require.Equal(t, 2, claimed)
	require.InDelta(t, 5.25, paid, 1e-9)
	require.Equal(t, []float64{1.5, 3.75}, store.claims)
}

func TestRunPayout_GroupRewardReadFailureLeavesProofApproved(t *testing.T) {
	// a failed sub-task sum must not claim the proof with a zero reward
	store := &fakePayoutStore{
		proofs: []models.Proof{
			{ID: 1, TaskID: 20, UserID: 5, Status: lifecycle.ProofApproved},
		},
		tasks: map[uint]models.Task{
			20: {ID: 20, Kind: lifecycle.KindGroup},
		},
		groupErr: errors.New("connection reset"),
	}

	eligible, claimed, paid, err := runPayout(store, 500)
	require.NoError(t, err)
	require.Equal(t, 1, eligible)
	require.Equal(t, 0, claimed)
	require.Zero(t, paid)
	require.Empty(t, store.claims)
}

func TestRunPayout_StaleClaimSkipsWithoutCrediting(t *testing.T) {
	// a concurrent run already claimed proof 1; proof 2 still pays out
	store := &fakePayoutStore{
		proofs: []models.Proof{
			{ID: 1, TaskID: 10, UserID: 5, Status: lifecycle.ProofApproved},
			{ID: 2, TaskID: 10, UserID: 6, Status: lifecycle.ProofApproved},
		},
		tasks: map[uint]models.Task{
			10: {ID: 10, Kind: lifecycle.KindSingle, Reward: 2},
		},
		claimErrs: map[uint]error{1: models.ErrStale},
	}

	eligible, claimed, paid, err := runPayout(store, 500)
	require.NoError(t, err)
	require.Equal(t, 2, eligible)
	require.Equal(t, 1, claimed)
	require.InDelta(t, 2, paid, 1e-9)
}

func TestRunPayout_MissingTaskSkipsProof(t *testing.T) {
	store := &fakePayoutStore{
		proofs: []models.Proof{
			{ID: 1, TaskID: 99, UserID: 5, Status: lifecycle.ProofApproved},
		},
		tasks: map[uint]models.Task{},
	}

	_, claimed, paid, err := runPayout(store, 500)
	require.NoError(t, err)
	require.Equal(t, 0, claimed)
	require.Zero(t, paid)
}
