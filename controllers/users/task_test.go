package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/models"

	"github.com/stretchr/testify/require"
)

type fakeBrowseStore struct {
	tasks     []models.Task
	proofs    []models.Proof
	proofsErr error
}

func (f fakeBrowseStore) ApprovedTasks(category string) ([]models.Task, error) {
	return f.tasks, nil
}

func (f fakeBrowseStore) OwnProofs(uid uint) ([]models.Proof, error) {
	return f.proofs, f.proofsErr
}

func TestListTasks_OwnProofReadFailureIsSurfaced(t *testing.T) {
	store := fakeBrowseStore{
		tasks:     []models.Task{{ID: 1, Status: lifecycle.TaskApproved}},
		proofsErr: errors.New("connection reset"),
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "http://example.local/v1/tasks", nil)
	listTasks(rec, req, store, 5)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
}

func TestListTasks_AttachesOwnProofStatus(t *testing.T) {
	store := fakeBrowseStore{
		tasks: []models.Task{
			{ID: 1, Status: lifecycle.TaskApproved},
			{ID: 2, Status: lifecycle.TaskApproved},
		},
		proofs: []models.Proof{{ID: 9, TaskID: 1, UserID: 5, Status: lifecycle.ProofSubmitted}},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "http://example.local/v1/tasks", nil)
	listTasks(rec, req, store, 5)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []struct {
			ID          uint    `json:"id"`
			ProofStatus *string `json:"proof_status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Data[0].ProofStatus)
	require.Equal(t, string(lifecycle.ProofSubmitted), *resp.Data[0].ProofStatus)
	require.Nil(t, resp.Data[1].ProofStatus)
}
