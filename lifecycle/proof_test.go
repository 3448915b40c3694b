package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateProofTransition(t *testing.T) {
	allowed := [][2]ProofStatus{
		{ProofStarted, ProofSubmitted},
		{ProofSubmitted, ProofSubmitted}, // re-submission overwrite
		{ProofSubmitted, ProofApproved},
		{ProofSubmitted, ProofRejected},
		{ProofApproved, ProofClaimed},
	}
	for _, tc := range allowed {
		require.NoError(t, ValidateProofTransition(tc[0], tc[1]), "%s -> %s", tc[0], tc[1])
	}

	statuses := []ProofStatus{ProofStarted, ProofSubmitted, ProofApproved, ProofRejected, ProofClaimed}
	isAllowed := func(from, to ProofStatus) bool {
		for _, tc := range allowed {
			if tc[0] == from && tc[1] == to {
				return true
			}
		}
		return false
	}
	var terr *InvalidTransitionError
	for _, from := range statuses {
		for _, to := range statuses {
			if isAllowed(from, to) {
				continue
			}
			err := ValidateProofTransition(from, to)
			require.ErrorAs(t, err, &terr, "%s -> %s must be rejected", from, to)
		}
	}
}

func TestStartedIsNeverReviewable(t *testing.T) {
	var terr *InvalidTransitionError
	require.ErrorAs(t, ValidateProofTransition(ProofStarted, ProofApproved), &terr)
	require.ErrorAs(t, ValidateProofTransition(ProofStarted, ProofRejected), &terr)
}

func TestClaimedOnlyFromApproved(t *testing.T) {
	var terr *InvalidTransitionError
	for _, from := range []ProofStatus{ProofStarted, ProofSubmitted, ProofRejected, ProofClaimed} {
		require.ErrorAs(t, ValidateProofTransition(from, ProofClaimed), &terr)
	}
	require.NoError(t, ValidateProofTransition(ProofApproved, ProofClaimed))
}

func TestValidateProofSubmission(t *testing.T) {
	require.NoError(t, ValidateProofSubmission(ProofNone, ""))
	require.NoError(t, ValidateProofSubmission(ProofScreenshot, "https://cdn.example.com/shot.png"))
	require.NoError(t, ValidateProofSubmission(ProofLink, "https://x.com/u/status/1"))

	var verr *ValidationError
	require.ErrorAs(t, ValidateProofSubmission(ProofScreenshot, ""), &verr)
	require.ErrorAs(t, ValidateProofSubmission(ProofLink, "   "), &verr)
}

func TestProofReviewAuthorization(t *testing.T) {
	submitter := uint(7)
	var aerr *AuthorizationError

	// the submitting user can never review their own proof, whatever the role
	for _, role := range []Role{RoleUser, RoleAdmin, RoleSuperAdmin} {
		err := CanReviewProof(Actor{ID: submitter, Role: role}, submitter)
		require.ErrorAs(t, err, &aerr, "role %s", role)
	}

	require.NoError(t, CanReviewProof(Actor{ID: 8, Role: RoleAdmin}, submitter))
	require.NoError(t, CanReviewProof(Actor{ID: 9, Role: RoleSuperAdmin}, submitter))
	require.ErrorAs(t, CanReviewProof(Actor{ID: 10, Role: RoleUser}, submitter), &aerr)
}

func TestCanBeginProof(t *testing.T) {
	var verr *ValidationError

	require.ErrorAs(t, CanBeginProof(TaskPending, KindSingle, 0, 0), &verr)
	require.ErrorAs(t, CanBeginProof(TaskRejected, KindSingle, 0, 0), &verr)

	require.NoError(t, CanBeginProof(TaskApproved, KindSingle, 100, 0))

	require.NoError(t, CanBeginProof(TaskApproved, KindGroup, 49, 50))
	require.ErrorAs(t, CanBeginProof(TaskApproved, KindGroup, 50, 50), &verr)
	require.ErrorAs(t, CanBeginProof(TaskApproved, KindGroup, 51, 50), &verr)
}
