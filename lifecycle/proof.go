package lifecycle

import "strings"

// ProofStatus tracks one user's attempt at a task. started is a cursor state
// signaling in-progress work and is never itself reviewable. approved and
// rejected are terminal for review; claimed is terminal absolute.
type ProofStatus string

const (
	ProofStarted   ProofStatus = "started"
	ProofSubmitted ProofStatus = "submitted"
	ProofApproved  ProofStatus = "approved"
	ProofRejected  ProofStatus = "rejected"
	ProofClaimed   ProofStatus = "claimed"
)

// proofTransitions is the full transition table. Anything absent here fails
// with InvalidTransitionError. submitted -> submitted is the idempotent
// re-submission path: it overwrites proofUrl and timestamp without changing
// status.
var proofTransitions = map[ProofStatus][]ProofStatus{
	ProofStarted:   {ProofSubmitted},
	ProofSubmitted: {ProofSubmitted, ProofApproved, ProofRejected},
	ProofApproved:  {ProofClaimed},
}

// ValidateProofTransition checks a requested proof status change against the
// transition table.
func ValidateProofTransition(current, target ProofStatus) error {
	for _, next := range proofTransitions[current] {
		if next == target {
			return nil
		}
	}
	return &InvalidTransitionError{From: string(current), To: string(target)}
}

// ValidateProofSubmission enforces the evidence rule: a proof may not reach
// submitted without a proofUrl when the task requires one.
func ValidateProofSubmission(req ProofRequirement, proofURL string) error {
	if req != ProofNone && strings.TrimSpace(proofURL) == "" {
		return invalid("proof is required for this task")
	}
	return nil
}

// CanBeginProof checks whether a new started proof may be created: the task
// must be approved, and group tasks cap concurrent participations at the
// participant limit. active counts the task's non-rejected proofs at read
// time; the count-then-insert race is handled by the store.
func CanBeginProof(status TaskStatus, kind TaskKind, active, limit int) error {
	if status != TaskApproved {
		return invalid("task is not open for participation")
	}
	if kind == KindGroup && active >= limit {
		return invalid("task participant limit reached")
	}
	return nil
}
