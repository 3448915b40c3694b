package lifecycle

import (
	"net/url"
	"strings"
)

// TaskKind discriminates the two task shapes. Decided at construction and
// immutable thereafter.
type TaskKind string

const (
	KindSingle TaskKind = "single"
	KindGroup  TaskKind = "group"
)

type TaskStatus string

const (
	TaskPending  TaskStatus = "pending"
	TaskApproved TaskStatus = "approved"
	TaskRejected TaskStatus = "rejected"
)

// ProofRequirement determines whether a proof must carry evidence before it
// can be submitted.
type ProofRequirement string

const (
	ProofNone       ProofRequirement = "none"
	ProofScreenshot ProofRequirement = "screenshot"
	ProofLink       ProofRequirement = "link"
)

// MinReward is the smallest reward a task or sub-task may offer.
const MinReward = 0.2

// SubTaskDraft is one participation unit inside a group task draft.
type SubTaskDraft struct {
	Title       string
	Description string
	Reward      float64
	Link        string
	Category    string
	Platform    string
}

// TaskDraft carries the fields validated before a task record is created.
type TaskDraft struct {
	Kind             TaskKind
	Title            string
	Description      string
	Reward           float64
	Link             string
	Category         string
	Platform         string
	RequiresProof    ProofRequirement
	ParticipantLimit int
	SubTasks         []SubTaskDraft
}

// ValidateTaskDraft checks the required fields of a task before creation.
// A single task must have no sub-tasks; a group task must have at least one
// and a positive participant limit.
func ValidateTaskDraft(d TaskDraft) error {
	switch d.Kind {
	case KindSingle:
		if len(d.SubTasks) > 0 {
			return invalid("a single task cannot have sub-tasks")
		}
		if err := validateUnit(d.Title, d.Reward, d.Link, d.Category); err != nil {
			return err
		}
	case KindGroup:
		if len(d.SubTasks) == 0 {
			return invalid("a group task needs at least one sub-task")
		}
		if d.ParticipantLimit < 1 {
			return invalid("participant limit must be at least 1")
		}
		for _, st := range d.SubTasks {
			if err := validateUnit(st.Title, st.Reward, st.Link, st.Category); err != nil {
				return err
			}
		}
	default:
		return invalid("unknown task kind %q", string(d.Kind))
	}

	switch d.RequiresProof {
	case ProofNone, ProofScreenshot, ProofLink:
	case "":
		return invalid("proof requirement is required")
	default:
		return invalid("unknown proof requirement %q", string(d.RequiresProof))
	}
	return nil
}

func validateUnit(title string, reward float64, link, category string) error {
	if strings.TrimSpace(title) == "" {
		return invalid("title is required")
	}
	if reward < MinReward {
		return invalid("reward must be at least %.1f", MinReward)
	}
	if !isAbsoluteURL(link) {
		return invalid("link must be a valid absolute URL")
	}
	if strings.TrimSpace(category) == "" {
		return invalid("category is required")
	}
	return nil
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// InitialTaskStatus decides the status of a freshly created task. Auto
// approval for super-admin authors is an explicit policy flag, never an
// implicit role side effect.
func InitialTaskStatus(role Role, autoApproveSuperAdmin bool) TaskStatus {
	if autoApproveSuperAdmin && role == RoleSuperAdmin {
		return TaskApproved
	}
	return TaskPending
}

// ValidateTaskTransition checks a requested task status change. A task leaves
// pending exactly once; approved and rejected remain mutable in either
// direction so moderation mistakes can be corrected. Requesting the current
// status is an idempotent no-op, reported via noop.
func ValidateTaskTransition(current, target TaskStatus) (noop bool, err error) {
	if target != TaskApproved && target != TaskRejected {
		return false, &InvalidTransitionError{From: string(current), To: string(target)}
	}
	if current == target {
		return true, nil
	}
	switch current {
	case TaskPending, TaskApproved, TaskRejected:
		return false, nil
	default:
		return false, &InvalidTransitionError{From: string(current), To: string(target)}
	}
}
