package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validSingleDraft() TaskDraft {
	return TaskDraft{
		Kind:          KindSingle,
		Title:         "Follow us on X",
		Description:   "Follow the official account",
		Reward:        0.5,
		Link:          "https://x.com/tomarket",
		Category:      "social",
		Platform:      "x",
		RequiresProof: ProofScreenshot,
	}
}

func validGroupDraft() TaskDraft {
	return TaskDraft{
		Kind:             KindGroup,
		RequiresProof:    ProofLink,
		ParticipantLimit: 50,
		SubTasks: []SubTaskDraft{
			{Title: "Join Telegram", Reward: 0.2, Link: "https://t.me/tomarket", Category: "social"},
			{Title: "Subscribe on YouTube", Reward: 0.3, Link: "https://youtube.com/@tomarket", Category: "social"},
		},
	}
}

func TestValidateTaskDraft_Single(t *testing.T) {
	require.NoError(t, ValidateTaskDraft(validSingleDraft()))

	d := validSingleDraft()
	d.Title = "   "
	var verr *ValidationError
	require.ErrorAs(t, ValidateTaskDraft(d), &verr)

	d = validSingleDraft()
	d.Reward = 0.1
	require.ErrorAs(t, ValidateTaskDraft(d), &verr)

	d = validSingleDraft()
	d.Link = "not-a-url"
	require.ErrorAs(t, ValidateTaskDraft(d), &verr)

	d = validSingleDraft()
	d.Link = "/relative/path"
	require.ErrorAs(t, ValidateTaskDraft(d), &verr)

	d = validSingleDraft()
	d.Category = ""
	require.ErrorAs(t, ValidateTaskDraft(d), &verr)

	d = validSingleDraft()
	d.SubTasks = validGroupDraft().SubTasks
	require.ErrorAs(t, ValidateTaskDraft(d), &verr)
}

func TestValidateTaskDraft_Group(t *testing.T) {
	require.NoError(t, ValidateTaskDraft(validGroupDraft()))

	var verr *ValidationError

	d := validGroupDraft()
	d.SubTasks = nil
	require.ErrorAs(t, ValidateTaskDraft(d), &verr, "group task with zero sub-tasks must fail")

	d = validGroupDraft()
	d.ParticipantLimit = 0
	require.ErrorAs(t, ValidateTaskDraft(d), &verr)

	d = validGroupDraft()
	d.SubTasks[0].Reward = 0.05
	require.ErrorAs(t, ValidateTaskDraft(d), &verr)

	d = validGroupDraft()
	d.RequiresProof = "video"
	require.ErrorAs(t, ValidateTaskDraft(d), &verr)

	d = validGroupDraft()
	d.Kind = "bundle"
	require.ErrorAs(t, ValidateTaskDraft(d), &verr)
}

func TestInitialTaskStatus(t *testing.T) {
	require.Equal(t, TaskPending, InitialTaskStatus(RoleAdmin, false))
	require.Equal(t, TaskPending, InitialTaskStatus(RoleAdmin, true))
	require.Equal(t, TaskPending, InitialTaskStatus(RoleSuperAdmin, false))
	require.Equal(t, TaskApproved, InitialTaskStatus(RoleSuperAdmin, true))
}

func TestValidateTaskTransition(t *testing.T) {
	// pending leaves exactly once
	noop, err := ValidateTaskTransition(TaskPending, TaskApproved)
	require.NoError(t, err)
	require.False(t, noop)

	noop, err = ValidateTaskTransition(TaskPending, TaskRejected)
	require.NoError(t, err)
	require.False(t, noop)

	// approved and rejected stay mutable in either direction
	noop, err = ValidateTaskTransition(TaskApproved, TaskRejected)
	require.NoError(t, err)
	require.False(t, noop)

	noop, err = ValidateTaskTransition(TaskRejected, TaskApproved)
	require.NoError(t, err)
	require.False(t, noop)

	// same target is an idempotent no-op
	noop, err = ValidateTaskTransition(TaskApproved, TaskApproved)
	require.NoError(t, err)
	require.True(t, noop)

	// nothing ever re-enters pending
	var terr *InvalidTransitionError
	_, err = ValidateTaskTransition(TaskApproved, TaskPending)
	require.ErrorAs(t, err, &terr)
	_, err = ValidateTaskTransition(TaskRejected, TaskPending)
	require.ErrorAs(t, err, &terr)
	_, err = ValidateTaskTransition(TaskPending, TaskPending)
	require.ErrorAs(t, err, &terr)
}

func TestTaskReviewAuthorization(t *testing.T) {
	author := Actor{ID: 1, Role: RoleAdmin}
	other := Actor{ID: 2, Role: RoleAdmin}
	super := Actor{ID: 3, Role: RoleSuperAdmin}
	user := Actor{ID: 4, Role: RoleUser}

	require.NoError(t, CanReviewTask(other, author.ID))
	require.NoError(t, CanReviewTask(super, author.ID))

	var aerr *AuthorizationError
	require.ErrorAs(t, CanReviewTask(author, author.ID), &aerr, "self-review must be denied")
	require.ErrorAs(t, CanReviewTask(user, author.ID), &aerr)

	// super-admins are not exempt from the self-review rule
	require.ErrorAs(t, CanReviewTask(super, super.ID), &aerr)
}

func TestTaskEditDeleteAuthorization(t *testing.T) {
	author := Actor{ID: 1, Role: RoleAdmin}
	other := Actor{ID: 2, Role: RoleAdmin}
	user := Actor{ID: 5, Role: RoleUser}

	require.NoError(t, CanEditTask(author, author.ID))
	var aerr *AuthorizationError
	require.ErrorAs(t, CanEditTask(other, author.ID), &aerr)
	require.ErrorAs(t, CanEditTask(user, author.ID), &aerr)

	require.NoError(t, CanDeleteTask(author, author.ID))
	require.NoError(t, CanDeleteTask(other, author.ID))
	require.ErrorAs(t, CanDeleteTask(user, author.ID), &aerr)
}

func TestAccountManagementAuthorization(t *testing.T) {
	admin := Actor{ID: 1, Role: RoleAdmin}
	super := Actor{ID: 2, Role: RoleSuperAdmin}
	user := Actor{ID: 3, Role: RoleUser}

	require.NoError(t, CanManageAdmins(super))
	var aerr *AuthorizationError
	require.ErrorAs(t, CanManageAdmins(admin), &aerr)
	require.ErrorAs(t, CanManageAdmins(user), &aerr)

	require.NoError(t, CanManageUsers(admin))
	require.NoError(t, CanManageUsers(super))
	require.ErrorAs(t, CanManageUsers(user), &aerr)
}
