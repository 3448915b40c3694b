package lifecycle

// TaskView is one of the four dashboard tabs derived from the full task set
// and the acting identity. An actor's own tasks appear only under mine and
// never in a review queue, enforcing the self-review rule at the presentation
// level as well.
type TaskView string

const (
	ViewMine     TaskView = "mine"
	ViewPending  TaskView = "pending"
	ViewApproved TaskView = "approved"
	ViewRejected TaskView = "rejected"
)

// ParseTaskView maps a query parameter to a view, defaulting to mine.
func ParseTaskView(s string) (TaskView, error) {
	switch TaskView(s) {
	case ViewMine, "":
		return ViewMine, nil
	case ViewPending, ViewApproved, ViewRejected:
		return TaskView(s), nil
	}
	return "", invalid("unknown task view %q", s)
}

// InView is the canonical membership predicate for a view. For tasks the
// actor did not author, the three status views partition the set exactly.
func InView(view TaskView, actorID, createdBy uint, status TaskStatus) bool {
	switch view {
	case ViewMine:
		return createdBy == actorID
	case ViewPending:
		return status == TaskPending && createdBy != actorID
	case ViewApproved:
		return status == TaskApproved && createdBy != actorID
	case ViewRejected:
		return status == TaskRejected && createdBy != actorID
	}
	return false
}
