package admins

import (
	"net/http"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"
)

// GET /v1/admin/dashboard
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var totalUsers, activeUsers int64
	db.Model(&models.User{}).Where("role = ?", lifecycle.RoleUser).Count(&totalUsers)
	db.Model(&models.User{}).Where("role = ? AND is_active = ?", lifecycle.RoleUser, true).Count(&activeUsers)

	var pendingTasks, approvedTasks, rejectedTasks int64
	db.Model(&models.Task{}).Where("status = ?", lifecycle.TaskPending).Count(&pendingTasks)
	db.Model(&models.Task{}).Where("status = ?", lifecycle.TaskApproved).Count(&approvedTasks)
	db.Model(&models.Task{}).Where("status = ?", lifecycle.TaskRejected).Count(&rejectedTasks)

	var submittedProofs, approvedProofs, claimedProofs int64
	db.Model(&models.Proof{}).Where("status = ?", lifecycle.ProofSubmitted).Count(&submittedProofs)
	db.Model(&models.Proof{}).Where("status = ?", lifecycle.ProofApproved).Count(&approvedProofs)
	db.Model(&models.Proof{}).Where("status = ?", lifecycle.ProofClaimed).Count(&claimedProofs)

	var pendingQueries int64
	db.Model(&models.SupportQuery{}).Where("status = ?", "pending").Count(&pendingQueries)

	var totalPaid float64
	db.Model(&models.RewardTransaction{}).
		Where("type = ?", models.TxTaskReward).
		Select("COALESCE(SUM(amount),0)").
		Scan(&totalPaid)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"users": map[string]interface{}{
				"total":  totalUsers,
				"active": activeUsers,
			},
			"tasks": map[string]interface{}{
				"pending":  pendingTasks,
				"approved": approvedTasks,
				"rejected": rejectedTasks,
			},
			"proofs": map[string]interface{}{
				"submitted": submittedProofs,
				"approved":  approvedProofs,
				"claimed":   claimedProofs,
			},
			"support_queries_pending": pendingQueries,
			"total_paid":              totalPaid,
		},
	})
}
