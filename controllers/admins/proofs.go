package admins

import (
	"net/http"
	"strings"
	"time"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admin/tasks/{id}/proofs
func TaskProofsHandler(w http.ResponseWriter, r *http.Request) {
	taskID := parseID(mux.Vars(r)["id"])
	db := database.DB

	var task models.Task
	if err := db.First(&task, taskID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "task", ID: taskID})
		return
	}

	type rowScan struct {
		ID        uint
		UserID    uint
		UserName  string
		UserEmail string
		Status    string
		ProofURL  *string
		Timestamp time.Time
	}
	var rows []rowScan
	if err := db.
		Table("proofs AS p").
		Joins("JOIN users u ON p.user_id = u.id").
		Select(`
			p.id,
			p.user_id,
			u.name AS user_name,
			u.email AS user_email,
			p.status,
			p.proof_url,
			p.timestamp
		`).
		Where("p.task_id = ?", taskID).
		Order("p.timestamp DESC").
		Scan(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	type ProofResponse struct {
		ID        uint    `json:"id"`
		UserID    uint    `json:"user_id"`
		UserName  string  `json:"user_name"`
		UserEmail string  `json:"user_email"`
		Status    string  `json:"status"`
		ProofURL  *string `json:"proof_url,omitempty"`
		Timestamp string  `json:"timestamp"`
	}
	items := make([]ProofResponse, 0, len(rows))
	for _, row := range rows {
		proofURL := row.ProofURL
		// screenshot proofs store the object key, link proofs a full URL
		if u := utils.GetStringValue(row.ProofURL); u != "" && !strings.HasPrefix(u, "http") {
			if signed, err := utils.GenerateSignedURL(u, 3600); err == nil {
				proofURL = &signed
			}
		}
		items = append(items, ProofResponse{
			ID:        row.ID,
			UserID:    row.UserID,
			UserName:  row.UserName,
			UserEmail: row.UserEmail,
			Status:    row.Status,
			ProofURL:  proofURL,
			Timestamp: row.Timestamp.Format(time.RFC3339),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"task":   task,
			"proofs": items,
		},
	})
}

// PUT /v1/admin/proofs/{id}/approve
func ApproveProofHandler(w http.ResponseWriter, r *http.Request) {
	reviewProof(w, r, lifecycle.ProofApproved)
}

// PUT /v1/admin/proofs/{id}/reject
func RejectProofHandler(w http.ResponseWriter, r *http.Request) {
	reviewProof(w, r, lifecycle.ProofRejected)
}

// reviewProof mirrors reviewTask: resolve against the store, map the outcome
// to the response envelope.
func reviewProof(w http.ResponseWriter, r *http.Request, target lifecycle.ProofStatus) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	proofID := parseID(mux.Vars(r)["id"])
	proof, outcome, err := resolveProofReview(gormProofStore{db: database.DB}, actor, proofID, target)
	if err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	msg := "Submission " + string(target)
	if outcome == reviewNoop {
		msg = "Submission already " + string(target)
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: msg, Data: proof})
}
