package users

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// browseStore is the slice of persistence the task browse needs.
type browseStore interface {
	ApprovedTasks(category string) ([]models.Task, error)
	OwnProofs(uid uint) ([]models.Proof, error)
}

type gormBrowseStore struct{ db *gorm.DB }

func (s gormBrowseStore) ApprovedTasks(category string) ([]models.Task, error) {
	query := s.db.Model(&models.Task{}).
		Preload("SubTasks").
		Where("status = ?", lifecycle.TaskApproved)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var tasks []models.Task
	err := query.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (s gormBrowseStore) OwnProofs(uid uint) ([]models.Proof, error) {
	var mine []models.Proof
	err := s.db.Where("user_id = ?", uid).Find(&mine).Error
	return mine, err
}

// GET /v1/tasks
func TaskListHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	listTasks(w, r, gormBrowseStore{db: database.DB}, uid)
}

func listTasks(w http.ResponseWriter, r *http.Request, store browseStore, uid uint) {
	tasks, err := store.ApprovedTasks(r.URL.Query().Get("category"))
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	// the caller's own proofs, to mark tasks already started/submitted. A
	// failed read must not render every task as never started.
	mine, err := store.OwnProofs(uid)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}
	mineMap := make(map[uint]models.Proof, len(mine))
	for _, p := range mine {
		mineMap[p.TaskID] = p
	}

	type TaskItem struct {
		models.Task
		ProofStatus *lifecycle.ProofStatus `json:"proof_status,omitempty"`
	}
	items := make([]TaskItem, 0, len(tasks))
	for _, t := range tasks {
		item := TaskItem{Task: t}
		if p, ok := mineMap[t.ID]; ok {
			status := p.Status
			item.ProofStatus = &status
		}
		items = append(items, item)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}

// POST /v1/tasks/{id}/start
func StartTaskHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	taskID := parseID(mux.Vars(r)["id"])
	db := database.DB

	var proof models.Proof
	err := db.Transaction(func(tx *gorm.DB) error {
		// lock the task row so the participant count cannot move between the
		// count and the insert
		var task models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &lifecycle.NotFoundError{Entity: "task", ID: taskID}
			}
			return err
		}

		var existing models.Proof
		if err := tx.Where("task_id = ? AND user_id = ?", taskID, uid).First(&existing).Error; err == nil {
			return &lifecycle.ConflictError{Reason: "task already started"}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		active, err := models.CountActiveProofs(tx, taskID)
		if err != nil {
			return err
		}
		if err := lifecycle.CanBeginProof(task.Status, task.Kind, int(active), task.ParticipantLimit); err != nil {
			return err
		}

		proof = models.Proof{
			TaskID:    taskID,
			UserID:    uid,
			Status:    lifecycle.ProofStarted,
			Timestamp: time.Now(),
		}
		return tx.Create(&proof).Error
	})
	if err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Task started",
		Data:    proof,
	})
}

// POST /v1/tasks/{id}/submit takes JSON {"proof_url": "..."} for link proofs, or
// multipart field "screenshot" for screenshot proofs. Resubmission while still
// in submitted overwrites the evidence.
func SubmitTaskHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	taskID := parseID(mux.Vars(r)["id"])
	db := database.DB

	var task models.Task
	if err := db.First(&task, taskID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "task", ID: taskID})
		return
	}

	proofURL, ok := collectProof(w, r, &task, uid)
	if !ok {
		return
	}
	if err := lifecycle.ValidateProofSubmission(task.RequiresProof, proofURL); err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	var urlPtr *string
	if proofURL != "" {
		urlPtr = &proofURL
	}

	for attempt := 0; attempt < 2; attempt++ {
		var proof models.Proof
		if err := db.Where("task_id = ? AND user_id = ?", taskID, uid).First(&proof).Error; err != nil {
			utils.WriteLifecycleError(w, &lifecycle.ValidationError{Reason: "task has not been started"})
			return
		}
		if err := lifecycle.ValidateProofTransition(proof.Status, lifecycle.ProofSubmitted); err != nil {
			utils.WriteLifecycleError(w, err)
			return
		}

		err := models.ApplyProofTransition(db, proof.ID, proof.Status, lifecycle.ProofSubmitted, urlPtr)
		if errors.Is(err, models.ErrStale) {
			continue
		}
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
			return
		}

		proof.Status = lifecycle.ProofSubmitted
		if urlPtr != nil {
			proof.ProofURL = urlPtr
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
			Success: true,
			Message: "Submission received",
			Data:    proof,
		})
		return
	}

	utils.WriteLifecycleError(w, &lifecycle.ConflictError{Reason: "submission was changed concurrently, please retry"})
}

// collectProof extracts the evidence for a submission: a proof_url field for
// link proofs, an uploaded image for screenshot proofs. Tasks that require no
// proof return an empty URL.
func collectProof(w http.ResponseWriter, r *http.Request, task *models.Task, uid uint) (string, bool) {
	switch task.RequiresProof {
	case lifecycle.ProofNone:
		return "", true
	case lifecycle.ProofLink:
		var req struct {
			ProofURL string `json:"proof_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
			return "", false
		}
		return strings.TrimSpace(req.ProofURL), true
	case lifecycle.ProofScreenshot:
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart body"})
			return "", false
		}
		file, handler, err := r.FormFile("screenshot")
		if err != nil || handler == nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Screenshot file is required"})
			return "", false
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(handler.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Screenshot must be JPG/PNG/WEBP"})
			return "", false
		}
		if handler.Size > 5<<20 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Screenshot must be at most 5MB"})
			return "", false
		}

		imageBytes, err := io.ReadAll(file)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Failed to read screenshot"})
			return "", false
		}
		detected := http.DetectContentType(imageBytes[:min(len(imageBytes), 512)])
		switch detected {
		case "image/jpeg", "image/png", "image/webp":
		default:
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Screenshot must be JPG/PNG/WEBP"})
			return "", false
		}

		imgName := "proof_" + strconv.FormatUint(uint64(uid), 10) + "_" +
			strconv.FormatUint(uint64(task.ID), 10) + "_" +
			strconv.FormatInt(time.Now().UnixNano(), 10) + ext
		objectKey := utils.ObjectKey("proofs", imgName)
		if err := utils.UploadToS3(objectKey, bytes.NewReader(imageBytes), int64(len(imageBytes))); err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to upload screenshot"})
			return "", false
		}
		return objectKey, true
	}
	return "", true
}

// GET /v1/me/tasks
func MyTasksHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB
	type rowScan struct {
		ID        uint
		TaskID    uint
		TaskTitle string
		Reward    float64
		Status    string
		ProofURL  *string
		Timestamp time.Time
	}
	var rows []rowScan
	if err := db.
		Table("proofs AS p").
		Joins("JOIN tasks t ON p.task_id = t.id").
		Select(`
			p.id,
			p.task_id,
			t.title AS task_title,
			t.reward AS reward,
			p.status,
			p.proof_url,
			p.timestamp
		`).
		Where("p.user_id = ?", uid).
		Order("p.timestamp DESC").
		Scan(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	type ProofItem struct {
		ID        uint    `json:"id"`
		TaskID    uint    `json:"task_id"`
		TaskTitle string  `json:"task_title"`
		Reward    float64 `json:"reward"`
		Status    string  `json:"status"`
		ProofURL  *string `json:"proof_url,omitempty"`
		Timestamp string  `json:"timestamp"`
	}
	items := make([]ProofItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ProofItem{
			ID:        row.ID,
			TaskID:    row.TaskID,
			TaskTitle: row.TaskTitle,
			Reward:    row.Reward,
			Status:    row.Status,
			ProofURL:  row.ProofURL,
			Timestamp: row.Timestamp.Format(time.RFC3339),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}

func parseID(s string) uint {
	n, _ := strconv.ParseUint(s, 10, 32)
	return uint(n)
}
