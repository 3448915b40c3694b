package admins

import (
	"net/http"
	"strconv"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/middleware"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type SubTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=150"`
	Description string  `json:"description"`
	Reward      float64 `json:"reward" validate:"required"`
	Link        string  `json:"link" validate:"required,url"`
	Category    string  `json:"category" validate:"required"`
	Platform    string  `json:"platform"`
}

type TaskRequest struct {
	Title            string           `json:"title" validate:"required,max=150"`
	Description      string           `json:"description"`
	Reward           float64          `json:"reward"`
	Link             string           `json:"link"`
	Category         string           `json:"category"`
	Platform         string           `json:"platform"`
	RequiresProof    string           `json:"requires_proof" validate:"required,oneof=none screenshot link"`
	ParticipantLimit int              `json:"participant_limit"`
	SubTasks         []SubTaskRequest `json:"sub_tasks"`
}

func (req *TaskRequest) draft(kind lifecycle.TaskKind) lifecycle.TaskDraft {
	d := lifecycle.TaskDraft{
		Kind:             kind,
		Title:            req.Title,
		Description:      req.Description,
		Reward:           req.Reward,
		Link:             req.Link,
		Category:         req.Category,
		Platform:         req.Platform,
		RequiresProof:    lifecycle.ProofRequirement(req.RequiresProof),
		ParticipantLimit: req.ParticipantLimit,
	}
	for _, st := range req.SubTasks {
		d.SubTasks = append(d.SubTasks, lifecycle.SubTaskDraft{
			Title:       st.Title,
			Description: st.Description,
			Reward:      st.Reward,
			Link:        st.Link,
			Category:    st.Category,
			Platform:    st.Platform,
		})
	}
	return d
}

// GET /v1/admin/tasks?view=mine|pending|approved|rejected
func TaskListHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	view, err := lifecycle.ParseTaskView(r.URL.Query().Get("view"))
	if err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	db := database.DB
	query := db.Model(&models.Task{}).Preload("SubTasks")
	switch view {
	case lifecycle.ViewMine:
		query = query.Where("created_by = ?", actor.ID)
	case lifecycle.ViewPending:
		query = query.Where("status = ? AND created_by <> ?", lifecycle.TaskPending, actor.ID)
	case lifecycle.ViewApproved:
		query = query.Where("status = ? AND created_by <> ?", lifecycle.TaskApproved, actor.ID)
	case lifecycle.ViewRejected:
		query = query.Where("status = ? AND created_by <> ?", lifecycle.TaskRejected, actor.ID)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	// submission counters per task for the dashboard cards
	type proofCount struct {
		TaskID uint
		Cnt    int64
	}
	countMap := make(map[uint]int64, len(tasks))
	if len(tasks) > 0 {
		ids := make([]uint, 0, len(tasks))
		for _, t := range tasks {
			ids = append(ids, t.ID)
		}
		var counts []proofCount
		if err := db.Model(&models.Proof{}).
			Select("task_id, COUNT(*) as cnt").
			Where("task_id IN ? AND status = ?", ids, lifecycle.ProofSubmitted).
			Group("task_id").
			Scan(&counts).Error; err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
			return
		}
		for _, c := range counts {
			countMap[c.TaskID] = c.Cnt
		}
	}

	type TaskWithStats struct {
		models.Task
		PendingProofs int64 `json:"pending_proofs"`
	}
	items := make([]TaskWithStats, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, TaskWithStats{Task: t, PendingProofs: countMap[t.ID]})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"view":  view,
			"tasks": items,
		},
	})
}

// POST /v1/admin/tasks
func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	createTask(w, r, lifecycle.KindSingle)
}

// POST /v1/admin/tasks/group
func CreateGroupTaskHandler(w http.ResponseWriter, r *http.Request) {
	createTask(w, r, lifecycle.KindGroup)
}

func createTask(w http.ResponseWriter, r *http.Request, kind lifecycle.TaskKind) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	if err := lifecycle.CanCreateTask(actor); err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	var req TaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if err := lifecycle.ValidateTaskDraft(req.draft(kind)); err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	db := database.DB
	setting, err := models.GetSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	task := models.Task{
		Kind:             kind,
		Title:            req.Title,
		Description:      req.Description,
		Reward:           req.Reward,
		Link:             req.Link,
		Category:         req.Category,
		Platform:         req.Platform,
		RequiresProof:    lifecycle.ProofRequirement(req.RequiresProof),
		ParticipantLimit: req.ParticipantLimit,
		Status:           lifecycle.InitialTaskStatus(actor.Role, setting.AutoApproveSuperAdmin),
		CreatedBy:        actor.ID,
	}
	for i, st := range req.SubTasks {
		task.SubTasks = append(task.SubTasks, models.SubTask{
			Position:    i,
			Title:       st.Title,
			Description: st.Description,
			Reward:      st.Reward,
			Link:        st.Link,
			Category:    st.Category,
			Platform:    st.Platform,
		})
	}

	if err := db.Create(&task).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Task created",
		Data:    task,
	})
}

// PUT /v1/admin/tasks/{id}
func UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	taskID := parseID(mux.Vars(r)["id"])
	var task models.Task
	if err := database.DB.Preload("SubTasks").First(&task, taskID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "task", ID: taskID})
		return
	}
	if err := lifecycle.CanEditTask(actor, task.CreatedBy); err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	var req TaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	// kind is immutable; the draft is revalidated against the stored kind
	if err := lifecycle.ValidateTaskDraft(req.draft(task.Kind)); err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		task.Title = req.Title
		task.Description = req.Description
		task.Reward = req.Reward
		task.Link = req.Link
		task.Category = req.Category
		task.Platform = req.Platform
		task.RequiresProof = lifecycle.ProofRequirement(req.RequiresProof)
		task.ParticipantLimit = req.ParticipantLimit
		if err := tx.Omit("SubTasks").Save(&task).Error; err != nil {
			return err
		}
		if task.Kind == lifecycle.KindGroup {
			if err := tx.Where("task_id = ?", task.ID).Delete(&models.SubTask{}).Error; err != nil {
				return err
			}
			subs := make([]models.SubTask, 0, len(req.SubTasks))
			for i, st := range req.SubTasks {
				subs = append(subs, models.SubTask{
					TaskID:      task.ID,
					Position:    i,
					Title:       st.Title,
					Description: st.Description,
					Reward:      st.Reward,
					Link:        st.Link,
					Category:    st.Category,
					Platform:    st.Platform,
				})
			}
			if err := tx.Create(&subs).Error; err != nil {
				return err
			}
			task.SubTasks = subs
		}
		return nil
	})
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Task updated",
		Data:    task,
	})
}

// DELETE /v1/admin/tasks/{id}
func DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	taskID := parseID(mux.Vars(r)["id"])
	var task models.Task
	if err := database.DB.First(&task, taskID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "task", ID: taskID})
		return
	}
	if err := lifecycle.CanDeleteTask(actor, task.CreatedBy); err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.SubTask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Proof{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task deleted"})
}

// PUT /v1/admin/tasks/{id}/approve
func ApproveTaskHandler(w http.ResponseWriter, r *http.Request) {
	reviewTask(w, r, lifecycle.TaskApproved)
}

// PUT /v1/admin/tasks/{id}/reject
func RejectTaskHandler(w http.ResponseWriter, r *http.Request) {
	reviewTask(w, r, lifecycle.TaskRejected)
}

// reviewTask resolves the review against the store and maps the outcome to
// the response envelope.
func reviewTask(w http.ResponseWriter, r *http.Request, target lifecycle.TaskStatus) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	taskID := parseID(mux.Vars(r)["id"])
	task, outcome, err := resolveTaskReview(gormTaskStore{db: database.DB}, actor, taskID, target)
	if err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	msg := "Task " + string(target)
	if outcome == reviewNoop {
		msg = "Task already " + string(target)
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: msg, Data: task})
}

func parseID(s string) uint {
	n, _ := strconv.ParseUint(s, 10, 32)
	return uint(n)
}
