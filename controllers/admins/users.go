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
)

// GET /v1/admin/users
func UserListHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	if err := lifecycle.CanManageUsers(actor); err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := r.URL.Query().Get("search")
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.DB
	query := db.Model(&models.User{}).Where("role = ?", lifecycle.RoleUser)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
			"users": users,
		},
	})
}

// PUT /v1/admin/users/{id}/active
func SetUserActiveHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	if err := lifecycle.CanManageUsers(actor); err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	userID := parseID(mux.Vars(r)["id"])

	var req setActiveRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var user models.User
	if err := database.DB.
		Where("id = ? AND role = ?", userID, lifecycle.RoleUser).
		First(&user).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "user", ID: userID})
		return
	}

	if err := database.DB.Model(&user).Update("is_active", *req.IsActive).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}
	user.IsActive = *req.IsActive

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "User updated",
		Data:    user,
	})
}
