package admins

import (
	"errors"
	"net/http"
	"strings"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/middleware"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /v1/admin/profile
func GetAdminProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var admin models.User
	if err := database.DB.First(&admin, actor.ID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "admin", ID: actor.ID})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    admin,
	})
}

type updateAdminProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

// PUT /v1/admin/profile
func UpdateAdminProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req updateAdminProfileRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var admin models.User
	if err := database.DB.First(&admin, actor.ID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "admin", ID: actor.ID})
		return
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(req.Name) != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.Email) != "" {
		updates["email"] = strings.TrimSpace(req.Email)
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&admin).Updates(updates).Error; err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
				Success: false,
				Message: "Failed to update profile",
			})
			return
		}
		database.DB.First(&admin, actor.ID)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Profile updated",
		Data:    admin,
	})
}

type updateAdminPasswordRequest struct {
	CurrentPassword      string `json:"current_password" validate:"required"`
	NewPassword          string `json:"new_password" validate:"required,min=6"`
	ConfirmationPassword string `json:"confirmation_password" validate:"required,eqfield=NewPassword"`
}

// PUT /v1/admin/password
func UpdateAdminPassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req updateAdminPasswordRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var admin models.User
	if err := database.DB.First(&admin, actor.ID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "admin", ID: actor.ID})
		return
	}

	if !admin.ValidatePassword(req.CurrentPassword) {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Current password is incorrect",
		})
		return
	}

	admin.Password = req.NewPassword
	if err := admin.HashPassword(); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to reset password",
		})
		return
	}
	if err := database.DB.Model(&admin).Update("password", admin.Password).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to save new password",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Password updated",
	})
}

// GET /v1/admin/admins
func AdminListHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	if err := lifecycle.CanManageAdmins(actor); err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	var admins []models.User
	if err := database.DB.
		Where("role IN ?", []lifecycle.Role{lifecycle.RoleAdmin, lifecycle.RoleSuperAdmin}).
		Order("created_at DESC").
		Find(&admins).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    admins,
	})
}

type createAdminRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin super-admin"`
}

// POST /v1/admin/admins
func CreateAdminHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	if err := lifecycle.CanManageAdmins(actor); err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	var req createAdminRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB
	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{
			Success: false,
			Message: "Email is already registered",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	admin := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Role:     lifecycle.Role(req.Role),
		IsActive: true,
		ReffCode: utils.GenerateReffCode(),
	}
	if err := admin.HashPassword(); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}
	if err := db.Create(&admin).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create admin"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Admin created",
		Data:    admin,
	})
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// PUT /v1/admin/admins/{id}/active
func SetAdminActiveHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActor(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	if err := lifecycle.CanManageAdmins(actor); err != nil {
		utils.WriteLifecycleError(w, err)
		return
	}

	adminID := parseID(mux.Vars(r)["id"])
	if adminID == actor.ID {
		utils.WriteLifecycleError(w, &lifecycle.AuthorizationError{Reason: "cannot deactivate your own account"})
		return
	}

	var req setActiveRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var admin models.User
	if err := database.DB.
		Where("id = ? AND role IN ?", adminID, []lifecycle.Role{lifecycle.RoleAdmin, lifecycle.RoleSuperAdmin}).
		First(&admin).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "admin", ID: adminID})
		return
	}

	if err := database.DB.Model(&admin).Update("is_active", *req.IsActive).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}
	admin.IsActive = *req.IsActive

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Admin updated",
		Data:    admin,
	})
}
