package admins

import (
	"net/http"
	"time"

	"github.com/abhijan2402/tomarket-admin/middleware"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// POST /v1/admin/login
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	admin, err := models.GetUserByEmail(req.Email)
	if err != nil || !admin.Role.IsReviewer() {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Invalid email or password",
		})
		return
	}

	if locked, retry := middleware.IsAccountLocked(admin.ID); locked {
		utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
			Success: false,
			Message: "Too many login attempts, please try again later",
			Data:    map[string]interface{}{"retry_after_seconds": int(retry.Seconds())},
		})
		return
	}

	if !admin.ValidatePassword(req.Password) {
		middleware.RecordFailedLogin(admin.ID)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Invalid email or password",
		})
		return
	}
	middleware.ResetFailedLogin(admin.ID)

	token, err := utils.GenerateAccessToken(admin.ID, admin.Role)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to create token",
		})
		return
	}
	refreshJTI, err := utils.GenerateRefreshToken(admin.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to store refresh token",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"access_token":  token,
			"access_expire": time.Now().Add(6 * time.Hour).UTC().Format(time.RFC3339),
			"refresh_token": refreshJTI,
			"admin": map[string]interface{}{
				"id":    admin.ID,
				"name":  admin.Name,
				"email": admin.Email,
				"role":  admin.Role,
			},
		},
	})
}
