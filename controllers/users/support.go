package users

import (
	"net/http"
	"strings"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/middleware"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"
)

type SupportQueryRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// POST /v1/support/queries
func SubmitSupportQueryHandler(w http.ResponseWriter, r *http.Request) {
	var req SupportQueryRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	sq := models.SupportQuery{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
		Status:  "pending",
	}
	if uid, ok := utils.GetUserID(r); ok && uid != 0 {
		sq.UserID = &uid
	}

	if err := database.DB.Create(&sq).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to submit query"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Query submitted, our team will reach out",
		Data:    sq,
	})
}
