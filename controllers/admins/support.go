package admins

import (
	"net/http"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/middleware"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"

	"github.com/gorilla/mux"
)

type SupportSettingRequest struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description"`
	Link        string `json:"link" validate:"omitempty,url"`
	Position    int    `json:"position"`
}

// GET /v1/admin/support/settings
func SupportSettingListHandler(w http.ResponseWriter, r *http.Request) {
	var settings []models.SupportSetting
	if err := database.DB.Order("position ASC, id ASC").Find(&settings).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    settings,
	})
}

// POST /v1/admin/support/settings
func CreateSupportSettingHandler(w http.ResponseWriter, r *http.Request) {
	var req SupportSettingRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	setting := models.SupportSetting{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Position:    req.Position,
	}
	if err := database.DB.Create(&setting).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create support entry"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Support entry created",
		Data:    setting,
	})
}

// PUT /v1/admin/support/settings/{id}
func UpdateSupportSettingHandler(w http.ResponseWriter, r *http.Request) {
	settingID := parseID(mux.Vars(r)["id"])

	var req SupportSettingRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var setting models.SupportSetting
	if err := database.DB.First(&setting, settingID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "support entry", ID: settingID})
		return
	}

	setting.Title = req.Title
	setting.Description = req.Description
	setting.Link = req.Link
	setting.Position = req.Position

	if err := database.DB.Save(&setting).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update support entry"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Support entry updated",
		Data:    setting,
	})
}

// DELETE /v1/admin/support/settings/{id}
func DeleteSupportSettingHandler(w http.ResponseWriter, r *http.Request) {
	settingID := parseID(mux.Vars(r)["id"])

	var setting models.SupportSetting
	if err := database.DB.First(&setting, settingID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "support entry", ID: settingID})
		return
	}

	if err := database.DB.Delete(&setting).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete support entry"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Support entry deleted"})
}

// GET /v1/admin/support/queries?status=pending|resolved
func SupportQueryListHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	query := db.Model(&models.SupportQuery{})
	if status := r.URL.Query().Get("status"); status == "pending" || status == "resolved" {
		query = query.Where("status = ?", status)
	}

	var queries []models.SupportQuery
	if err := query.Order("created_at DESC").Find(&queries).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    queries,
	})
}

// PUT /v1/admin/support/queries/{id}/resolve
func ResolveSupportQueryHandler(w http.ResponseWriter, r *http.Request) {
	queryID := parseID(mux.Vars(r)["id"])

	var sq models.SupportQuery
	if err := database.DB.First(&sq, queryID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "support query", ID: queryID})
		return
	}

	if sq.Status != "resolved" {
		if err := database.DB.Model(&sq).Update("status", "resolved").Error; err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
			return
		}
		sq.Status = "resolved"
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Query resolved",
		Data:    sq,
	})
}
