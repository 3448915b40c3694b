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

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	Status      string `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// GET /v1/admin/categories
func CategoryListHandler(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := database.DB.Order("position ASC, id ASC").Find(&categories).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    categories,
	})
}

// POST /v1/admin/categories
func CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Position,
		Status:      req.Status,
	}
	if category.Status == "" {
		category.Status = "Active"
	}

	if err := database.DB.Create(&category).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create category"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Category created",
		Data:    category,
	})
}

// PUT /v1/admin/categories/{id}
func UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := parseID(mux.Vars(r)["id"])

	var req CategoryRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var category models.Category
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "category", ID: categoryID})
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Position = req.Position
	if req.Status != "" {
		category.Status = req.Status
	}

	if err := database.DB.Save(&category).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update category"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Category updated",
		Data:    category,
	})
}

// DELETE /v1/admin/categories/{id}
func DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := parseID(mux.Vars(r)["id"])

	var category models.Category
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "category", ID: categoryID})
		return
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete category"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Category deleted"})
}
