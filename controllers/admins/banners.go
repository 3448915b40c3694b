package admins

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admin/banners
func BannerListHandler(w http.ResponseWriter, r *http.Request) {
	var banners []models.Banner
	if err := database.DB.Order("position ASC, id ASC").Find(&banners).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    banners,
	})
}

// POST /v1/admin/banners (multipart: image + title, target_url, position, status)
func CreateBannerHandler(w http.ResponseWriter, r *http.Request) {
	objectKey, ok := receiveImage(w, r, "image", "banners")
	if !ok {
		return
	}

	position, _ := strconv.Atoi(r.FormValue("position"))
	status := r.FormValue("status")
	if status != "Inactive" {
		status = "Active"
	}

	banner := models.Banner{
		Title:     strings.TrimSpace(r.FormValue("title")),
		ImageURL:  objectKey,
		TargetURL: strings.TrimSpace(r.FormValue("target_url")),
		Position:  position,
		Status:    status,
	}
	if err := database.DB.Create(&banner).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create banner"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Banner created",
		Data:    banner,
	})
}

// PUT /v1/admin/banners/{id} (multipart; image optional)
func UpdateBannerHandler(w http.ResponseWriter, r *http.Request) {
	bannerID := parseID(mux.Vars(r)["id"])

	var banner models.Banner
	if err := database.DB.First(&banner, bannerID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "banner", ID: bannerID})
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart body"})
		return
	}

	if _, handler, err := r.FormFile("image"); err == nil && handler != nil {
		objectKey, ok := receiveImage(w, r, "image", "banners")
		if !ok {
			return
		}
		if banner.ImageURL != "" {
			_ = utils.DeleteFromS3(banner.ImageURL)
		}
		banner.ImageURL = objectKey
	}

	if v := r.FormValue("title"); v != "" {
		banner.Title = strings.TrimSpace(v)
	}
	if v := r.FormValue("target_url"); v != "" {
		banner.TargetURL = strings.TrimSpace(v)
	}
	if v := r.FormValue("position"); v != "" {
		if position, err := strconv.Atoi(v); err == nil {
			banner.Position = position
		}
	}
	if v := r.FormValue("status"); v == "Active" || v == "Inactive" {
		banner.Status = v
	}

	if err := database.DB.Save(&banner).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update banner"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Banner updated",
		Data:    banner,
	})
}

// DELETE /v1/admin/banners/{id}
func DeleteBannerHandler(w http.ResponseWriter, r *http.Request) {
	bannerID := parseID(mux.Vars(r)["id"])

	var banner models.Banner
	if err := database.DB.First(&banner, bannerID).Error; err != nil {
		utils.WriteLifecycleError(w, &lifecycle.NotFoundError{Entity: "banner", ID: bannerID})
		return
	}

	if banner.ImageURL != "" {
		_ = utils.DeleteFromS3(banner.ImageURL)
	}
	if err := database.DB.Delete(&banner).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete banner"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Banner deleted"})
}
