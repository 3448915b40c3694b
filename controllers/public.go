package controllers

import (
	"net/http"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"
)

// GET /health
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	healthy := true
	if database.DB != nil {
		if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
			healthy = false
		}
	} else {
		healthy = false
	}
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	utils.WriteJSON(w, status, utils.APIResponse{
		Success: healthy,
		Message: "Health check",
		Data:    map[string]interface{}{"database": healthy},
	})
}

// GET /v1/settings/logo
func LogoHandler(w http.ResponseWriter, r *http.Request) {
	setting, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	url := ""
	if setting.Logo != "" {
		if signed, err := utils.GenerateSignedURL(setting.Logo, 3600); err == nil {
			url = signed
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"logo": setting.Logo, "logo_url": url},
	})
}

// GET /v1/banners
func BannersHandler(w http.ResponseWriter, r *http.Request) {
	var banners []models.Banner
	if err := database.DB.
		Where("status = ?", "Active").
		Order("position ASC, id ASC").
		Find(&banners).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	type BannerItem struct {
		models.Banner
		SignedURL string `json:"signed_url,omitempty"`
	}
	items := make([]BannerItem, 0, len(banners))
	for _, b := range banners {
		item := BannerItem{Banner: b}
		if b.ImageURL != "" {
			if signed, err := utils.GenerateSignedURL(b.ImageURL, 3600); err == nil {
				item.SignedURL = signed
			}
		}
		items = append(items, item)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}

// GET /v1/support
func SupportHandler(w http.ResponseWriter, r *http.Request) {
	var settings []models.SupportSetting
	if err := database.DB.Order("position ASC, id ASC").Find(&settings).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: settings})
}
