package admins

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/middleware"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"
)

type SettingRequest struct {
	ReferralPoint         *float64 `json:"referral_point"`
	JoiningAmount         *float64 `json:"joining_amount"`
	HowReferralWorks      *string  `json:"how_referral_works"`
	AutoApproveSuperAdmin *bool    `json:"auto_approve_super_admin"`
}

// GET /v1/admin/settings
func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	setting, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Something went wrong, please try again",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    setting,
	})
}

// PUT /v1/admin/settings
func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req SettingRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB
	setting, err := models.GetSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Something went wrong, please try again",
		})
		return
	}

	updates := map[string]interface{}{}
	if req.ReferralPoint != nil {
		if *req.ReferralPoint < 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Referral point cannot be negative"})
			return
		}
		updates["referral_point"] = *req.ReferralPoint
	}
	if req.JoiningAmount != nil {
		if *req.JoiningAmount < 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Joining amount cannot be negative"})
			return
		}
		updates["joining_amount"] = *req.JoiningAmount
	}
	if req.HowReferralWorks != nil {
		updates["how_referral_works"] = *req.HowReferralWorks
	}
	if req.AutoApproveSuperAdmin != nil {
		updates["auto_approve_super_admin"] = *req.AutoApproveSuperAdmin
	}

	if len(updates) > 0 {
		if err := db.Model(setting).Updates(updates).Error; err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
				Success: false,
				Message: "Failed to save settings",
			})
			return
		}
		db.First(setting)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Settings updated",
		Data:    setting,
	})
}

// POST /v1/admin/settings/logo (multipart field "logo")
func UploadLogoHandler(w http.ResponseWriter, r *http.Request) {
	objectKey, ok := receiveImage(w, r, "logo", "logo")
	if !ok {
		return
	}

	db := database.DB
	setting, err := models.GetSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	if setting.Logo != "" {
		_ = utils.DeleteFromS3(setting.Logo)
	}
	if err := db.Model(setting).Update("logo", objectKey).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to save settings"})
		return
	}

	url, err := utils.GenerateSignedURL(objectKey, 3600)
	if err != nil {
		url = ""
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Logo updated",
		Data: map[string]interface{}{
			"logo":     objectKey,
			"logo_url": url,
		},
	})
}

// receiveImage reads one multipart image, validates extension, size and MIME
// sniff, uploads it to the object store and returns the object key. On any
// failure it writes the response itself and returns ok=false.
func receiveImage(w http.ResponseWriter, r *http.Request, field, prefix string) (string, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart body"})
		return "", false
	}
	file, handler, err := r.FormFile(field)
	if err != nil || handler == nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Image file is required"})
		return "", false
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(handler.Filename))
	allowedExts := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	}
	if !allowedExts[ext] {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Image must be JPG/PNG/WEBP"})
		return "", false
	}
	if handler.Size > 5<<20 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Image must be at most 5MB"})
		return "", false
	}

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Failed to read image"})
		return "", false
	}
	detected := http.DetectContentType(buf[:n])
	switch detected {
	case "image/jpeg", "image/png", "image/webp":
	default:
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Image must be JPG/PNG/WEBP"})
		return "", false
	}

	if _, err := file.Seek(0, 0); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Failed to read image"})
		return "", false
	}
	imageBytes, err := io.ReadAll(file)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Failed to read image"})
		return "", false
	}

	imgName := prefix + "_" + strconv.FormatInt(time.Now().UnixNano(), 10) + ext
	objectKey := utils.ObjectKey(prefix, imgName)
	if err := utils.UploadToS3(objectKey, bytes.NewReader(imageBytes), int64(len(imageBytes))); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to upload image"})
		return "", false
	}
	return objectKey, true
}
