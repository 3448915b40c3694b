package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/middleware"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,max=100"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	ReferralCode         string `json:"referral_code"`
}

// POST /v1/auth/register
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.ReferralCode = strings.TrimSpace(req.ReferralCode)

	db := database.DB

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Email is already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("register: email lookup failed")
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// Referral handling: invalid codes are rejected, empty codes are allowed.
	var referrer *models.User
	if req.ReferralCode != "" {
		var refOwner models.User
		if err := db.Where("reff_code = ?", req.ReferralCode).First(&refOwner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid referral code"})
				return
			}
			logrus.WithError(err).WithField("code", req.ReferralCode).Error("register: referral lookup failed")
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
		referrer = &refOwner
	}

	code, err := generateUniqueReffCode(db, 100)
	if err != nil {
		logrus.WithError(err).Error("register: referral code generation failed")
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	setting, err := models.GetSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	newUser := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     lifecycle.RoleUser,
		IsActive: true,
		ReffCode: code,
		Points:   setting.JoiningAmount,
	}
	if referrer != nil {
		newUser.ReffBy = &referrer.ID
	}
	if err := newUser.HashPassword(); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		if setting.JoiningAmount > 0 {
			note := "Joining bonus"
			if err := tx.Create(&models.RewardTransaction{
				UserID:    newUser.ID,
				Amount:    setting.JoiningAmount,
				Type:      models.TxJoiningBonus,
				Reference: utils.GenerateReference(newUser.ID),
				Note:      &note,
			}).Error; err != nil {
				return err
			}
		}
		if referrer != nil && setting.ReferralPoint > 0 {
			if err := tx.Model(&models.User{}).
				Where("id = ?", referrer.ID).
				Update("points", gorm.Expr("points + ?", setting.ReferralPoint)).Error; err != nil {
				return err
			}
			note := "Referral bonus for " + newUser.Name
			if err := tx.Create(&models.RewardTransaction{
				UserID:    referrer.ID,
				Amount:    setting.ReferralPoint,
				Type:      models.TxReferralBonus,
				Reference: utils.GenerateReference(referrer.ID),
				Note:      &note,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Error("register: create failed")
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Registration failed, please try again"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(newUser.ID, newUser.Role)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create token"})
		return
	}
	refreshJTI, err := utils.GenerateRefreshToken(newUser.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store refresh token"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Registration successful, welcome!",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
			"refresh_token": refreshJTI,
			"user": map[string]interface{}{
				"id":        newUser.ID,
				"name":      newUser.Name,
				"email":     newUser.Email,
				"reff_code": newUser.ReffCode,
				"points":    newUser.Points,
			},
		},
	})
}

func generateUniqueReffCode(db *gorm.DB, maxAttempts int) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code := utils.GenerateReffCode()
		var count int64
		if err := db.Model(&models.User{}).Where("reff_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique referral code after %d attempts", maxAttempts)
}
