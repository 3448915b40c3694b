package models

import "gorm.io/gorm"

// Setting is the single-row site configuration: logo, referral economics and
// the content block shown under "how referral works". AutoApproveSuperAdmin
// is the explicit policy flag for whether super-admin authored tasks skip the
// pending queue.
type Setting struct {
	ID                    uint    `gorm:"primaryKey" json:"id"`
	Logo                  string  `gorm:"size:500" json:"logo"`
	ReferralPoint         float64 `gorm:"type:decimal(15,2);default:0" json:"referral_point"`
	JoiningAmount         float64 `gorm:"type:decimal(15,2);default:0" json:"joining_amount"`
	HowReferralWorks      string  `gorm:"type:text" json:"how_referral_works"`
	AutoApproveSuperAdmin bool    `gorm:"default:false" json:"auto_approve_super_admin"`
}

// GetSetting returns the settings row, creating the default one on first use.
func GetSetting(db *gorm.DB) (*Setting, error) {
	var setting Setting
	if err := db.First(&setting).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		if err := db.Create(&setting).Error; err != nil {
			return nil, err
		}
	}
	return &setting, nil
}
