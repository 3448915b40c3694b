package models

import "time"

// Ledger row types. Joining bonuses are credited to the new account itself,
// referral bonuses to the referrer.
const (
	TxTaskReward    = "task_reward"
	TxJoiningBonus  = "joining_bonus"
	TxReferralBonus = "referral_bonus"
)

// RewardTransaction is one ledger row for points credited to a user: task
// reward payouts, joining bonuses and referral bonuses. Rows are append-only.
type RewardTransaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ProofID   *uint     `gorm:"index" json:"proof_id,omitempty"`
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type      string    `gorm:"type:enum('task_reward','joining_bonus','referral_bonus');not null" json:"type"`
	Reference string    `gorm:"size:50;uniqueIndex" json:"reference"`
	Note      *string   `gorm:"size:255" json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
