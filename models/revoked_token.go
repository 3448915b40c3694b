package models

import "time"

// RevokedToken is the DB fallback for access-token revocation when Redis is
// not configured. A row existing for a jti means that token is dead.
type RevokedToken struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	RevokedAt time.Time `json:"revoked_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
