package models

import (
	"time"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/lifecycle"

	"golang.org/x/crypto/bcrypt"
)

// User is one account record for every role: end users, admins and
// super-admins share the table, discriminated by Role.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      lifecycle.Role `gorm:"type:enum('user','admin','super-admin');default:'user'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	ReffCode  string         `gorm:"size:20;uniqueIndex" json:"reff_code"`
	ReffBy    *uint          `gorm:"column:reff_by" json:"reff_by"`
	Points    float64        `gorm:"type:decimal(15,2);default:0" json:"points"`
	Profile   *string        `gorm:"type:varchar(255);null" json:"profile,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Actor bridges the account record to the lifecycle engine's explicit acting
// identity.
func (u *User) Actor() lifecycle.Actor {
	return lifecycle.Actor{ID: u.ID, Role: u.Role}
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// ValidatePassword checks if the provided password matches the hashed password
func (u *User) ValidatePassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// GetUserByEmail retrieves an active account by email
func GetUserByEmail(email string) (*User, error) {
	var user User
	result := database.DB.Where("email = ? AND is_active = ?", email, true).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
