// Package auth stores the admin credential that gates the local API's
// mutating surface. Passwords are hashed with argon2id and a per-credential
// salt; plaintext never touches the database.
package auth

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type AdminCredential struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"size:50;not null;uniqueIndex" json:"username"`
	PasswordHash string       `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (AdminCredential) TableName() string {
	return "admin_credentials"
}
