package models

import (
	"time"

	"github.com/jrbautista/tindahan-pos/pkg/enums"
)

// User is a register operator. Credential handling lives outside this service;
// the API only consumes the identity minted into the access token.
type User struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Username  string         `gorm:"column:username;not null;uniqueIndex"`
	Role      enums.UserRole `gorm:"column:role;not null;default:'cashier'"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
