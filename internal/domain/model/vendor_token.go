package model

import (
	"time"
)

// VendorToken is the cached vendor session token for one credential
type VendorToken struct {
	CredentialKey string    `gorm:"primaryKey;size:64" json:"credential_key"`
	Value         string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt     time.Time `gorm:"not null" json:"expires_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (VendorToken) TableName() string {
	return "vendor_tokens"
}

// ValidAt reports whether the token can still be used at now
func (t *VendorToken) ValidAt(now time.Time) bool {
	return t != nil && t.Value != "" && now.Before(t.ExpiresAt)
}
