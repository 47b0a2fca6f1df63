package models

import "time"

// Profile represents a tracked player (one-to-one with User). PlayerName is
// the in-game handle as last extracted; it may lag the account name when the
// player renames.
type Profile struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
	// Active indicates whether the profile is still tracked. Soft-state
	// instead of physically deleting the record. Defaults to true.
	Active     bool   `gorm:"default:true;not null"`
	UserID     uint   `gorm:"uniqueIndex;not null"` // one-to-one relation
	User       User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PlayerName string `gorm:"size:64"`
	Platform   string `gorm:"size:32"` // pc / ps5
	// Screenshots is a one-to-many relation from Profile to Screenshot
	Screenshots []Screenshot `gorm:"foreignKey:ProfileID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
