package models

import "time"

// Screenshot represents one uploaded stats capture. RawText keeps the chosen
// OCR transcription so the parser can be re-run later without re-OCR (see
// process/reparse).
type Screenshot struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FileName    string  `gorm:"size:255;not null"`
	StorePath   string  `gorm:"column:store_path;size:512"` // relative path under the upload base
	ProfileID   uint    `gorm:"index;not null"`
	Profile     Profile `gorm:"foreignKey:ProfileID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ContentType string  `gorm:"size:128"`
	// Layout is the detected screenshot layout: player_card or career_page
	// ("" when undetected).
	Layout  string `gorm:"size:32;index"`
	RawText string `gorm:"type:text"`
	// Mark screenshot as failed for OCR processing (record kept so the
	// front-end/admin can review)
	Failed       bool   `gorm:"default:false;index"`
	FailedReason string `gorm:"size:255"`
}
