package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentCategory separates trainer identity documents from education
// credentials. Both share the same verification workflow.
type DocumentCategory string

const (
	DocumentCategoryVerification DocumentCategory = "verification"
	DocumentCategoryEducation    DocumentCategory = "education"
)

// VerificationStatus is the tri-state review workflow for a document.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationAccepted VerificationStatus = "accepted"
	VerificationRejected VerificationStatus = "rejected"
)

// TrainerDocument stores metadata for a document a trainer uploaded for
// review (the file itself lives in object storage under FilePath).
// Replacing the file or editing its descriptive fields resets the status
// back to pending and clears the prior verification stamps.
type TrainerDocument struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TrainerID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"trainerId"`
	Category     DocumentCategory `gorm:"not null;index" json:"category"`
	DocumentType string           `gorm:"not null" json:"documentType"` // e.g. "id_card", "diploma"
	Title        string           `json:"title,omitempty"`
	Description  string           `json:"description,omitempty"`

	OriginalName string `gorm:"not null" json:"originalName"`
	FileName     string `gorm:"not null" json:"fileName"`
	FilePath     string `gorm:"uniqueIndex;not null" json:"filePath"`
	MimeType     string `json:"mimeType"`
	FileSize     int64  `json:"fileSize"`
	StorageURL   string `json:"storageUrl"`

	VerificationStatus VerificationStatus `gorm:"not null;default:pending" json:"verificationStatus"`
	VerificationNotes  string             `json:"verificationNotes,omitempty"`
	VerifiedBy         *uuid.UUID         `gorm:"type:uuid" json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time         `json:"verifiedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *TrainerDocument) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
