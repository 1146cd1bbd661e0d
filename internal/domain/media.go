package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaAsset mirrors an object-storage file with descriptive metadata.
// FilePath is the natural key used to reconcile rows against the storage
// listing; the mirrored metadata may be stale and is reconciled on demand.
type MediaAsset struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Folder      string    `gorm:"not null;index" json:"folder"`
	FilePath    string    `gorm:"uniqueIndex;not null" json:"filePath"`
	URL         string    `gorm:"not null" json:"url"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsAssigned  bool      `gorm:"not null;default:false" json:"isAssigned"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (m *MediaAsset) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
