package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Recording is the metadata row of a saved take.
// At most one row exists per (Owner, SentenceID).
type Recording struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Owner       string         `json:"owner" gorm:"type:varchar(64);not null;uniqueIndex:idx_recordings_owner_sentence"`
	Filename    string         `json:"filename" gorm:"type:varchar(255);not null"`
	SentenceID  uint           `json:"sentence_id" gorm:"not null;uniqueIndex:idx_recordings_owner_sentence"`
	Sentence    string         `json:"sentence" gorm:"type:text"`
	StorageURL  string         `json:"storage_url" gorm:"type:text;not null"`
	ContentType string         `json:"content_type" gorm:"type:varchar(100)"`
	SizeBytes   int64          `json:"size_bytes"`
	Metadata    datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Recording) TableName() string {
	return "recordings"
}

// RecordingKey addresses a recording by contributor and sentence
type RecordingKey struct {
	Contributor string
	SentenceID  uint
}

// OwnerCount is a per-contributor recording count
type OwnerCount struct {
	Owner string `json:"owner"`
	Count int64  `json:"count"`
}
