package entities

import "time"

// Contributor is a voice-dataset participant. Stored in the "owners" table.
type Contributor struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(64);uniqueIndex;not null"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Contributor) TableName() string {
	return "owners"
}
