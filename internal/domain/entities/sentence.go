package entities

// Sentence is one line of the reading script. ID is its stable ordinal.
type Sentence struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Text string `json:"text" gorm:"type:text;not null"`
}

// TableName specifies the table name for GORM
func (Sentence) TableName() string {
	return "sentences"
}
