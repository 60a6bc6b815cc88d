package songs

import "time"

// Suggestion is one row of the songs table. Rows are append-only.
type Suggestion struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Family    string    `gorm:"type:text;not null"`
	Song      string    `gorm:"type:text;not null"`
	Artist    *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

func (Suggestion) TableName() string {
	return "songs"
}
