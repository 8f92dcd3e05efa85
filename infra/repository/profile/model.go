package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the display data kept alongside a user. Its id is the user id.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"not null;size:50"`
	Currency  string    `gorm:"type:varchar(3);not null;default:'USD'"`
	AvatarURL string    `gorm:"size:2048"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return "profiles"
}
