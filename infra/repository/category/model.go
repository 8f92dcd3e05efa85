package category

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a user-defined income or expense category.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null;size:50"`
	Type      string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
}

func (Category) TableName() string {
	return "categories"
}
