package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a bank account record in the database.
type Account struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name           string          `gorm:"not null;size:100"`
	Type           string          `gorm:"type:varchar(20);not null"`
	InitialBalance decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	CurrentBalance decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Account) TableName() string {
	return "accounts"
}
