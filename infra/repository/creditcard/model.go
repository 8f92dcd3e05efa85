package creditcard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditCard represents a credit card record in the database.
type CreditCard struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"not null;size:100"`
	LimitAmount     decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	OpeningSpent    decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	CurrentSpent    decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	BillingCycleDay int             `gorm:"not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (CreditCard) TableName() string {
	return "credit_cards"
}
