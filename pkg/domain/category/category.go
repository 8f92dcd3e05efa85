package category

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
)

var (
	// ErrCategoryNotFound is returned when a category cannot be found or is
	// owned by another user.
	ErrCategoryNotFound = fmt.Errorf("category not found: %w", domain.ErrNotFound)
	// ErrNameRequired is returned when the category name is blank.
	ErrNameRequired = fmt.Errorf("%w: category name is required", domain.ErrValidation)
	// ErrInvalidType is returned for a type other than income or expense.
	ErrInvalidType = fmt.Errorf("%w: category type must be income or expense", domain.ErrValidation)
)

// Type labels a category as income or expense.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// Valid reports whether t is income or expense.
func (t Type) Valid() bool {
	return t == Income || t == Expense
}

// Category is a user-defined label used to organise transactions.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      Type
	CreatedAt time.Time
}

// New returns a validated category with a trimmed name.
func New(userID uuid.UUID, name string, t Type) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      t,
		CreatedAt: time.Now().UTC(),
	}, nil
}
