package models

import (
	"time"

	"github.com/google/uuid"
)

// Sweet is the core aggregate for this bounded context: one inventory record
// per product. Quantity is the only field mutated by the stock operations and
// never goes below zero.
type Sweet struct {
	ID          uuid.UUID
	Name        SweetName
	Category    string
	Description string
	ImageURL    string
	Price       float64
	Quantity    int
	CreatedAt   time.Time
}

// NewSweet constructs a Sweet aggregate with generated ID and current timestamp.
// Field-level constraints (price >= 0, quantity >= 0, non-empty category) are
// enforced by the domain validator before persistence.
func NewSweet(name SweetName, category string, price float64, quantity int) *Sweet {
	return &Sweet{
		ID:        uuid.New(),
		Name:      name,
		Category:  category,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	}
}
