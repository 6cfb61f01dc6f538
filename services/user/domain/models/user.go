package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names assignable at registration. The source system has no role
// gate on inventory operations; the field is stored for the admin surface.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the account aggregate. PasswordHash is a bcrypt hash and never
// leaves the domain/infrastructure layers.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser constructs a User with generated ID and current timestamp.
// An empty role defaults to customer.
func NewUser(username, email, role, passwordHash string) *User {
	if role == "" {
		role = RoleCustomer
	}
	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
