package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// DisplayName is the name shown to other group members.
	DisplayName string `json:"displayName"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in API responses.
	PasswordHash string `json:"-"`

	// PreferredCurrency is the currency all cross-currency amounts are
	// normalized into for this user (e.g., "USD", "INR").
	PreferredCurrency string `json:"preferredCurrency"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64 `json:"updatedAt"`
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash, preferredCurrency string) *User {
	now := time.Now().Unix()
	return &User{
		ID:                uuid.New().String(),
		Email:             email,
		DisplayName:       displayName,
		PasswordHash:      passwordHash,
		PreferredCurrency: preferredCurrency,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
