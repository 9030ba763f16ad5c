package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

type User struct {
	ID            string    `json:"id"` // Auth provider UUID
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Bio           *string   `json:"bio,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Skills        []string  `json:"skills,omitempty"`
	Education     *string   `json:"education,omitempty"`
	Experience    *string   `json:"experience,omitempty"`
	UserType      string    `json:"user_type"`
	InstitutionID *string   `json:"institution_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProfileUpdate carries the mutable profile fields. Nil means "leave as is".
type ProfileUpdate struct {
	Name       *string  `json:"name,omitempty"`
	Bio        *string  `json:"bio,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Location   *string  `json:"location,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Education  *string  `json:"education,omitempty"`
	Experience *string  `json:"experience,omitempty"`
}

type UserRepository interface {
	Upsert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id string, update *ProfileUpdate) (*User, error)
	SetInstitution(ctx context.Context, id string, institutionID string) error
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*User, error)
}

type AuthUsecase interface {
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
