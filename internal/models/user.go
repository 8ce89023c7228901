package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:"id,pk" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Email        string    `bun:"email,unique,notnull" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	AvatarID     string    `bun:"avatar_id,nullzero" json:"avatar_id,omitempty"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updated_at"`

	Avatar *File `bun:"rel:belongs-to,join:avatar_id=id" json:"avatar,omitempty"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=10"`
}

type SessionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserUpdateRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`
	OldPassword     string `json:"oldPassword" validate:"omitempty,min=6,max=10"`
	Password        string `json:"password" validate:"omitempty,min=6,max=10"`
	ConfirmPassword string `json:"confirmPassword"`
	AvatarID        string `json:"avatar_id"`
}

// UserView is the public shape of a user returned by signup, login and
// profile update.
type UserView struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar *FileView `json:"avatar"`
}

// SessionResponse pairs the user with a freshly issued bearer token.
type SessionResponse struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}
