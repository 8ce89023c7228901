package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID          string     `bun:"id,pk" json:"id"`
	Title       string     `bun:"title,notnull" json:"title"`
	Description string     `bun:"description,notnull" json:"description"`
	Location    string     `bun:"location,notnull" json:"location"`
	Date        time.Time  `bun:"date,notnull" json:"date"`
	OwnerID     string     `bun:"owner_id,notnull" json:"owner_id"`
	BannerID    string     `bun:"banner_id,nullzero" json:"banner_id,omitempty"`
	CanceledAt  *time.Time `bun:"canceled_at" json:"canceled_at"`
	CreatedAt   time.Time  `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull" json:"updated_at"`

	Owner  *User `bun:"rel:belongs-to,join:owner_id=id" json:"owner,omitempty"`
	Banner *File `bun:"rel:belongs-to,join:banner_id=id" json:"banner,omitempty"`
}

// EventRequest is the JSON body accepted on event creation. The length limits
// match the events table columns.
type EventRequest struct {
	Title       string `json:"title" validate:"required,max=55"`
	Description string `json:"description" validate:"required,max=255"`
	Location    string `json:"location" validate:"required,max=150"`
	Date        string `json:"date" validate:"required"`
	BannerID    string `json:"banner_id"`
}

// EventUpdateRequest carries a partial update; nil fields are left untouched.
type EventUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=55"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Location    *string `json:"location" validate:"omitempty,max=150"`
	Date        *string `json:"date"`
	BannerID    *string `json:"banner_id"`
}

// EventView is the response shape for show and update: the stored record plus
// the derived temporal flags and trimmed associations.
type EventView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Date        time.Time  `json:"date"`
	Owner       *OwnerView `json:"owner"`
	Past        bool       `json:"past"`
	Cancelable  bool       `json:"cancelable"`
	CanceledAt  *time.Time `json:"canceled_at"`
	Banner      *FileView  `json:"banner"`
}

type OwnerView struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Avatar *FileView `json:"avatar,omitempty"`
}
