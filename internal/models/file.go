package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	FileTypeBanner = "banner"
	FileTypeAvatar = "avatar"
)

type File struct {
	bun.BaseModel `bun:"table:files,alias:f"`

	ID        string    `bun:"id,pk" json:"id"`
	Path      string    `bun:"path,notnull" json:"path"`
	URL       string    `bun:"url,notnull" json:"url"`
	Type      string    `bun:"type,notnull" json:"type"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

// FileView is the trimmed file shape attached to event and user views.
type FileView struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

func (f *File) View() *FileView {
	if f == nil {
		return nil
	}
	return &FileView{ID: f.ID, Path: f.Path, URL: f.URL}
}
