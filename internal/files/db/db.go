package db

import (
	"context"
	"database/sql"
	"errors"

	"ms-events/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// CreateFile → insert a new file record.
func (d *DB) CreateFile(file models.File) error {
	_, err := d.Bun.NewInsert().Model(&file).Exec(context.Background())
	return err
}

// GetFileByID → fetch one file record. Returns (nil, nil) when absent.
func (d *DB) GetFileByID(id string) (*models.File, error) {
	var file models.File
	err := d.Bun.NewSelect().
		Model(&file).
		Where("f.id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}
