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

// GetUserByID → fetch one user. Returns (nil, nil) when absent.
func (d *DB) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("u.id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserWithAvatar → fetch one user with the avatar file attached.
func (d *DB) GetUserWithAvatar(id string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Relation("Avatar").
		Where("u.id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail → fetch one user by email, avatar attached.
func (d *DB) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Relation("Avatar").
		Where("u.email = ?", email).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser → insert a new user.
func (d *DB) CreateUser(user models.User) error {
	_, err := d.Bun.NewInsert().Model(&user).Exec(context.Background())
	return err
}

// UpdateUser → update the mutable profile columns.
func (d *DB) UpdateUser(user models.User) error {
	_, err := d.Bun.NewUpdate().
		Model(&user).
		Column("name", "email", "password_hash", "avatar_id", "updated_at").
		Where("id = ?", user.ID).
		Exec(context.Background())
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
