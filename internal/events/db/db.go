package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ms-events/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// GetEventByID → fetch one event without associations. Returns (nil, nil)
// when the event does not exist.
func (d *DB) GetEventByID(id string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("e.id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetEventWithAssociations → fetch one event with its banner and its owner,
// avatar included.
func (d *DB) GetEventWithAssociations(id string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Relation("Banner").
		Relation("Owner").
		Relation("Owner.Avatar").
		Where("e.id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEventsByOwner → all events owned by a user, canceled ones included,
// ascending by date.
func (d *DB) ListEventsByOwner(ownerID string) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Relation("Banner").
		Relation("Owner").
		Where("e.owner_id = ?", ownerID).
		Order("date ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListEventsBetween → non-canceled events with a date inside [from, to],
// ascending by date.
func (d *DB) ListEventsBetween(from, to time.Time) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Relation("Banner").
		Relation("Owner").
		Where("e.date BETWEEN ? AND ?", from, to).
		Where("e.canceled_at IS NULL").
		Order("date ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent → insert a new event.
func (d *DB) CreateEvent(event models.Event) error {
	_, err := d.Bun.NewInsert().Model(&event).Exec(context.Background())
	return err
}

// UpdateEvent → update the mutable columns. owner_id and canceled_at are
// never written here.
func (d *DB) UpdateEvent(event models.Event) error {
	_, err := d.Bun.NewUpdate().
		Model(&event).
		Column("title", "description", "location", "date", "banner_id", "updated_at").
		Where("id = ?", event.ID).
		Exec(context.Background())
	return err
}

// CancelEvent → soft-delete by stamping canceled_at. Rows are never removed.
func (d *DB) CancelEvent(id string, at time.Time) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Event)(nil)).
		Set("canceled_at = ?", at).
		Where("id = ?", id).
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
