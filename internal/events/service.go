package events

import (
	"fmt"
	"time"

	"ms-events/internal/models"

	"github.com/google/uuid"
)

type DBLayer interface {
	CreateEvent(event models.Event) error
	GetEventByID(id string) (*models.Event, error)
	GetEventWithAssociations(id string) (*models.Event, error)
	ListEventsByOwner(ownerID string) ([]models.Event, error)
	ListEventsBetween(from, to time.Time) ([]models.Event, error)
	UpdateEvent(event models.Event) error
	CancelEvent(id string, at time.Time) error
	GetFileByID(id string) (*models.File, error)
}

type LifecyclePublisher interface {
	PublishEventCreated(event models.Event) error
	PublishEventUpdated(event models.Event) error
	PublishEventCanceled(event models.Event) error
}

type ViewCache interface {
	GetView(id string) (*models.EventView, error)
	SetView(view *models.EventView) error
	Invalidate(id string) error
}

// EventService orchestrates the event lifecycle: it loads records through the
// DB layer, runs the guard checks, applies the temporal policy and fires the
// best-effort side channels (Kafka, view cache). Kafka and Cache may be nil.
type EventService struct {
	DB    DBLayer
	Kafka LifecyclePublisher
	Cache ViewCache

	// Now is read once per operation so past/cancelable stay consistent
	// within a single response.
	Now func() time.Time
}

func NewEventService(db DBLayer, kafka LifecyclePublisher, cache ViewCache) *EventService {
	return &EventService{DB: db, Kafka: kafka, Cache: cache, Now: time.Now}
}

// Create validates the request and persists a new event owned by the caller.
func (s *EventService) Create(callerID string, req models.EventRequest) (*models.Event, error) {
	now := s.Now()

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, Validation(MsgInvalidDate)
	}

	if req.BannerID != "" {
		if err := s.checkBanner(req.BannerID, MsgBannerNotFound); err != nil {
			return nil, err
		}
	}

	if Past(date, now) {
		return nil, Validation(MsgCreatePastDate)
	}

	event := models.Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        date,
		OwnerID:     callerID,
		BannerID:    req.BannerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.DB.CreateEvent(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if s.Kafka != nil {
		if err := s.Kafka.PublishEventCreated(event); err != nil {
			fmt.Printf("Kafka publish error (event created): %v\n", err)
		}
	}

	return &event, nil
}

// Get loads an event with its owner (and the owner's avatar) and banner and
// computes the temporal flags at response time.
func (s *EventService) Get(id string) (*models.EventView, error) {
	if s.Cache != nil {
		if view, err := s.Cache.GetView(id); err == nil && view != nil {
			return view, nil
		}
	}

	event, err := s.DB.GetEventWithAssociations(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load event %s: %w", id, err)
	}
	if event == nil {
		return nil, NotFound(MsgEventNotFound)
	}

	view := s.view(event, s.Now())

	if s.Cache != nil {
		_ = s.Cache.SetView(view)
	}

	return view, nil
}

// List returns events ordered ascending by date. With where=just-my-events it
// returns everything the caller owns, canceled events included; otherwise it
// returns the non-canceled events of the month containing dateParam.
func (s *EventService) List(callerID, where, dateParam string) ([]models.Event, error) {
	if where == ListModeOwn {
		return s.DB.ListEventsByOwner(callerID)
	}

	if dateParam == "" {
		return nil, Validation(MsgInvalidDate)
	}
	day, err := parseDate(dateParam)
	if err != nil {
		return nil, Validation(MsgInvalidDate)
	}

	from, to := monthWindow(day)
	return s.DB.ListEventsBetween(from, to)
}

// Update merges the provided fields into the stored event after the guard and
// validation checks pass, then re-fetches the record with its associations.
func (s *EventService) Update(callerID, id string, req models.EventUpdateRequest) (*models.EventView, error) {
	now := s.Now()

	event, err := s.DB.GetEventByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load event %s: %w", id, err)
	}

	if err := guardUpdate(event, callerID, now); err != nil {
		return nil, err
	}

	if req.BannerID != nil && *req.BannerID != "" && *req.BannerID != event.BannerID {
		if err := s.checkBanner(*req.BannerID, MsgImageNotFound); err != nil {
			return nil, err
		}
	}

	var newDate *time.Time
	if req.Date != nil && *req.Date != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, Validation(MsgInvalidDate)
		}
		if Past(date, now) {
			return nil, Validation(MsgOldDatesNotAllowed)
		}
		newDate = &date
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if newDate != nil {
		event.Date = *newDate
	}
	if req.BannerID != nil && *req.BannerID != "" {
		event.BannerID = *req.BannerID
	}
	event.UpdatedAt = now

	if err := s.DB.UpdateEvent(*event); err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", id, err)
	}

	if s.Cache != nil {
		_ = s.Cache.Invalidate(id)
	}

	updated, err := s.DB.GetEventWithAssociations(id)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("failed to reload event %s: %w", id, err)
	}

	if s.Kafka != nil {
		if err := s.Kafka.PublishEventUpdated(*updated); err != nil {
			fmt.Printf("Kafka publish error (event updated): %v\n", err)
		}
	}

	return s.view(updated, now), nil
}

// Cancel soft-deletes an event by stamping canceled_at. Cancellation is
// terminal: the stamp is never cleared and a second cancel is rejected.
func (s *EventService) Cancel(callerID, id string) error {
	now := s.Now()

	event, err := s.DB.GetEventByID(id)
	if err != nil {
		return fmt.Errorf("failed to load event %s: %w", id, err)
	}

	if err := guardCancel(event, callerID, now); err != nil {
		return err
	}

	if err := s.DB.CancelEvent(id, now); err != nil {
		return fmt.Errorf("failed to cancel event %s: %w", id, err)
	}

	if s.Cache != nil {
		_ = s.Cache.Invalidate(id)
	}

	if s.Kafka != nil {
		canceled := *event
		canceled.CanceledAt = &now
		if err := s.Kafka.PublishEventCanceled(canceled); err != nil {
			fmt.Printf("Kafka publish error (event canceled): %v\n", err)
		}
	}

	return nil
}

// checkBanner rejects banner references that do not resolve to a stored File
// of type banner. notFoundMsg differs between create and update.
func (s *EventService) checkBanner(bannerID, notFoundMsg string) error {
	file, err := s.DB.GetFileByID(bannerID)
	if err != nil {
		return fmt.Errorf("failed to look up banner %s: %w", bannerID, err)
	}
	if file == nil {
		return Validation(notFoundMsg)
	}
	if file.Type != models.FileTypeBanner {
		return Validation(MsgBannerWrongType)
	}
	return nil
}

func (s *EventService) view(event *models.Event, now time.Time) *models.EventView {
	view := &models.EventView{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		Date:        event.Date,
		Past:        Past(event.Date, now),
		Cancelable:  Cancelable(event, now),
		CanceledAt:  event.CanceledAt,
		Banner:      event.Banner.View(),
	}
	if event.Owner != nil {
		view.Owner = &models.OwnerView{
			ID:     event.Owner.ID,
			Name:   event.Owner.Name,
			Avatar: event.Owner.Avatar.View(),
		}
	}
	return view
}
