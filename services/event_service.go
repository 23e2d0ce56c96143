package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/senku-sen/event-management-system/auth"
	"github.com/senku-sen/event-management-system/models"
	"github.com/senku-sen/event-management-system/store"
)

// CreateEventInput carries the fields accepted at event creation.
type CreateEventInput struct {
	Title        string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	Location     string
	Category     string
	MaxAttendees int
	GroupID      *primitive.ObjectID
}

// UpdateEventInput is a partial patch; nil fields are left untouched.
type UpdateEventInput struct {
	Title        *string
	Description  *string
	StartDate    *time.Time
	EndDate      *time.Time
	Location     *string
	Status       *string
	Category     *string
	MaxAttendees *int
}

// EventService implements event CRUD with the owner-or-admin mutation gate.
type EventService struct {
	events store.EventStore
	users  store.UserStore
	groups store.GroupStore
	log    *logrus.Logger
}

// NewEventService wires an EventService.
func NewEventService(events store.EventStore, users store.UserStore, groups store.GroupStore, log *logrus.Logger) *EventService {
	return &EventService{events: events, users: users, groups: groups, log: log}
}

// Create persists a new upcoming event owned by ownerID. The owner must
// exist; the date range must be valid; a target group must exist and have
// room under its event limit.
func (s *EventService) Create(ctx context.Context, input CreateEventInput, ownerID primitive.ObjectID) (*models.EventWithOwner, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: owner", ErrNotFound)
		}
		return nil, err
	}

	if !input.EndDate.After(input.StartDate) {
		return nil, ErrInvalidDateRange
	}

	if input.GroupID != nil {
		group, err := s.groups.GetByID(ctx, *input.GroupID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("%w: group", ErrNotFound)
			}
			return nil, err
		}
		count, err := s.events.CountByGroup(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		if count >= int64(group.MaxEvents) {
			return nil, ErrGroupFull
		}
	}

	now := time.Now().UTC()
	event := &models.Event{
		ID:           primitive.NewObjectID(),
		Title:        input.Title,
		Description:  input.Description,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Location:     input.Location,
		Status:       models.EventStatusUpcoming,
		Category:     input.Category,
		MaxAttendees: input.MaxAttendees,
		CreatedBy:    ownerID,
		GroupID:      input.GroupID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.events.Create(ctx, event); err != nil {
		s.log.WithError(err).Error("failed to create event")
		return nil, err
	}

	ownerInfo := owner.Summary()
	return &models.EventWithOwner{Event: *event, Owner: &ownerInfo}, nil
}

// GetAll returns all events ascending by start date, joined with owner info.
func (s *EventService) GetAll(ctx context.Context) ([]models.EventWithOwner, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.joinOwners(ctx, events)
}

// GetByID returns one event joined with its owner's public fields.
func (s *EventService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EventWithOwner, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	joined, err := s.joinOwners(ctx, []models.Event{*event})
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

// Update applies a partial patch. Only the owner or an admin may mutate;
// when the patch touches either date field the range invariant is checked
// against the resulting combination of patch and stored values.
func (s *EventService) Update(ctx context.Context, id primitive.ObjectID, patch UpdateEventInput, actor auth.Identity) (*models.EventWithOwner, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !auth.CanMutateEvent(actor, event.CreatedBy) {
		return nil, ErrForbidden
	}

	if patch.StartDate != nil || patch.EndDate != nil {
		start, end := event.StartDate, event.EndDate
		if patch.StartDate != nil {
			start = *patch.StartDate
		}
		if patch.EndDate != nil {
			end = *patch.EndDate
		}
		if !end.After(start) {
			return nil, ErrInvalidDateRange
		}
	}

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.StartDate != nil {
		event.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		event.EndDate = *patch.EndDate
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.Status != nil {
		if !models.ValidEventStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: status", ErrInvalidInput)
		}
		event.Status = *patch.Status
	}
	if patch.Category != nil {
		if !models.ValidCategory(*patch.Category) {
			return nil, fmt.Errorf("%w: category", ErrInvalidInput)
		}
		event.Category = *patch.Category
	}
	if patch.MaxAttendees != nil {
		if *patch.MaxAttendees <= 0 {
			return nil, fmt.Errorf("%w: maxAttendees", ErrInvalidInput)
		}
		event.MaxAttendees = *patch.MaxAttendees
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.events.Update(ctx, event); err != nil {
		s.log.WithError(err).Error("failed to update event")
		return nil, err
	}

	joined, err := s.joinOwners(ctx, []models.Event{*event})
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

// Delete removes an event. Same gate as Update; hard delete.
func (s *EventService) Delete(ctx context.Context, id primitive.ObjectID, actor auth.Identity) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !auth.CanMutateEvent(actor, event.CreatedBy) {
		return ErrForbidden
	}

	return s.events.Delete(ctx, id)
}

// ListByOwner returns an owner's events ascending by start date.
func (s *EventService) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Event, error) {
	return s.events.ListByOwner(ctx, ownerID)
}

// joinOwners attaches creator summaries, fetching each distinct owner once.
func (s *EventService) joinOwners(ctx context.Context, events []models.Event) ([]models.EventWithOwner, error) {
	owners := make(map[primitive.ObjectID]*models.UserSummary)
	out := make([]models.EventWithOwner, 0, len(events))

	for i := range events {
		summary, ok := owners[events[i].CreatedBy]
		if !ok {
			user, err := s.users.GetByID(ctx, events[i].CreatedBy)
			switch {
			case err == nil:
				info := user.Summary()
				summary = &info
			case errors.Is(err, store.ErrNotFound):
				// owner deleted out from under the event; keep it listed
				summary = nil
			default:
				return nil, err
			}
			owners[events[i].CreatedBy] = summary
		}
		out = append(out, models.EventWithOwner{Event: events[i], Owner: summary})
	}
	return out, nil
}
