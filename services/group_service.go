package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/senku-sen/event-management-system/auth"
	"github.com/senku-sen/event-management-system/models"
	"github.com/senku-sen/event-management-system/store"
)

// CreateGroupInput carries the fields accepted at group creation. The
// creator reference always comes from the actor, never the client.
type CreateGroupInput struct {
	Name        string
	Description string
	Visibility  string
	MaxEvents   int
}

// UpdateGroupInput is a partial patch; nil fields are left untouched.
type UpdateGroupInput struct {
	Name        *string
	Description *string
	Visibility  *string
	MaxEvents   *int
}

// GroupService implements admin-gated group CRUD with visibility-scoped
// reads.
type GroupService struct {
	groups store.GroupStore
	events store.EventStore
	users  store.UserStore
	log    *logrus.Logger
}

// NewGroupService wires a GroupService.
func NewGroupService(groups store.GroupStore, events store.EventStore, users store.UserStore, log *logrus.Logger) *GroupService {
	return &GroupService{groups: groups, events: events, users: users, log: log}
}

// Create persists a new group owned by the acting admin.
func (s *GroupService) Create(ctx context.Context, input CreateGroupInput, actor auth.Identity) (*models.Group, error) {
	if !auth.CanCreateGroup(actor) {
		return nil, ErrForbidden
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !models.ValidVisibility(visibility) {
		return nil, ErrInvalidInput
	}

	maxEvents := input.MaxEvents
	if maxEvents == 0 {
		maxEvents = models.DefaultMaxEvents
	}
	if maxEvents < 0 {
		return nil, ErrInvalidInput
	}

	now := time.Now().UTC()
	group := &models.Group{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   actor.ID,
		Visibility:  visibility,
		MaxEvents:   maxEvents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.groups.Create(ctx, group); err != nil {
		s.log.WithError(err).Error("failed to create group")
		return nil, err
	}
	return group, nil
}

// List returns the groups visible to the actor, each joined with its
// owner's public fields and its member events. Events are fetched per
// group, a fan-out read rather than a single join.
func (s *GroupService) List(ctx context.Context, actor auth.Identity) ([]models.GroupWithDetails, error) {
	groups, err := s.groups.List(ctx, auth.VisibleVisibilities(actor))
	if err != nil {
		return nil, err
	}

	out := make([]models.GroupWithDetails, 0, len(groups))
	for i := range groups {
		detail, err := s.withDetails(ctx, &groups[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *detail)
	}
	return out, nil
}

// GetByID returns one group with details. The listing visibility predicate
// applies here too: a private group reads as not-found to a non-admin so
// its existence is not disclosed.
func (s *GroupService) GetByID(ctx context.Context, id primitive.ObjectID, actor auth.Identity) (*models.GroupWithDetails, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !auth.CanViewGroup(actor, group.Visibility) {
		return nil, ErrNotFound
	}

	return s.withDetails(ctx, group)
}

// Update applies a partial patch. Admin only, matching Create.
func (s *GroupService) Update(ctx context.Context, id primitive.ObjectID, patch UpdateGroupInput, actor auth.Identity) (*models.Group, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		group.Name = *patch.Name
	}
	if patch.Description != nil {
		group.Description = *patch.Description
	}
	if patch.Visibility != nil {
		if !models.ValidVisibility(*patch.Visibility) {
			return nil, ErrInvalidInput
		}
		group.Visibility = *patch.Visibility
	}
	if patch.MaxEvents != nil {
		if *patch.MaxEvents <= 0 {
			return nil, ErrInvalidInput
		}
		group.MaxEvents = *patch.MaxEvents
	}
	group.UpdatedAt = time.Now().UTC()

	if err := s.groups.Update(ctx, group); err != nil {
		s.log.WithError(err).Error("failed to update group")
		return nil, err
	}
	return group, nil
}

// Delete removes a group. Admin only, matching Create.
func (s *GroupService) Delete(ctx context.Context, id primitive.ObjectID, actor auth.Identity) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *GroupService) withDetails(ctx context.Context, group *models.Group) (*models.GroupWithDetails, error) {
	detail := &models.GroupWithDetails{Group: *group, Events: []models.Event{}}

	owner, err := s.users.GetByID(ctx, group.CreatedBy)
	switch {
	case err == nil:
		info := owner.Summary()
		detail.Owner = &info
	case errors.Is(err, store.ErrNotFound):
		// creator account removed; group remains listable
	default:
		return nil, err
	}

	events, err := s.events.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	detail.Events = events
	return detail, nil
}
