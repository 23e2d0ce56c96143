// Package storetest provides in-memory store implementations for tests.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/senku-sen/event-management-system/models"
	"github.com/senku-sen/event-management-system/store"
)

// UserStore is an in-memory store.UserStore.
type UserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

// NewUserStore returns an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *UserStore) FindByName(ctx context.Context, query string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	out := []models.User{}
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *UserStore) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Role = role
	s.users[id] = u
	return nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Password = passwordHash
	s.users[id] = u
	return nil
}

// EventStore is an in-memory store.EventStore. Listings are sorted by
// ascending start date like the Mongo implementation.
type EventStore struct {
	mu     sync.Mutex
	events map[primitive.ObjectID]models.Event
}

// NewEventStore returns an empty in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{events: make(map[primitive.ObjectID]models.Event)}
}

func (s *EventStore) Create(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	s.events[event.ID] = *event
	return nil
}

func (s *EventStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (s *EventStore) List(ctx context.Context) ([]models.Event, error) {
	return s.filtered(func(models.Event) bool { return true }), nil
}

func (s *EventStore) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Event, error) {
	return s.filtered(func(e models.Event) bool { return e.CreatedBy == ownerID }), nil
}

func (s *EventStore) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Event, error) {
	return s.filtered(func(e models.Event) bool {
		return e.GroupID != nil && *e.GroupID == groupID
	}), nil
}

func (s *EventStore) CountByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	events, _ := s.ListByGroup(ctx, groupID)
	return int64(len(events)), nil
}

func (s *EventStore) filtered(keep func(models.Event) bool) []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Event{}
	for _, e := range s.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func (s *EventStore) Update(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; !ok {
		return store.ErrNotFound
	}
	s.events[event.ID] = *event
	return nil
}

func (s *EventStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

// GroupStore is an in-memory store.GroupStore.
type GroupStore struct {
	mu     sync.Mutex
	groups map[primitive.ObjectID]models.Group
}

// NewGroupStore returns an empty in-memory group store.
func NewGroupStore() *GroupStore {
	return &GroupStore{groups: make(map[primitive.ObjectID]models.Group)}
}

func (s *GroupStore) Create(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group.ID.IsZero() {
		group.ID = primitive.NewObjectID()
	}
	s.groups[group.ID] = *group
	return nil
}

func (s *GroupStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &g, nil
}

func (s *GroupStore) List(ctx context.Context, visibilities []string) ([]models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	allowed := make(map[string]bool, len(visibilities))
	for _, v := range visibilities {
		allowed[v] = true
	}
	out := []models.Group{}
	for _, g := range s.groups {
		if allowed[g.Visibility] {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *GroupStore) Update(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[group.ID]; !ok {
		return store.ErrNotFound
	}
	s.groups[group.ID] = *group
	return nil
}

func (s *GroupStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.groups, id)
	return nil
}
