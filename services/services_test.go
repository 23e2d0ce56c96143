package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/senku-sen/event-management-system/auth"
	"github.com/senku-sen/event-management-system/models"
	"github.com/senku-sen/event-management-system/store/storetest"
	"github.com/senku-sen/event-management-system/utils"
)

// testEnv bundles the services with their in-memory stores.
type testEnv struct {
	users  *storetest.UserStore
	events *storetest.EventStore
	groups *storetest.GroupStore

	userSvc  *UserService
	eventSvc *EventService
	groupSvc *GroupService

	tokens *auth.TokenService
}

func newTestEnv() *testEnv {
	log := logrus.New()
	log.SetOutput(io.Discard)

	users := storetest.NewUserStore()
	events := storetest.NewEventStore()
	groups := storetest.NewGroupStore()

	hasher := utils.NewHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService("test-secret", time.Hour, "eventhub-api")

	return &testEnv{
		users:    users,
		events:   events,
		groups:   groups,
		userSvc:  NewUserService(users, hasher, tokens, log),
		eventSvc: NewEventService(events, users, groups, log),
		groupSvc: NewGroupService(groups, events, users, log),
		tokens:   tokens,
	}
}

// seedUser inserts a user directly into the store and returns it.
func (env *testEnv) seedUser(t *testing.T, email, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  string(hash),
		Role:      role,
		FirstName: "Test",
		LastName:  "User",
		Phone:     "+639171234567",
		Address:   "Manila",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, env.users.Create(context.Background(), user))
	return user
}

func (env *testEnv) identity(user *models.User) auth.Identity {
	return auth.Identity{ID: user.ID, Email: user.Email, Role: user.Role}
}

// seedEvent inserts an event owned by ownerID.
func (env *testEnv) seedEvent(t *testing.T, ownerID primitive.ObjectID, start, end time.Time) *models.Event {
	t.Helper()

	event := &models.Event{
		ID:           primitive.NewObjectID(),
		Title:        "Go Meetup",
		Description:  "monthly meetup",
		StartDate:    start,
		EndDate:      end,
		Location:     "Makati",
		Status:       models.EventStatusUpcoming,
		Category:     models.CategoryMeetup,
		MaxAttendees: 50,
		CreatedBy:    ownerID,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, env.events.Create(context.Background(), event))
	return event
}

// seedGroup inserts a group owned by ownerID.
func (env *testEnv) seedGroup(t *testing.T, ownerID primitive.ObjectID, visibility string, maxEvents int) *models.Group {
	t.Helper()

	group := &models.Group{
		ID:          primitive.NewObjectID(),
		Name:        "G",
		Description: "desc desc desc",
		CreatedBy:   ownerID,
		Visibility:  visibility,
		MaxEvents:   maxEvents,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, env.groups.Create(context.Background(), group))
	return group
}
