package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/senku-sen/event-management-system/auth"
	"github.com/senku-sen/event-management-system/middleware"
	"github.com/senku-sen/event-management-system/models"
	"github.com/senku-sen/event-management-system/services"
	"github.com/senku-sen/event-management-system/store/storetest"
	"github.com/senku-sen/event-management-system/utils"
	"github.com/senku-sen/event-management-system/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validators.Register(); err != nil {
		panic(err)
	}
}

// testServer wires the full API surface against in-memory stores.
type testServer struct {
	router *gin.Engine
	users  *storetest.UserStore
	events *storetest.EventStore
	groups *storetest.GroupStore
	tokens *auth.TokenService
}

func newTestServer() *testServer {
	log := logrus.New()
	log.SetOutput(io.Discard)

	users := storetest.NewUserStore()
	events := storetest.NewEventStore()
	groups := storetest.NewGroupStore()

	tokens := auth.NewTokenService("test-secret", time.Hour, "eventhub-api")
	hasher := utils.NewHasher(bcrypt.MinCost)

	userService := services.NewUserService(users, hasher, tokens, log)
	eventService := services.NewEventService(events, users, groups, log)
	groupService := services.NewGroupService(groups, events, users, log)

	userController := NewUserController(userService, log)
	eventController := NewEventController(eventService, log)
	groupController := NewGroupController(groupService, log)

	router := gin.New()
	authed := middleware.Auth(tokens, users, log)
	admin := middleware.RequireAdmin()

	api := router.Group("/api")
	{
		u := api.Group("/users")
		{
			u.POST("/register", middleware.OptionalAuth(tokens, users, log), userController.Register)
			u.POST("/login", userController.Login)
			u.GET("/profile", authed, userController.Profile)
			u.GET("", authed, admin, userController.List)
			u.GET("/search", authed, admin, userController.Search)
			u.PUT("/role", authed, admin, userController.UpdateRole)
			u.PUT("/password", authed, admin, userController.ResetPassword)
		}
		e := api.Group("/events", authed)
		{
			e.GET("", eventController.List)
			e.GET("/mine", eventController.ListMine)
			e.GET("/:id", eventController.Get)
			e.POST("", eventController.Create)
			e.PUT("/:id", eventController.Update)
			e.DELETE("/:id", eventController.Delete)
		}
		g := api.Group("/groups", authed)
		{
			g.GET("", groupController.List)
			g.GET("/:id", groupController.Get)
			g.POST("", admin, groupController.Create)
			g.PUT("/:id", admin, groupController.Update)
			g.DELETE("/:id", admin, groupController.Delete)
		}
	}

	return &testServer{router: router, users: users, events: events, groups: groups, tokens: tokens}
}

// do sends a JSON request, optionally with a bearer token.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) seedUser(t *testing.T, email, password, role string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
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
	require.NoError(t, ts.users.Create(context.Background(), user))

	token, err := ts.tokens.Issue(user)
	require.NoError(t, err)
	return user, token
}

// envelope decodes the response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
