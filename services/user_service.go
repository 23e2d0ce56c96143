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
	"github.com/senku-sen/event-management-system/utils"
)

// RegisterInput carries the fields accepted at registration. Role is only
// honored when the acting caller is an admin.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	Role      string
}

// LoginResult is a token paired with the authenticated user's profile.
type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// UserService implements registration, authentication, and the admin-only
// account operations.
type UserService struct {
	users  store.UserStore
	hasher *utils.Hasher
	tokens *auth.TokenService
	log    *logrus.Logger
}

// NewUserService wires a UserService.
func NewUserService(users store.UserStore, hasher *utils.Hasher, tokens *auth.TokenService, log *logrus.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Register creates an account. The role is forced to User unless the actor
// is an authenticated admin explicitly granting Admin; a role field in the
// request body never escalates on its own.
func (s *UserService) Register(ctx context.Context, input RegisterInput, actor *auth.Identity) (*models.PublicUser, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	role := models.RoleUser
	if actor != nil && actor.IsAdmin() && input.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     input.Email,
		Password:  hash,
		Role:      role,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		s.log.WithError(err).Error("failed to create user")
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

// Authenticate checks credentials and issues a token. Unknown email and
// wrong password produce the same error so callers cannot enumerate
// accounts.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := s.hasher.Check(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.log.WithError(err).Error("failed to issue token")
		return nil, err
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}

// GetProfile returns a user's public profile.
func (s *UserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// List returns every account, passwords excluded. Admin gating happens at
// the route.
func (s *UserService) List(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

// FindByName searches accounts by first or last name, case-insensitively.
func (s *UserService) FindByName(ctx context.Context, query string) ([]models.PublicUser, error) {
	users, err := s.users.FindByName(ctx, query)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

// UpdateRole changes a user's role to one of the two recognized values.
func (s *UserService) UpdateRole(ctx context.Context, userID primitive.ObjectID, role string) (*models.PublicUser, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// ResetPassword re-hashes and overwrites a user's password.
func (s *UserService) ResetPassword(ctx context.Context, userID primitive.ObjectID, newPassword string) error {
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func publicUsers(users []models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}
