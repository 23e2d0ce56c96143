package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/senku-sen/event-management-system/auth"
	"github.com/senku-sen/event-management-system/middleware"
	"github.com/senku-sen/event-management-system/services"
	"github.com/senku-sen/event-management-system/utils"
)

// RegisterInput is the request body for registration. A role field is
// accepted but only honored for authenticated admins.
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required,phmobile"`
	Address   string `json:"address" binding:"required"`
	Role      string `json:"role"`
}

// LoginInput is the request body for login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateRoleInput is the request body for the admin role change.
type UpdateRoleInput struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// ResetPasswordInput is the request body for the admin password reset.
type ResetPasswordInput struct {
	UserID      string `json:"userId" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UserController translates the user HTTP surface onto the UserService.
type UserController struct {
	users *services.UserService
	log   *logrus.Logger
}

// NewUserController wires a UserController.
func NewUserController(users *services.UserService, log *logrus.Logger) *UserController {
	return &UserController{users: users, log: log}
}

// Register handles POST /api/users/register.
func (ct *UserController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	// Self-registration carries no identity; the service only honors the
	// role field when an admin token was presented.
	var actor *auth.Identity
	if identity, ok := middleware.CurrentIdentity(c); ok {
		actor = &identity
	}

	user, err := ct.users.Register(c.Request.Context(), services.RegisterInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Address:   input.Address,
		Role:      input.Role,
	}, actor)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusCreated, "user registered", gin.H{"user": user})
}

// Login handles POST /api/users/login.
func (ct *UserController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := ct.users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "authenticated", result)
}

// Profile handles GET /api/users/profile.
func (ct *UserController) Profile(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := ct.users.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "profile retrieved", gin.H{"user": user})
}

// List handles GET /api/users (admin).
func (ct *UserController) List(c *gin.Context) {
	users, err := ct.users.List(c.Request.Context())
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "users retrieved", gin.H{"users": users})
}

// Search handles GET /api/users/search?q= (admin).
func (ct *UserController) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		utils.Error(c, http.StatusBadRequest, "query parameter q is required")
		return
	}

	users, err := ct.users.FindByName(c.Request.Context(), q)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "users retrieved", gin.H{"users": users})
}

// UpdateRole handles PUT /api/users/role (admin).
func (ct *UserController) UpdateRole(c *gin.Context) {
	var input UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := ct.users.UpdateRole(c.Request.Context(), userID, input.Role)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "role updated", gin.H{"user": user})
}

// ResetPassword handles PUT /api/users/password (admin).
func (ct *UserController) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := ct.users.ResetPassword(c.Request.Context(), userID, input.NewPassword); err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "password reset", gin.H{"userId": input.UserID})
}
