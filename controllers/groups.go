package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/senku-sen/event-management-system/middleware"
	"github.com/senku-sen/event-management-system/services"
	"github.com/senku-sen/event-management-system/utils"
)

// CreateGroupInput is the request body for creating a group. Any
// client-supplied creator reference is ignored; the actor owns the group.
type CreateGroupInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Visibility  string `json:"visibility" binding:"omitempty,oneof=public private"`
	MaxEvents   int    `json:"maxEvents" binding:"omitempty,gt=0"`
}

// UpdateGroupInput allows partial updates.
type UpdateGroupInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility" binding:"omitempty"`
	MaxEvents   *int    `json:"maxEvents" binding:"omitempty"`
}

// GroupController translates the group HTTP surface onto the GroupService.
type GroupController struct {
	groups *services.GroupService
	log    *logrus.Logger
}

// NewGroupController wires a GroupController.
func NewGroupController(groups *services.GroupService, log *logrus.Logger) *GroupController {
	return &GroupController{groups: groups, log: log}
}

// Create handles POST /api/groups (admin).
func (ct *GroupController) Create(c *gin.Context) {
	var input CreateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	group, err := ct.groups.Create(c.Request.Context(), services.CreateGroupInput{
		Name:        input.Name,
		Description: input.Description,
		Visibility:  input.Visibility,
		MaxEvents:   input.MaxEvents,
	}, identity)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusCreated, "group created", gin.H{"group": group})
}

// List handles GET /api/groups.
func (ct *GroupController) List(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	groups, err := ct.groups.List(c.Request.Context(), identity)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "groups retrieved", gin.H{"groups": groups, "count": len(groups)})
}

// Get handles GET /api/groups/:id.
func (ct *GroupController) Get(c *gin.Context) {
	groupID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid group id")
		return
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	group, err := ct.groups.GetByID(c.Request.Context(), groupID, identity)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "group retrieved", gin.H{"group": group})
}

// Update handles PUT /api/groups/:id (admin).
func (ct *GroupController) Update(c *gin.Context) {
	groupID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid group id")
		return
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var input UpdateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	group, err := ct.groups.Update(c.Request.Context(), groupID, services.UpdateGroupInput{
		Name:        input.Name,
		Description: input.Description,
		Visibility:  input.Visibility,
		MaxEvents:   input.MaxEvents,
	}, identity)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "group updated", gin.H{"group": group})
}

// Delete handles DELETE /api/groups/:id (admin).
func (ct *GroupController) Delete(c *gin.Context) {
	groupID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid group id")
		return
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := ct.groups.Delete(c.Request.Context(), groupID, identity); err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "group deleted", gin.H{"id": groupID.Hex()})
}
