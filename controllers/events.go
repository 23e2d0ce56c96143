package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/senku-sen/event-management-system/middleware"
	"github.com/senku-sen/event-management-system/services"
	"github.com/senku-sen/event-management-system/utils"
)

// CreateEventInput is the request body for creating an event.
type CreateEventInput struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description" binding:"required"`
	StartDate    time.Time `json:"startDate" binding:"required"`
	EndDate      time.Time `json:"endDate" binding:"required"`
	Location     string    `json:"location" binding:"required"`
	Category     string    `json:"category" binding:"required,oneof=conference workshop webinar meetup"`
	MaxAttendees int       `json:"maxAttendees" binding:"required,gt=0"`
	GroupID      string    `json:"groupId"`
}

// UpdateEventInput allows partial updates.
type UpdateEventInput struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Location     *string    `json:"location"`
	Status       *string    `json:"status"`
	Category     *string    `json:"category"`
	MaxAttendees *int       `json:"maxAttendees" binding:"omitempty,gt=0"`
}

// EventController translates the event HTTP surface onto the EventService.
type EventController struct {
	events *services.EventService
	log    *logrus.Logger
}

// NewEventController wires an EventController.
func NewEventController(events *services.EventService, log *logrus.Logger) *EventController {
	return &EventController{events: events, log: log}
}

// Create handles POST /api/events.
func (ct *EventController) Create(c *gin.Context) {
	var input CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	svcInput := services.CreateEventInput{
		Title:        input.Title,
		Description:  input.Description,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Location:     input.Location,
		Category:     input.Category,
		MaxAttendees: input.MaxAttendees,
	}
	if input.GroupID != "" {
		groupID, err := primitive.ObjectIDFromHex(input.GroupID)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid group id")
			return
		}
		svcInput.GroupID = &groupID
	}

	event, err := ct.events.Create(c.Request.Context(), svcInput, identity.ID)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusCreated, "event created", gin.H{"event": event})
}

// List handles GET /api/events.
func (ct *EventController) List(c *gin.Context) {
	events, err := ct.events.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "events retrieved", gin.H{"events": events, "count": len(events)})
}

// ListMine handles GET /api/events/mine.
func (ct *EventController) ListMine(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	events, err := ct.events.ListByOwner(c.Request.Context(), identity.ID)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "events retrieved", gin.H{"events": events, "count": len(events)})
}

// Get handles GET /api/events/:id.
func (ct *EventController) Get(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := ct.events.GetByID(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "event retrieved", gin.H{"event": event})
}

// Update handles PUT /api/events/:id.
func (ct *EventController) Update(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid event id")
		return
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var input UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	event, err := ct.events.Update(c.Request.Context(), eventID, services.UpdateEventInput{
		Title:        input.Title,
		Description:  input.Description,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Location:     input.Location,
		Status:       input.Status,
		Category:     input.Category,
		MaxAttendees: input.MaxAttendees,
	}, identity)
	if err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "event updated", gin.H{"event": event})
}

// Delete handles DELETE /api/events/:id.
func (ct *EventController) Delete(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid event id")
		return
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := ct.events.Delete(c.Request.Context(), eventID, identity); err != nil {
		respondError(c, ct.log, err)
		return
	}

	utils.Success(c, http.StatusOK, "event deleted", gin.H{"id": eventID.Hex()})
}
