package handler

import (
	"errors"

	"main/dto"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type EventsHandler struct {
	service *usecase.EventsService
}

func NewEventsHandler(service *usecase.EventsService) *EventsHandler {
	return &EventsHandler{service: service}
}

func (h *EventsHandler) CreateEvent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	event := req.ToEvent(userID.(string))
	if err := h.service.CreateEvent(c.Request.Context(), event); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, event)
}

func (h *EventsHandler) GetEvents(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	events, err := h.service.GetUserEvents(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "failed to fetch events")
		return
	}

	utils.Success(c, gin.H{
		"events": events,
		"count":  len(events),
	})
}

func (h *EventsHandler) UpdateEvent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	eventID := c.Param("id")

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	event, err := h.service.UpdateEvent(c.Request.Context(), eventID, userID.(string), req.ToEventUpdates())
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			utils.NotFound(c, "event not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, event)
}

func (h *EventsHandler) DeleteEvent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	eventID := c.Param("id")

	if err := h.service.DeleteEvent(c.Request.Context(), eventID, userID.(string)); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			utils.NotFound(c, "event not found")
			return
		}
		utils.InternalError(c, "failed to delete event")
		return
	}

	utils.Success(c, gin.H{"message": "event deleted successfully"})
}
