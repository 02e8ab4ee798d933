package handler

import (
	"errors"
	"time"

	"main/dto"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type HabitsHandler struct {
	service *usecase.HabitsService
}

func NewHabitsHandler(service *usecase.HabitsService) *HabitsHandler {
	return &HabitsHandler{service: service}
}

func (h *HabitsHandler) CreateHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	habit := req.ToHabit(userID.(string))
	if err := h.service.CreateHabit(c.Request.Context(), habit); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, habit)
}

func (h *HabitsHandler) GetHabits(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	habits, err := h.service.GetUserHabits(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "failed to fetch habits")
		return
	}

	utils.Success(c, gin.H{
		"habits": habits,
		"count":  len(habits),
	})
}

// GetHabitsWithStatus returns every habit enriched with due/completed flags,
// streaks and weekly stats as of the moment of the request.
func (h *HabitsHandler) GetHabitsWithStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	statuses, err := h.service.GetHabitsWithStatus(c.Request.Context(), userID.(string), time.Now())
	if err != nil {
		utils.InternalError(c, "failed to fetch habit status")
		return
	}

	utils.Success(c, gin.H{
		"habits": statuses,
		"count":  len(statuses),
	})
}

func (h *HabitsHandler) UpdateHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	habitID := c.Param("id")

	var req dto.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	habit, err := h.service.UpdateHabit(c.Request.Context(), habitID, userID.(string), req.ToHabitUpdates(), req.IsActive)
	if err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			utils.NotFound(c, "habit not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, habit)
}

func (h *HabitsHandler) DeleteHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	habitID := c.Param("id")

	if err := h.service.DeleteHabit(c.Request.Context(), habitID, userID.(string)); err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			utils.NotFound(c, "habit not found")
			return
		}
		utils.InternalError(c, "failed to delete habit")
		return
	}

	utils.Success(c, gin.H{"message": "habit deleted successfully"})
}

// CompleteHabit logs today's completion. A second completion for the same
// calendar day conflicts instead of double-counting.
func (h *HabitsHandler) CompleteHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	habitID := c.Param("id")

	var req dto.CompleteHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "invalid request")
		return
	}

	entry, award, err := h.service.CompleteHabit(c.Request.Context(), habitID, userID.(string), time.Now(), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrHabitNotFound):
			utils.NotFound(c, "habit not found")
		case errors.Is(err, repository.ErrDuplicateCompletion):
			utils.Conflict(c, "habit already completed today")
		default:
			utils.InternalError(c, "failed to log completion")
		}
		return
	}

	utils.Created(c, dto.CompletionResponse{
		LogID:         entry.LogID,
		HabitID:       entry.HabitID,
		Day:           entry.Day,
		CompletedAt:   entry.CompletedAt,
		Note:          entry.Note,
		PointsAwarded: award,
	})
}
