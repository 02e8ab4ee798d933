package handler

import (
	"log"

	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// DeleteUserHandler removes the account and everything hanging off it:
// sessions, habits, completion logs, events, the points counter and the
// cached analytics snapshot.
func DeleteUserHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	uid := userID.(string)
	ctx := c.Request.Context()

	userRepo := repository.GetUserRepo(utils.MongoClient)
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	habitsRepo := repository.GetHabitsRepo(utils.MongoClient)
	completionsRepo := repository.GetCompletionsRepo(utils.MongoClient)
	eventsRepo := repository.GetEventsRepo(utils.MongoClient)
	pointsRepo := repository.GetPointsRepo(utils.MongoClient)

	if err := sessionRepo.DeleteUserSessions(uid); err != nil {
		log.Printf("Error ending user sessions: %v", err)
	}
	if err := habitsRepo.DeleteUserHabits(ctx, uid); err != nil {
		log.Printf("Error deleting user habits: %v", err)
	}
	if err := completionsRepo.DeleteUserCompletions(ctx, uid); err != nil {
		log.Printf("Error deleting user completions: %v", err)
	}
	if err := eventsRepo.DeleteUserEvents(ctx, uid); err != nil {
		log.Printf("Error deleting user events: %v", err)
	}
	if err := pointsRepo.DeleteUserPoints(ctx, uid); err != nil {
		log.Printf("Error deleting user points: %v", err)
	}
	if services.GlobalAnalyticsCache != nil {
		if err := services.GlobalAnalyticsCache.DeleteSnapshot(uid); err != nil {
			log.Printf("Error deleting analytics snapshot: %v", err)
		}
	}

	deletedCount, err := userRepo.DeleteUserByID(uid)
	if err != nil {
		log.Printf("Failed to delete user %s: %v", uid, err)
		utils.InternalError(c, "Failed to delete user")
		return
	}

	if deletedCount == 0 {
		utils.NotFound(c, "User not found")
		return
	}

	c.SetCookie("session_id", "", -1, "/", "", true, true)

	log.Printf("User deleted successfully: %s", uid)
	utils.Success(c, gin.H{"message": "User deleted successfully"})
}
