package handler

import (
	"log"

	"main/middleware"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

const MaxActiveSessions = 5

func LoginHandler(c *gin.Context) {
	var loginReq model.LoginRequest

	if err := c.ShouldBindJSON(&loginReq); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUserByUsername(loginReq.Username)
	if err != nil {
		utils.TrackAuthAttempt("failure", "password")
		utils.InternalError(c, "error finding user")
		return
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "password")
		utils.Unauthorized(c, "invalid credentials")
		return
	}

	match, err := services.VerifyPassword(user.Password, loginReq.Password)
	if err != nil || !match {
		utils.TrackAuthAttempt("failure", "password")
		utils.Unauthorized(c, "invalid credentials")
		return
	}

	if user.TwoFactorEnabled {
		if loginReq.TwoFactorCode == "" {
			utils.Unauthorized(c, "2FA code required")
			return
		}
		if !totp.Validate(loginReq.TwoFactorCode, user.TwoFactorSecret) {
			utils.TrackAuthAttempt("failure", "totp")
			utils.Unauthorized(c, "invalid 2FA code")
			return
		}
	}

	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	activeSessions, err := sessionRepo.CountActiveSessions(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to check active sessions")
		return
	}
	if activeSessions >= MaxActiveSessions {
		// Evict the stalest session rather than refusing the login
		if err := sessionRepo.EndLeastActiveSession(user.UserID); err != nil {
			log.Printf("Failed to end least active session for user %s: %v", user.UserID, err)
			utils.InternalError(c, "failed to manage sessions")
			return
		}
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to generate refresh token")
		return
	}

	if err := middleware.CreateSession(c, user.UserID, sessionRepo); err != nil {
		log.Printf("Failed to create session for user %s: %v", user.UserID, err)
		utils.InternalError(c, "failed to create session")
		return
	}

	utils.TrackAuthAttempt("success", "password")
	utils.UpdateActiveSessions(float64(activeSessions + 1))
	utils.Success(c, gin.H{
		"message": "login successful",
		"token":   token,
		"refresh": refreshToken,
		"user": gin.H{
			"user_id":  user.UserID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}
