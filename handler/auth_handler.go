package handler

import (
	"github.com/gin-gonic/gin"

	"mindwell/dto"
	"mindwell/middleware"
	"mindwell/usecase"
	"mindwell/utils"
)

func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	}
}

func RegisterHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingMessage(err))
		return
	}

	resp, err := userService.Register(c.Request.Context(), req, clientInfo(c))
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}
	utils.Created(c, resp)
}

func LoginHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingMessage(err))
		return
	}

	resp, err := userService.Login(c.Request.Context(), req, clientInfo(c))
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	utils.Success(c, resp)
}

func LogoutHandler(c *gin.Context, userService *usecase.UserService) {
	claims, ok := middleware.Claims(c)
	if !ok {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	if err := userService.Logout(c.Request.Context(), c.GetString(middleware.ContextToken), claims); err != nil {
		respondError(c, err, "Failed to logout")
		return
	}
	utils.Message(c, "Successfully logged out")
}

func GetUserProfileHandler(c *gin.Context, userService *usecase.UserService) {
	profile, err := userService.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Could not fetch user details")
		return
	}
	utils.Success(c, profile)
}

func GetActiveSessionsHandler(c *gin.Context, userService *usecase.UserService) {
	sessions, err := userService.ActiveSessions(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch sessions")
		return
	}
	utils.Success(c, sessions)
}

func LogoutAllSessionsHandler(c *gin.Context, userService *usecase.UserService) {
	claims, ok := middleware.Claims(c)
	if !ok {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	if err := userService.LogoutAll(c.Request.Context(), c.GetString(middleware.ContextToken), claims); err != nil {
		respondError(c, err, "Failed to end all sessions")
		return
	}
	utils.Message(c, "Successfully logged out of all sessions")
}
