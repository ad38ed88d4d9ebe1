package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"mindwell/middleware"
	"mindwell/usecase"
	"mindwell/utils"
)

const passwordRuleMessage = "Password must be at least 8 characters and contain both letters and numbers"

// bindingMessage turns a bind/validation failure into a single readable line.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Intensity":
		return usecase.ErrInvalidIntensity.Error()
	case "Mood":
		if fe.Tag() == "required" {
			return "Mood is required"
		}
		return "Unknown mood"
	case "Activities":
		if fe.Tag() == "unique" {
			return "Activities must not repeat"
		}
	case "Password":
		if fe.Tag() == "password" {
			return passwordRuleMessage
		}
		return "Password is required"
	case "Email":
		return "A valid email is required"
	}
	return "Invalid value for " + fe.Field()
}

// respondError maps service errors onto HTTP statuses. Anything unrecognised
// is logged and reported as a 500 carrying fallback.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, "Not found")
	case errors.Is(err, usecase.ErrInvalidIntensity),
		errors.Is(err, usecase.ErrDuplicateActivity),
		errors.Is(err, usecase.ErrEmptyPatch),
		errors.Is(err, usecase.ErrNotEnoughData):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, usecase.ErrUnknownMood):
		utils.BadRequest(c, "Unknown mood")
	case errors.Is(err, usecase.ErrMissingUser):
		utils.Unauthorized(c, "Missing or invalid token")
	case errors.Is(err, usecase.ErrEmailTaken):
		utils.Conflict(c, "Email already registered")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.Unauthorized(c, "Invalid credentials")
	default:
		middleware.Logger(c).WithError(err).Error(fallback)
		utils.TrackError("handler", "internal")
		utils.InternalError(c, fallback)
	}
}
