package dto

import (
	"time"

	"mindwell/model"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
	Name     string `json:"name" binding:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	TherapistID    string    `json:"therapistId,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message   string       `json:"message"`
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Notice    string       `json:"notice,omitempty"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:             user.UserID,
		Email:          user.Email,
		Name:           user.Name,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
		TherapistID:    user.TherapistID,
	}
}

// ToUser converts the wire form back into the domain user.
func (u UserResponse) ToUser() model.User {
	return model.User{
		UserID:         u.ID,
		Email:          u.Email,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		TherapistID:    u.TherapistID,
	}
}
