package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindwell/dto"
	"mindwell/model"
	"mindwell/repository"
	"mindwell/services"
	"mindwell/utils"
)

const MaxActiveSessions = 5

type UserStore interface {
	AddUser(ctx context.Context, user *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUser(ctx context.Context, userID string) (*model.User, error)
}

type SessionStore interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	EndSession(ctx context.Context, sessionID string) error
	CountActiveSessions(ctx context.Context, userID string) (int64, error)
	EndLeastActiveSession(ctx context.Context, userID string) error
	GetUserActiveSessions(ctx context.Context, userID string) ([]model.Session, error)
	EndAllUserSessions(ctx context.Context, userID string) error
}

type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type Onboarder interface {
	SeedWelcome(ctx context.Context, userID string) error
}

// ClientInfo describes the device a session was opened from.
type ClientInfo struct {
	UserAgent string
	IP        string
}

// UserService owns accounts and login sessions. Blacklist and Onboarding are
// optional.
type UserService struct {
	Users             UserStore
	Sessions          SessionStore
	Tokens            *services.TokenIssuer
	Blacklist         TokenRevoker
	Onboarding        Onboarder
	MaxActiveSessions int
	Now               func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest, client ClientInfo) (dto.AuthResponse, error) {
	hash, err := services.HashPassword(req.Password)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		UserID:    utils.NewID(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Name:      strings.TrimSpace(req.Name),
		Password:  hash,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Users.AddUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.TrackAuthAttempt("failure", "register")
			return dto.AuthResponse{}, ErrEmailTaken
		}
		return dto.AuthResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	if s.Onboarding != nil {
		if err := s.Onboarding.SeedWelcome(ctx, user.UserID); err != nil {
			utils.Logger.WithError(err).WithField("user_id", user.UserID).Warn("failed to seed notifications")
		}
	}

	resp, err := s.openSession(ctx, user, client)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	utils.TrackAuthAttempt("success", "register")
	resp.Message = "Registration successful"
	return resp, nil
}

func (s *UserService) Login(ctx context.Context, req dto.LoginRequest, client ClientInfo) (dto.AuthResponse, error) {
	user, err := s.Users.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		utils.TrackAuthAttempt("failure", "login")
		return dto.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if !services.ComparePasswords(user.Password, req.Password) {
		utils.TrackAuthAttempt("failure", "login")
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	maxSessions := s.MaxActiveSessions
	if maxSessions <= 0 {
		maxSessions = MaxActiveSessions
	}
	active, err := s.Sessions.CountActiveSessions(ctx, user.UserID)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to check session count: %w", err)
	}
	var notice string
	if active >= int64(maxSessions) {
		if err := s.Sessions.EndLeastActiveSession(ctx, user.UserID); err != nil {
			return dto.AuthResponse{}, fmt.Errorf("failed to manage sessions: %w", err)
		}
		notice = "Logged out of least active session due to session limit"
		utils.Logger.WithField("user_id", user.UserID).Info("ended least active session due to session limit")
	}

	resp, err := s.openSession(ctx, user, client)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	utils.TrackAuthAttempt("success", "login")
	resp.Message = "Login successful"
	resp.Notice = notice
	return resp, nil
}

func (s *UserService) openSession(ctx context.Context, user *model.User, client ClientInfo) (dto.AuthResponse, error) {
	sessionID := utils.NewID()
	token, expiresAt, err := s.Tokens.Issue(user.UserID, sessionID)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	browser, os, device := utils.ParseUserAgent(client.UserAgent)
	now := s.now().UTC()
	session := &model.Session{
		SessionID:      sessionID,
		UserID:         user.UserID,
		CreatedAt:      now,
		ExpiresAt:      expiresAt,
		LastActivityAt: now,
		DisplayName:    utils.SessionName(client.UserAgent),
		DeviceInfo:     fmt.Sprintf("%s/%s/%s", browser, os, device),
		IPAddress:      client.IP,
		IsActive:       true,
	}
	if err := s.Sessions.CreateSession(ctx, session); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to create session: %w", err)
	}

	return dto.AuthResponse{
		User:      dto.ToUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout ends the session behind token and blacklists the token itself.
func (s *UserService) Logout(ctx context.Context, token string, claims *services.Claims) error {
	if err := s.Sessions.EndSession(ctx, claims.SessionID); err != nil {
		return err
	}
	if s.Blacklist != nil && claims.ExpiresAt != nil {
		if err := s.Blacklist.Revoke(ctx, token, claims.ExpiresAt.Time); err != nil {
			utils.Logger.WithError(err).Warn("failed to blacklist token")
		}
	}
	utils.TrackAuthAttempt("success", "logout")
	return nil
}

// IsRevoked reports whether a syntactically valid token may no longer be used:
// either blacklisted or tied to an ended session.
func (s *UserService) IsRevoked(ctx context.Context, token string, claims *services.Claims) (bool, error) {
	if s.Blacklist != nil {
		revoked, err := s.Blacklist.IsRevoked(ctx, token)
		if err != nil {
			utils.Logger.WithError(err).Warn("token blacklist unavailable, falling back to session store")
		} else if revoked {
			return true, nil
		}
	}

	session, err := s.Sessions.GetSession(ctx, claims.SessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !session.IsActive, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (dto.UserResponse, error) {
	user, err := s.Users.FindUser(ctx, userID)
	if err != nil {
		return dto.UserResponse{}, translate(err)
	}
	return dto.ToUserResponse(user), nil
}

func (s *UserService) ActiveSessions(ctx context.Context, userID string) ([]model.Session, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	sessions, err := s.Sessions.GetUserActiveSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	return sessions, nil
}

// LogoutAll ends every session of the user. The presented token is also
// blacklisted; other outstanding tokens fail the session check.
func (s *UserService) LogoutAll(ctx context.Context, token string, claims *services.Claims) error {
	if err := s.Sessions.EndAllUserSessions(ctx, claims.UserID); err != nil {
		return fmt.Errorf("failed to end sessions: %w", err)
	}
	if s.Blacklist != nil && claims.ExpiresAt != nil {
		if err := s.Blacklist.Revoke(ctx, token, claims.ExpiresAt.Time); err != nil {
			utils.Logger.WithError(err).Warn("failed to blacklist token")
		}
	}
	utils.TrackAuthAttempt("success", "logout_all")
	return nil
}
