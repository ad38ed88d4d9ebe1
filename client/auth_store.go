package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"mindwell/dto"
	"mindwell/model"
)

// AuthStore tracks the signed-in user. The token itself lives in the
// client's TokenStore so it survives restarts.
type AuthStore struct {
	state
	api  *Client
	user *model.User
}

func NewAuthStore(api *Client, opts ...Option) *AuthStore {
	o := buildOptions("auth", opts)
	s := &AuthStore{api: api}
	s.init(o.log)
	return s
}

func (s *AuthStore) Login(ctx context.Context, email, password string) (model.User, error) {
	return s.authenticate(ctx, "/api/auth/login/", dto.LoginRequest{Email: email, Password: password}, "login failed")
}

func (s *AuthStore) Register(ctx context.Context, name, email, password string) (model.User, error) {
	return s.authenticate(ctx, "/api/auth/register/", dto.RegisterRequest{Name: name, Email: email, Password: password}, "registration failed")
}

// authenticate stores the returned token on success and drops any stale one
// on failure.
func (s *AuthStore) authenticate(ctx context.Context, path string, body interface{}, failure string) (model.User, error) {
	s.begin(false)

	var resp dto.AuthResponse
	err := s.api.do(ctx, http.MethodPost, path, nil, body, &resp)
	if err == nil && resp.Token == "" {
		err = errors.New("server returned no token")
	}
	if err == nil {
		err = s.api.Tokens.Save(resp.Token)
	}
	if err != nil {
		if clearErr := s.api.Tokens.Clear(); clearErr != nil {
			s.log.WithError(clearErr).Warn("failed to clear session token")
		}
		err = fmt.Errorf("%s: %w", failure, err)
	}

	user := resp.User.ToUser()
	err = s.finishMutationOr(err,
		func() { s.user = &user },
		func() { s.user = nil })
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Logout ends the server session. The local token is cleared only once the
// server has accepted the logout.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.begin(false)

	err := s.api.do(ctx, http.MethodPost, "/api/auth/logout/", nil, nil, nil)
	if err == nil {
		err = s.api.Tokens.Clear()
	}
	if err != nil {
		err = fmt.Errorf("logout failed: %w", err)
	}

	return s.finishMutation(err, func() { s.user = nil })
}

// Restore loads the profile for a token persisted by an earlier run. A
// rejected token is cleared.
func (s *AuthStore) Restore(ctx context.Context) (model.User, bool, error) {
	token, err := s.api.Tokens.Load()
	if err != nil || token == "" {
		return model.User{}, false, err
	}

	ticket := s.begin(true)
	var profile dto.UserResponse
	err = s.api.do(ctx, http.MethodGet, "/api/auth/profile/", nil, nil, &profile)
	if IsStatus(err, http.StatusUnauthorized) {
		if clearErr := s.api.Tokens.Clear(); clearErr != nil {
			s.log.WithError(clearErr).Warn("failed to clear session token")
		}
	}
	if err != nil {
		err = fmt.Errorf("failed to restore session: %w", err)
	}

	user := profile.ToUser()
	if err := s.finishFetch(ticket, err, func() { s.user = &user }); err != nil {
		return model.User{}, false, err
	}
	return user, true, nil
}

// User returns the signed-in user, if any.
func (s *AuthStore) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *AuthStore) IsAuthenticated() bool {
	_, ok := s.User()
	return ok
}
