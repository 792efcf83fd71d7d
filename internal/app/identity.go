package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cliptube/pkg/domain"
)

// Register creates a user and immediately starts an authenticated session
// for it. The session token resolves back to the username.
func (a *App) Register(username, password string) (domain.User, string, error) {
	if username == "" || password == "" {
		return domain.User{}, "", errors.New("username and password required")
	}
	exists, err := a.store.HasUsername(username)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("check username: %w", err)
	}
	if exists {
		return domain.User{}, "", ErrDuplicateUsername
	}
	user := domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.SaveUser(user); err != nil {
		return domain.User{}, "", fmt.Errorf("save user: %w", err)
	}
	token, err := a.sessions.NewSession(user.Username)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// Login validates credentials and issues a session token. Unknown usernames
// and wrong passwords fail identically.
func (a *App) Login(username, password string) (domain.User, string, error) {
	user, ok, err := a.store.GetUserByUsername(username)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("fetch user: %w", err)
	}
	// Passwords are stored verbatim and compared with plain equality.
	if !ok || user.Password != password {
		return domain.User{}, "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(user.Username)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// Logout invalidates the session unconditionally.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}

// CurrentUser resolves a session token back to its user record. A stale
// token or a deleted user yields no current user.
func (a *App) CurrentUser(token string) (domain.User, bool) {
	username, ok, err := a.sessions.GetUsernameByToken(token)
	if err != nil || !ok {
		return domain.User{}, false
	}
	user, found, err := a.store.GetUserByUsername(username)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}
