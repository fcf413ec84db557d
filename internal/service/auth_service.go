package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"diamonddesk/api/internal/ids"
	"diamonddesk/api/internal/models"
	"diamonddesk/api/internal/repository"
	"diamonddesk/api/internal/security"
)

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrNoActiveSession = errors.New("no active session")
)

// SessionStore is the slice of the datastore the auth and log services need.
// *repository.LoginLogRepository satisfies it.
type SessionStore interface {
	CreateLoginLog(ctx context.Context, log models.LoginLog) (models.LoginLog, error)
	FindActiveSession(ctx context.Context, token string) (models.LoginLog, error)
	InvalidateSessions(ctx context.Context, staffID string) (int64, error)
	ListLoginLogs(ctx context.Context, filter models.LoginLogFilter, limit int) ([]models.LoginLog, error)
}

type AuthService struct {
	store SessionStore
	log   zerolog.Logger
}

func NewAuthService(store SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{store: store, log: log}
}

type LoginInput struct {
	StaffID   string
	Branch    string
	Counter   string
	IPAddress string
	UserAgent string
}

type LoginResult struct {
	Token   string
	StaffID string
}

// Login always opens a fresh session. Identity is a claim, not a credential:
// the desk tool trusts the staff id it is given. Earlier sessions of the same
// staff member stay active until they are explicitly logged out.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	token, err := security.NewSessionToken()
	if err != nil {
		return LoginResult{}, err
	}

	entry := models.LoginLog{
		ID:           ids.New(),
		StaffID:      input.StaffID,
		Branch:       input.Branch,
		Counter:      input.Counter,
		Success:      true,
		Details:      "Login successful",
		IPAddress:    input.IPAddress,
		UserAgent:    input.UserAgent,
		SessionToken: &token,
	}

	if _, err := s.store.CreateLoginLog(ctx, entry); err != nil {
		return LoginResult{}, err
	}

	s.log.Info().
		Str("staff_id", input.StaffID).
		Str("branch", input.Branch).
		Msg("session opened")

	return LoginResult{Token: token, StaffID: input.StaffID}, nil
}

// Authenticate resolves a bearer token to a staff id. The only proof of a
// session is a store row with the exact token and logged_out=false; there is
// no expiry, sessions end only at logout.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}

	session, err := s.store.FindActiveSession(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return session.StaffID, nil
}

// Logout terminates every active session of the caller. The affected-row
// count doubles as the existence check: zero rows means nothing to log out.
func (s *AuthService) Logout(ctx context.Context, staffID string) (int64, error) {
	count, err := s.store.InvalidateSessions(ctx, staffID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrNoActiveSession
	}

	s.log.Info().
		Str("staff_id", staffID).
		Int64("sessions", count).
		Msg("sessions terminated")

	return count, nil
}
