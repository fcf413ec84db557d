package service

import (
	"context"

	"github.com/rs/zerolog"

	"diamonddesk/api/internal/ids"
	"diamonddesk/api/internal/models"
)

const defaultLogLimit = 100

type LogService struct {
	store SessionStore
	log   zerolog.Logger
}

func NewLogService(store SessionStore, log zerolog.Logger) *LogService {
	return &LogService{store: store, log: log}
}

type ActivityInput struct {
	StaffID      string
	Branch       string
	Counter      string
	Success      bool
	Details      string
	SessionToken string
	IPAddress    string
	UserAgent    string
}

// Record appends one login/activity event. A non-empty SessionToken is stored
// as-is; the unique index rejects duplicates.
func (s *LogService) Record(ctx context.Context, input ActivityInput) (models.LoginLog, error) {
	entry := models.LoginLog{
		ID:        ids.New(),
		StaffID:   input.StaffID,
		Branch:    input.Branch,
		Counter:   input.Counter,
		Success:   input.Success,
		Details:   input.Details,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	}
	if input.SessionToken != "" {
		token := input.SessionToken
		entry.SessionToken = &token
	}

	return s.store.CreateLoginLog(ctx, entry)
}

func (s *LogService) List(ctx context.Context, filter models.LoginLogFilter, limit int) ([]models.LoginLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	return s.store.ListLoginLogs(ctx, filter, limit)
}
