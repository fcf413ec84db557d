package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"diamonddesk/api/internal/models"
	"diamonddesk/api/internal/repository"
)

// fakeSessionStore is an in-memory SessionStore with the same ordering and
// lookup semantics as the Postgres repository.
type fakeSessionStore struct {
	mu   sync.Mutex
	rows []models.LoginLog
	now  time.Time

	createErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (s *fakeSessionStore) CreateLoginLog(_ context.Context, log models.LoginLog) (models.LoginLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return models.LoginLog{}, s.createErr
	}
	s.now = s.now.Add(time.Second)
	log.Timestamp = s.now
	s.rows = append(s.rows, log)
	return log, nil
}

func (s *fakeSessionStore) FindActiveSession(_ context.Context, token string) (models.LoginLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.SessionToken != nil && *row.SessionToken == token && !row.LoggedOut {
			return row, nil
		}
	}
	return models.LoginLog{}, repository.ErrSessionNotFound
}

func (s *fakeSessionStore) InvalidateSessions(_ context.Context, staffID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for i := range s.rows {
		if s.rows[i].StaffID == staffID && s.rows[i].SessionToken != nil && !s.rows[i].LoggedOut {
			s.rows[i].LoggedOut = true
			count++
		}
	}
	return count, nil
}

func (s *fakeSessionStore) ListLoginLogs(_ context.Context, filter models.LoginLogFilter, limit int) ([]models.LoginLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var logs []models.LoginLog
	for _, row := range s.rows {
		if filter.StaffID != "" && row.StaffID != filter.StaffID {
			continue
		}
		if filter.Branch != "" && row.Branch != filter.Branch {
			continue
		}
		logs = append(logs, row)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

type fakeCalculationStore struct {
	mu   sync.Mutex
	rows []models.PriceCalculation
	now  time.Time

	createErr error
}

func newFakeCalculationStore() *fakeCalculationStore {
	return &fakeCalculationStore{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (s *fakeCalculationStore) CreateCalculations(_ context.Context, calcs []models.PriceCalculation) ([]models.PriceCalculation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	stored := make([]models.PriceCalculation, 0, len(calcs))
	for _, calc := range calcs {
		s.now = s.now.Add(time.Second)
		calc.Timestamp = s.now
		s.rows = append(s.rows, calc)
		stored = append(stored, calc)
	}
	return stored, nil
}

func (s *fakeCalculationStore) ListCalculations(_ context.Context, filter models.CalculationFilter, limit int) ([]models.PriceCalculation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var calcs []models.PriceCalculation
	for _, row := range s.rows {
		if filter.StaffID != "" && row.CalculatedBy != filter.StaffID {
			continue
		}
		calcs = append(calcs, row)
	}
	sort.Slice(calcs, func(i, j int) bool { return calcs[i].Timestamp.After(calcs[j].Timestamp) })
	if len(calcs) > limit {
		calcs = calcs[:limit]
	}
	return calcs, nil
}
