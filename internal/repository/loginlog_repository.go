package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"diamonddesk/api/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type LoginLogRepository struct {
	pool *pgxpool.Pool
}

func NewLoginLogRepository(pool *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{pool: pool}
}

func (r *LoginLogRepository) CreateLoginLog(ctx context.Context, log models.LoginLog) (models.LoginLog, error) {
	const query = `
		INSERT INTO login_logs (
			id, staff_id, branch, counter, success, details, timestamp, ip_address, user_agent, session_token, logged_out
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), $7, $8, $9, FALSE
		)
		RETURNING timestamp
	`

	row := r.pool.QueryRow(ctx, query,
		log.ID,
		log.StaffID,
		log.Branch,
		log.Counter,
		log.Success,
		log.Details,
		log.IPAddress,
		log.UserAgent,
		log.SessionToken,
	)
	if err := row.Scan(&log.Timestamp); err != nil {
		return models.LoginLog{}, err
	}
	return log, nil
}

func (r *LoginLogRepository) FindActiveSession(ctx context.Context, token string) (models.LoginLog, error) {
	const query = `
		SELECT id, staff_id, branch, counter, success, details, timestamp, ip_address, user_agent, session_token, logged_out
		FROM login_logs
		WHERE session_token = $1 AND logged_out = FALSE
		LIMIT 1
	`

	row := r.pool.QueryRow(ctx, query, token)
	log, err := scanLoginLog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.LoginLog{}, ErrSessionNotFound
		}
		return models.LoginLog{}, err
	}
	return log, nil
}

// InvalidateSessions terminates every active session of the staff member and
// reports how many rows were flipped. Zero means no active session existed.
func (r *LoginLogRepository) InvalidateSessions(ctx context.Context, staffID string) (int64, error) {
	const query = `
		UPDATE login_logs
		SET logged_out = TRUE
		WHERE staff_id = $1 AND session_token IS NOT NULL AND logged_out = FALSE
	`
	cmd, err := r.pool.Exec(ctx, query, staffID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *LoginLogRepository) ListLoginLogs(ctx context.Context, filter models.LoginLogFilter, limit int) ([]models.LoginLog, error) {
	query := `
		SELECT id, staff_id, branch, counter, success, details, timestamp, ip_address, user_agent, session_token, logged_out
		FROM login_logs
	`
	var (
		conds []string
		args  []any
	)
	if filter.StaffID != "" {
		args = append(args, filter.StaffID)
		conds = append(conds, fmt.Sprintf("staff_id = $%d", len(args)))
	}
	if filter.Branch != "" {
		args = append(args, filter.Branch)
		conds = append(conds, fmt.Sprintf("branch = $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.LoginLog
	for rows.Next() {
		log, err := scanLoginLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *LoginLogRepository) CountActiveSessions(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM login_logs WHERE session_token IS NOT NULL AND logged_out = FALSE`
	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanLoginLog(row pgx.Row) (models.LoginLog, error) {
	var log models.LoginLog
	err := row.Scan(
		&log.ID,
		&log.StaffID,
		&log.Branch,
		&log.Counter,
		&log.Success,
		&log.Details,
		&log.Timestamp,
		&log.IPAddress,
		&log.UserAgent,
		&log.SessionToken,
		&log.LoggedOut,
	)
	return log, err
}
