package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"diamonddesk/api/internal/models"
)

type CalculationRepository struct {
	pool *pgxpool.Pool
}

func NewCalculationRepository(pool *pgxpool.Pool) *CalculationRepository {
	return &CalculationRepository{pool: pool}
}

// CreateCalculations inserts a batch inside one transaction; either every row
// of the quote persists or none does.
func (r *CalculationRepository) CreateCalculations(ctx context.Context, calcs []models.PriceCalculation) ([]models.PriceCalculation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO price_calculations (
			id, carat, clarity, color, cut, certification, price, calculated_by, timestamp
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW()
		)
		RETURNING timestamp
	`

	stored := make([]models.PriceCalculation, 0, len(calcs))
	for _, calc := range calcs {
		row := tx.QueryRow(ctx, query,
			calc.ID,
			calc.Carat,
			calc.Clarity,
			calc.Color,
			calc.Cut,
			calc.Certification,
			calc.Price,
			calc.CalculatedBy,
		)
		if err := row.Scan(&calc.Timestamp); err != nil {
			return nil, err
		}
		stored = append(stored, calc)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return stored, nil
}

func (r *CalculationRepository) ListCalculations(ctx context.Context, filter models.CalculationFilter, limit int) ([]models.PriceCalculation, error) {
	query := `
		SELECT id, carat, clarity, color, cut, certification, price, calculated_by, timestamp
		FROM price_calculations
	`
	var args []any
	if filter.StaffID != "" {
		args = append(args, filter.StaffID)
		query += " WHERE calculated_by = $1"
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calcs []models.PriceCalculation
	for rows.Next() {
		calc, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}
	return calcs, rows.Err()
}

func (r *CalculationRepository) CountCalculationsSince(ctx context.Context, since time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM price_calculations WHERE timestamp >= $1`
	var count int64
	if err := r.pool.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanCalculation(row pgx.Row) (models.PriceCalculation, error) {
	var calc models.PriceCalculation
	err := row.Scan(
		&calc.ID,
		&calc.Carat,
		&calc.Clarity,
		&calc.Color,
		&calc.Cut,
		&calc.Certification,
		&calc.Price,
		&calc.CalculatedBy,
		&calc.Timestamp,
	)
	return calc, err
}
