package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"diamonddesk/api/internal/ids"
	"diamonddesk/api/internal/models"
	"diamonddesk/api/internal/pricing"
)

const defaultHistoryLimit = 50

// CalculationStore is the audit-table slice of the datastore.
// *repository.CalculationRepository satisfies it.
type CalculationStore interface {
	CreateCalculations(ctx context.Context, calcs []models.PriceCalculation) ([]models.PriceCalculation, error)
	ListCalculations(ctx context.Context, filter models.CalculationFilter, limit int) ([]models.PriceCalculation, error)
}

type PricingService struct {
	store CalculationStore
	log   zerolog.Logger
}

func NewPricingService(store CalculationStore, log zerolog.Logger) *PricingService {
	return &PricingService{store: store, log: log}
}

type QuoteResult struct {
	TotalPrice       float64
	IndividualPrices []float64
	Timestamp        time.Time
}

// Calculate prices the whole batch, then records every diamond in a single
// transaction. Validation happens before any write, so an invalid diamond
// anywhere in the batch leaves the audit table untouched.
func (s *PricingService) Calculate(ctx context.Context, calculatedBy string, diamonds []pricing.Diamond) (QuoteResult, error) {
	prices, total, err := pricing.Quote(diamonds)
	if err != nil {
		return QuoteResult{}, err
	}

	calcs := make([]models.PriceCalculation, 0, len(diamonds))
	for i, d := range diamonds {
		calcs = append(calcs, models.PriceCalculation{
			ID:            ids.New(),
			Carat:         d.Carat,
			Clarity:       d.Clarity,
			Color:         d.Color,
			Cut:           d.Cut,
			Certification: d.Certification,
			Price:         prices[i],
			CalculatedBy:  calculatedBy,
		})
	}

	if _, err := s.store.CreateCalculations(ctx, calcs); err != nil {
		return QuoteResult{}, err
	}

	s.log.Debug().
		Str("calculated_by", calculatedBy).
		Int("diamonds", len(diamonds)).
		Float64("total", total).
		Msg("quote recorded")

	return QuoteResult{
		TotalPrice:       total,
		IndividualPrices: prices,
		Timestamp:        time.Now().UTC(),
	}, nil
}

func (s *PricingService) History(ctx context.Context, filter models.CalculationFilter, limit int) ([]models.PriceCalculation, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.ListCalculations(ctx, filter, limit)
}
