package models

import "time"

// PriceCalculation is an append-only audit row for one priced diamond.
type PriceCalculation struct {
	ID            string
	Carat         float64
	Clarity       string
	Color         string
	Cut           string
	Certification string
	Price         float64
	CalculatedBy  string
	Timestamp     time.Time
}

type CalculationFilter struct {
	StaffID string
}
