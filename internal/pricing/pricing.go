package pricing

import (
	"fmt"
	"math"
)

// BasePrice is the fixed per-carat base used by every quote.
const BasePrice = 23750.0

var clarityMultipliers = map[string]float64{
	"FL": 2.0, "IF": 1.8, "VVS1": 1.6, "VVS2": 1.5,
	"VS1": 1.4, "VS2": 1.3, "SI1": 1.2, "SI2": 1.1, "I1": 0.9,
}

var colorMultipliers = map[string]float64{
	"D": 1.8, "E": 1.6, "F": 1.4, "G": 1.3,
	"H": 1.2, "I": 1.1, "J": 1.0, "K": 0.9,
}

var cutMultipliers = map[string]float64{
	"Excellent": 1.5, "Very Good": 1.3, "Good": 1.1,
	"Fair": 0.9, "Poor": 0.7,
}

var certificationMultipliers = map[string]float64{
	"GIA": 1.3, "AGS": 1.25, "IGI": 1.1, "HRD": 1.2,
	"None": 1.0, "Others": 1.0,
}

type Diamond struct {
	Carat         float64
	Clarity       string
	Color         string
	Cut           string
	Certification string
	Quantity      int
}

// InvalidDiamondError reports an out-of-domain characteristic. It is a
// validation failure, never an internal one.
type InvalidDiamondError struct {
	Field string
	Value string
}

func (e *InvalidDiamondError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// Price computes the price of a single diamond, rounded to 2 decimals.
// Quantity does not participate in the formula.
func Price(d Diamond) (float64, error) {
	if d.Carat <= 0 {
		return 0, &InvalidDiamondError{Field: "carat", Value: fmt.Sprintf("%g", d.Carat)}
	}
	clarity, ok := clarityMultipliers[d.Clarity]
	if !ok {
		return 0, &InvalidDiamondError{Field: "clarity", Value: d.Clarity}
	}
	color, ok := colorMultipliers[d.Color]
	if !ok {
		return 0, &InvalidDiamondError{Field: "color", Value: d.Color}
	}
	cut, ok := cutMultipliers[d.Cut]
	if !ok {
		return 0, &InvalidDiamondError{Field: "cut", Value: d.Cut}
	}
	certification, ok := certificationMultipliers[d.Certification]
	if !ok {
		return 0, &InvalidDiamondError{Field: "certification", Value: d.Certification}
	}

	price := BasePrice * d.Carat * clarity * color * cut * certification
	return round2(price), nil
}

// Quote prices each diamond independently. The total is the sum of the
// already-rounded individual prices, rounded again: this ordering is part of
// the contract and must not be collapsed into a single rounding.
func Quote(diamonds []Diamond) (prices []float64, total float64, err error) {
	prices = make([]float64, 0, len(diamonds))
	for _, d := range diamonds {
		p, err := Price(d)
		if err != nil {
			return nil, 0, err
		}
		prices = append(prices, p)
		total += p
	}
	return prices, round2(total), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
