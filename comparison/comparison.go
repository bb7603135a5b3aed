// Package comparison produces indicative lender offers for a loan request.
// Offers are derived from a base market rate with a deterministic per-amount
// adjustment, so repeated lookups for the same request agree. Results are
// cached; this is a parallel feature the verdict pipeline never consults.
package comparison

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/credguard/verdict/cache"
	"github.com/credguard/verdict/core/domain"
)

const (
	baseRate = 10.5
	cacheTTL = 15 * time.Minute
)

// Offer is one lender's indicative terms for the requested loan.
type Offer struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Type                 string  `json:"type"` // Bank, NBFC, or FinTech
	InterestRate         float64 `json:"interestRate"`
	TransparencyScore    int     `json:"transparencyScore"`
	HiddenChargesWarning bool    `json:"hiddenChargesWarning"`
	MaxAmount            float64 `json:"maxAmount"`
}

// Service computes lender offers, caching by amount and tenure.
type Service struct {
	cache cache.Cache
}

// NewService creates a comparison Service backed by c.
func NewService(c cache.Cache) *Service {
	return &Service{cache: c}
}

// Compare returns indicative offers for the loan, ordered best rate first.
func (s *Service) Compare(ctx context.Context, loan domain.LoanRequest) ([]Offer, error) {
	if err := loan.Validate(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("lenders:%.0f:%d", loan.Amount, loan.TenureMonths)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var offers []Offer
		if err := json.Unmarshal([]byte(cached), &offers); err == nil {
			return offers, nil
		}
	}

	// Larger principals price slightly better; the adjustment is bounded
	// to keep rates realistic.
	adjustment := 2 - math.Min(loan.Amount/1_000_000, 2)

	round2 := func(v float64) float64 { return math.Round(v*100) / 100 }
	offers := []Offer{
		{
			ID:                "1",
			Name:              "HDFC Bank",
			Type:              "Bank",
			InterestRate:      round2(baseRate + adjustment - 0.5),
			TransparencyScore: 95,
			MaxAmount:         5_000_000,
		},
		{
			ID:                   "2",
			Name:                 "Bajaj Finserv",
			Type:                 "NBFC",
			InterestRate:         round2(baseRate + adjustment + 1.5),
			TransparencyScore:    88,
			HiddenChargesWarning: true,
			MaxAmount:            2_500_000,
		},
		{
			ID:                "3",
			Name:              "MoneyTap",
			Type:              "FinTech",
			InterestRate:      round2(baseRate + adjustment + 4.5),
			TransparencyScore: 80,
			MaxAmount:         500_000,
		},
	}

	if encoded, err := json.Marshal(offers); err == nil {
		// Best effort; a cold cache only costs recomputation.
		s.cache.Set(ctx, key, string(encoded), cacheTTL)
	}

	return offers, nil
}
