package comparison_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/credguard/verdict/cache"
	"github.com/credguard/verdict/comparison"
	"github.com/credguard/verdict/core/domain"
)

func TestCompareDeterministic(t *testing.T) {
	svc := comparison.NewService(cache.NewMemory())
	loan := domain.LoanRequest{Amount: 500000, InterestRate: 12, TenureMonths: 36, Purpose: "education"}

	first, err := svc.Compare(t.Context(), loan)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	second, err := svc.Compare(t.Context(), loan)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated comparisons diverged (-first +second):\n%s", diff)
	}
}

func TestCompareOffers(t *testing.T) {
	svc := comparison.NewService(cache.NewMemory())
	loan := domain.LoanRequest{Amount: 500000, InterestRate: 12, TenureMonths: 36, Purpose: "education"}

	offers, err := svc.Compare(t.Context(), loan)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(offers) != 3 {
		t.Fatalf("got %d offers, want 3", len(offers))
	}

	// Ordered best rate first.
	for i := 1; i < len(offers); i++ {
		if offers[i].InterestRate < offers[i-1].InterestRate {
			t.Errorf("offers out of order: %v before %v", offers[i-1].InterestRate, offers[i].InterestRate)
		}
	}

	var sawHiddenCharges bool
	for _, o := range offers {
		if o.InterestRate <= 0 {
			t.Errorf("offer %s has non-positive rate %v", o.Name, o.InterestRate)
		}
		if o.TransparencyScore < 0 || o.TransparencyScore > 100 {
			t.Errorf("offer %s transparency %d outside [0,100]", o.Name, o.TransparencyScore)
		}
		sawHiddenCharges = sawHiddenCharges || o.HiddenChargesWarning
	}
	if !sawHiddenCharges {
		t.Error("no offer carried a hidden-charges warning")
	}
}

func TestCompareLargerLoansPriceBetter(t *testing.T) {
	svc := comparison.NewService(cache.NewMemory())

	small, err := svc.Compare(t.Context(), domain.LoanRequest{Amount: 100000, InterestRate: 12, TenureMonths: 36})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	large, err := svc.Compare(t.Context(), domain.LoanRequest{Amount: 2_000_000, InterestRate: 12, TenureMonths: 36})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if large[0].InterestRate >= small[0].InterestRate {
		t.Errorf("large loan rate %v not below small loan rate %v", large[0].InterestRate, small[0].InterestRate)
	}
}

func TestCompareValidatesLoan(t *testing.T) {
	svc := comparison.NewService(cache.NewMemory())

	_, err := svc.Compare(t.Context(), domain.LoanRequest{Amount: 0, TenureMonths: 12})
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("error = %v, want *domain.ValidationError", err)
	}
}

// countingCache wraps Memory to observe hit/miss traffic.
type countingCache struct {
	*cache.Memory
	gets, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) (string, bool) {
	c.gets++
	return c.Memory.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.sets++
	return c.Memory.Set(ctx, key, value, ttl)
}

func TestCompareUsesCache(t *testing.T) {
	store := &countingCache{Memory: cache.NewMemory()}
	svc := comparison.NewService(store)
	loan := domain.LoanRequest{Amount: 500000, InterestRate: 12, TenureMonths: 36}

	if _, err := svc.Compare(t.Context(), loan); err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if _, err := svc.Compare(t.Context(), loan); err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if store.sets != 1 {
		t.Errorf("Set called %d times, want 1", store.sets)
	}
	if store.gets != 2 {
		t.Errorf("Get called %d times, want 2", store.gets)
	}
}
