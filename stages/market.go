package stages

import (
	"context"
	"fmt"
)

// MarketResult is the market-comparison output: whether the offered rate is
// fair against the market average, plus alternative options.
type MarketResult struct {
	IsFair            bool     `json:"is_fair"`
	MarketAverageRate float64  `json:"market_average_rate"`
	Alternatives      []string `json:"alternatives"`
}

func (r *MarketResult) validate() error {
	if r.MarketAverageRate < 0 {
		return fmt.Errorf("market_average_rate %v is negative", r.MarketAverageRate)
	}
	return nil
}

// Market compares the requested loan's terms against the market.
func (c *Client) Market(ctx context.Context, req LoanAnalysisRequest) (*MarketResult, error) {
	var out MarketResult
	if err := c.post(ctx, "market", pathMarket, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
