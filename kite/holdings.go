package kite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/etnz/goaltrack"
	"github.com/shopspring/decimal"
)

// Holdings fetches the account's current stock holdings. It fails with
// goaltrack.ErrUnauthenticated when there is no valid session or the
// broker rejects the token.
func Holdings(ctx context.Context, s *Session) ([]goaltrack.Holding, error) {
	if !s.Authenticated() {
		return nil, unauthenticated()
	}
	if s.Demo {
		return demoHoldings(), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"/portfolio/holdings", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Kite-Version", "3")
	req.Header.Set("Authorization", "token "+apiKey()+":"+s.Token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch holdings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		// the token expired or was revoked, the stored session is useless
		return nil, unauthenticated()
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch holdings: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []struct {
			TradingSymbol string  `json:"tradingsymbol"`
			Quantity      float64 `json:"quantity"`
			LastPrice     float64 `json:"last_price"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("cannot parse holdings response: %w", err)
	}

	holdings := make([]goaltrack.Holding, 0, len(payload.Data))
	for _, h := range payload.Data {
		holdings = append(holdings, goaltrack.Holding{
			Symbol:    h.TradingSymbol,
			Quantity:  decimal.NewFromFloat(h.Quantity),
			LastPrice: goaltrack.M(h.LastPrice, goaltrack.DefaultCurrency),
		})
	}
	return holdings, nil
}
