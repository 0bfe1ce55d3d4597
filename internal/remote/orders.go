package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
)

// CreateOrderResponse is what the remote API answers to a submitted order.
type CreateOrderResponse struct {
	ID     uint   `json:"id"`
	Status string `json:"estado"`
}

// CreateOrder submits an assembled order draft to the remote API.
func (c *Client) CreateOrder(ctx context.Context, draft *model.OrderDraft) (*CreateOrderResponse, error) {
	body, err := c.post(ctx, "/pedidos", draft)
	if err != nil {
		return nil, err
	}

	var resp CreateOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed order response: %w", err)
	}
	return &resp, nil
}

// ListRankings fetches the product sales ranking between two dates
// (YYYY-MM-DD, inclusive).
func (c *Client) ListRankings(ctx context.Context, from, until string) ([]model.ProductRanking, error) {
	body, err := c.get(ctx, fmt.Sprintf("/ranking/productos?desde=%s&hasta=%s", from, until))
	if err != nil {
		return nil, err
	}

	var wires []struct {
		ID           uint   `json:"id"`
		Denomination string `json:"denominacion"`
		QuantitySold int    `json:"cantidadVendida"`
		Kind         string `json:"tipo"`
	}
	if err := json.Unmarshal(body, &wires); err != nil {
		return nil, fmt.Errorf("malformed ranking list: %w", err)
	}

	rankings := make([]model.ProductRanking, 0, len(wires))
	for _, wire := range wires {
		rankings = append(rankings, model.ProductRanking{
			ID:           wire.ID,
			Denomination: wire.Denomination,
			QuantitySold: wire.QuantitySold,
			Kind:         wire.Kind,
		})
	}
	return rankings, nil
}
