package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Asip90/User-View-OpenFood/entity"
)

type CreateOrderRes struct {
	OrderID     int64       `json:"order_id"`
	OrderNumber json.Number `json:"order_number"`
	Total       float64     `json:"total"`
}

// CreateOrder performs the single order-submission POST. A non-2xx answer
// comes back as *APIError carrying the server detail; a request that never
// completed comes back as a plain error.
func (b *Backend) CreateOrder(ctx context.Context, tableToken string, payload *entity.OrderPayload) (*CreateOrderRes, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/create-order/%s/", b.BaseURL, tableToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := b.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &APIError{Status: res.StatusCode, Detail: readDetail(res)}
	}

	var out CreateOrderRes
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &out, nil
}

// readDetail extracts the human-readable detail field from an error body.
func readDetail(res *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Detail
}
