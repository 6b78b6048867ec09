package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Asip90/User-View-OpenFood/entity"
)

// FetchMenu retrieves the menu snapshot for a table token. No caching and
// no retry; a failed fetch is terminal for the page load.
func (b *Backend) FetchMenu(ctx context.Context, tableToken string) (*entity.MenuData, error) {
	url := fmt.Sprintf("%s/menu/%s/", b.BaseURL, tableToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := b.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch menu: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &APIError{Status: res.StatusCode, Detail: readDetail(res)}
	}

	var menu entity.MenuData
	if err := json.NewDecoder(res.Body).Decode(&menu); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return &menu, nil
}
