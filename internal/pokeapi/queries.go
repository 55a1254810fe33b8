package pokeapi

import (
	"context"
	"fmt"

	"github.com/robby/dex/internal/domain"
)

// CatalogSize is the number of entries in the original catalog.
const CatalogSize = 151

// listResponse is the paginated index envelope returned by /pokemon.
type listResponse struct {
	Count    int                    `json:"count"`
	Next     *string                `json:"next"`
	Previous *string                `json:"previous"`
	Results  []domain.ItemReference `json:"results"`
}

// ListPokemon fetches the first limit entries of the catalog index.
// The returned references carry absolute detail URLs.
func (c *Client) ListPokemon(ctx context.Context, limit int) ([]domain.ItemReference, error) {
	if limit <= 0 {
		limit = CatalogSize
	}
	url := fmt.Sprintf("%s/pokemon?limit=%d", c.baseURL, limit)

	var resp listResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("failed to list pokemon: %w", err)
	}

	if resp.Results == nil {
		return []domain.ItemReference{}, nil
	}
	return resp.Results, nil
}

// GetDetail fetches a detail record from the absolute URL given by the index.
// The URL is used verbatim and never joined with the base endpoint.
func (c *Client) GetDetail(ctx context.Context, url string) (*domain.DetailRecord, error) {
	var record domain.DetailRecord
	if err := c.getJSON(ctx, url, &record); err != nil {
		return nil, fmt.Errorf("failed to get pokemon detail %s: %w", url, err)
	}
	return &record, nil
}
