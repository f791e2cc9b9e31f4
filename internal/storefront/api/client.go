package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"shopeasy/internal/models"
	"shopeasy/pkg/lib/logger/sl"
)

var (
	ErrNetwork  = errors.New("network error")
	ErrNotFound = errors.New("product not found")
)

// Client talks to the product API the way the web storefront does: plain
// fetches, no retry, no timeout.
type Client struct {
	log     *slog.Logger
	baseURL string
	http    *http.Client
}

func New(log *slog.Logger, baseURL string) *Client {
	return &Client{
		log:     log,
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "storefront.api.ListProducts"
	log := c.log.With("op", op)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/product", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("Fetch failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %s", op, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("Unexpected status", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		log.Error("Failed to decode response", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

// GetProduct fetches the whole list and picks the requested id; the API
// exposes no single-product route.
func (c *Client) GetProduct(ctx context.Context, id string) (models.Product, error) {
	const op = "storefront.api.GetProduct"

	products, err := c.ListProducts(ctx)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range products {
		if p.Id == id {
			return p, nil
		}
	}

	return models.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
}

func (c *Client) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	const op = "storefront.api.CreateProduct"
	log := c.log.With("op", op)

	body, err := json.Marshal(input)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/postProduct", bytes.NewReader(body))
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("Fetch failed", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w: %s", op, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		log.Error("Unexpected status", slog.Int("status", resp.StatusCode))
		return models.Product{}, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var created models.Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Error("Failed to decode response", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	const op = "storefront.api.UpdateProduct"
	log := c.log.With("op", op)

	body, err := json.Marshal(input)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/updateProduct/"+id, bytes.NewReader(body))
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("Fetch failed", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w: %s", op, ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return models.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		log.Error("Unexpected status", slog.Int("status", resp.StatusCode))
		return models.Product{}, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var updated models.Product
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		log.Error("Failed to decode response", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	const op = "storefront.api.DeleteProduct"
	log := c.log.With("op", op)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/deleteProduct/"+id, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("Fetch failed", sl.Err(err))
		return fmt.Errorf("%s: %w: %s", op, ErrNetwork, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		log.Error("Unexpected status", slog.Int("status", resp.StatusCode))
		return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}
}
