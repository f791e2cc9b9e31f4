package cart

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"shopeasy/internal/models"
	"shopeasy/pkg/lib/logger/sl"
)

const storageKey = "cart"

type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Cart is an ordered sequence of product snapshots. Entries are full
// copies taken at add time, so later edits or deletes on the server are
// not reflected here. Duplicates are allowed; there is no quantity field.
type Cart struct {
	log     *slog.Logger
	storage Storage
	entries []models.Product
}

// Load rehydrates the cart from storage. A missing or malformed stored
// value yields an empty cart, never an error.
func Load(log *slog.Logger, storage Storage) *Cart {
	const op = "storefront.cart.Load"

	c := &Cart{
		log:     log,
		storage: storage,
		entries: []models.Product{},
	}

	raw, ok := storage.Get(storageKey)
	if !ok || raw == "" {
		return c
	}

	var entries []models.Product
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.With("op", op).Warn("Malformed stored cart, starting empty", sl.Err(err))
		return c
	}
	if entries != nil {
		c.entries = entries
	}

	return c
}

// Add appends a snapshot of the product unconditionally.
func (c *Cart) Add(p models.Product) error {
	const op = "storefront.cart.Add"

	c.entries = append(c.entries, p)

	if err := c.save(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Remove drops every entry whose id matches, not just the first one.
func (c *Cart) Remove(id string) error {
	const op = "storefront.cart.Remove"

	kept := make([]models.Product, 0, len(c.entries))
	for _, entry := range c.entries {
		if entry.Id != id {
			kept = append(kept, entry)
		}
	}
	c.entries = kept

	if err := c.save(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Entries returns the cart contents in insertion order.
func (c *Cart) Entries() []models.Product {
	out := make([]models.Product, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Cart) Len() int {
	return len(c.entries)
}

// Total is the plain sum of entry prices; duplicates count once per entry.
func (c *Cart) Total() float64 {
	var total float64
	for _, entry := range c.entries {
		total += entry.Price
	}
	return total
}

func (c *Cart) save() error {
	data, err := json.Marshal(c.entries)
	if err != nil {
		return err
	}
	return c.storage.Set(storageKey, string(data))
}
