package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"shopeasy/internal/models"
	"shopeasy/internal/storefront/api"
	"shopeasy/pkg/lib/logger/sl"
	"time"
)

// TaxRate is applied to the subtotal; shipping is always free.
const TaxRate = 0.18

type State int

const (
	StateLoading State = iota
	StateReady
	StateNotFound
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateNotFound:
		return "not found"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

var (
	ErrNotReady         = errors.New("order not ready to place")
	ErrAlreadyConfirmed = errors.New("order already placed")
)

type Summary struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

// NewSummary computes order totals for a subtotal: 18% tax, free
// shipping, grand total rounded to the nearest currency unit.
func NewSummary(subtotal float64) Summary {
	tax := subtotal * TaxRate
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: 0,
		Total:    math.Round(subtotal + tax),
	}
}

type Confirmation struct {
	OrderId  string
	PlacedAt time.Time
	Product  models.Product
	Summary  Summary
}

type ProductFetcher interface {
	GetProduct(ctx context.Context, id string) (models.Product, error)
}

// Checkout simulates a buy-now order for a single product. It holds no
// server-side state: placing the order is a local transition only.
type Checkout struct {
	log     *slog.Logger
	fetcher ProductFetcher
	state   State
	product models.Product
}

func New(log *slog.Logger, fetcher ProductFetcher) *Checkout {
	return &Checkout{
		log:     log,
		fetcher: fetcher,
		state:   StateLoading,
	}
}

// Load resolves the product and moves Loading to Ready, or to the
// terminal NotFound when no product matches the id. A fetch failure
// leaves the checkout in Loading.
func (c *Checkout) Load(ctx context.Context, productId string) error {
	const op = "storefront.checkout.Load"
	log := c.log.With("op", op)

	if c.state != StateLoading {
		return fmt.Errorf("%s: load from state %q", op, c.state)
	}

	product, err := c.fetcher.GetProduct(ctx, productId)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			log.Warn("Product not found", slog.String("product_id", productId))
			c.state = StateNotFound
			return nil
		}

		log.Error("Failed to fetch product", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	c.product = product
	c.state = StateReady
	return nil
}

func (c *Checkout) State() State {
	return c.state
}

func (c *Checkout) Product() (models.Product, bool) {
	if c.state == StateReady || c.state == StateConfirmed {
		return c.product, true
	}
	return models.Product{}, false
}

func (c *Checkout) Summary() (Summary, error) {
	const op = "storefront.checkout.Summary"

	if c.state != StateReady && c.state != StateConfirmed {
		return Summary{}, fmt.Errorf("%s: %w", op, ErrNotReady)
	}
	return NewSummary(c.product.Price), nil
}

// PlaceOrder moves Ready to Confirmed. The order id comes from the
// current timestamp, so rapid successive orders may collide; nothing is
// persisted, so that is acceptable.
func (c *Checkout) PlaceOrder() (Confirmation, error) {
	const op = "storefront.checkout.PlaceOrder"

	switch c.state {
	case StateConfirmed:
		return Confirmation{}, fmt.Errorf("%s: %w", op, ErrAlreadyConfirmed)
	case StateReady:
	default:
		return Confirmation{}, fmt.Errorf("%s: %w", op, ErrNotReady)
	}

	now := time.Now()
	c.state = StateConfirmed

	return Confirmation{
		OrderId:  fmt.Sprintf("ORD-%d", now.UnixMilli()),
		PlacedAt: now,
		Product:  c.product,
		Summary:  NewSummary(c.product.Price),
	}, nil
}
