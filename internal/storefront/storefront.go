// Package storefront holds the client-side half of the shop: the cart,
// session identity, checkout simulation and the HTTP client they share.
package storefront

import (
	"fmt"
	"shopeasy/internal/models"
)

// ImageURL returns the product's image, or a deterministic placeholder
// seeded by the product id when no image was supplied.
func ImageURL(p models.Product) string {
	if p.Image != nil && *p.Image != "" {
		return *p.Image
	}
	return fmt.Sprintf("https://picsum.photos/400/400?random=%s", p.Id)
}
