package models

// Product is a sellable item. Id is assigned by the store on creation
// and never changes; Image is nil when the seller gave no URL.
type Product struct {
	Id          string  `json:"_id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Price       float64 `json:"price" db:"price"`
	Description string  `json:"description" db:"description"`
	Image       *string `json:"image" db:"image"`
}

// ProductInput carries the four mutable fields of a product as supplied
// by the client on create and update.
type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description" validate:"required"`
	Image       *string `json:"image" validate:"omitempty,url"`
}
