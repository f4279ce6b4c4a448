package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartProduct is the display projection of a catalog entry attached to a
// cart item on reads. It is never persisted with the cart.
type CartProduct struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	Price       float64            `json:"price"`
	Images      []Image            `json:"images,omitempty"`
	ProductType ProductType        `json:"productType"`
	Magazine    *MagazineData      `json:"magazineData,omitempty"`
}

type CartItem struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Product     primitive.ObjectID `bson:"product" json:"product"`
	Variant     *Variant           `bson:"variant,omitempty" json:"variant,omitempty"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Price       float64            `bson:"price" json:"price"`
	ProductType ProductType        `bson:"productType" json:"productType"`

	ProductInfo *CartProduct `bson:"-" json:"productInfo,omitempty"`
}

type Cart struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	User      primitive.ObjectID  `bson:"user" json:"user"`
	Items     []CartItem          `bson:"items" json:"items"`
	Coupon    *primitive.ObjectID `bson:"coupon,omitempty" json:"coupon,omitempty"`
	Discount  float64             `bson:"discount" json:"discount"`
	Subtotal  float64             `bson:"subtotal" json:"subtotal"`
	Total     float64             `bson:"total" json:"total"`
	ExpiresAt time.Time           `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// NewCart returns an empty cart for the user with a 30-day expiry.
func NewCart(user primitive.ObjectID) *Cart {
	now := time.Now()
	return &Cart{
		User:      user,
		Items:     []CartItem{},
		ExpiresAt: now.Add(30 * 24 * time.Hour),
		CreatedAt: now,
	}
}

// RecalculateTotals restores the cart totals invariant:
// subtotal = Σ(price×quantity), total = subtotal − discount. The cart
// service calls this before every persist; there is no implicit save hook.
func (c *Cart) RecalculateTotals() {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	c.Subtotal = subtotal
	c.Total = subtotal - c.Discount
}

// EmptyCartResponse is what a user without a cart sees.
type EmptyCartResponse struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Total    float64    `json:"total"`
}

type AddCartItemRequest struct {
	ProductID string   `json:"productId" binding:"required,objectid"`
	Variant   *Variant `json:"variant"`
	Quantity  int      `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}
