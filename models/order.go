package models

import (
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the fixed three-state workflow. Cycling past delivered
// wraps back to pending; that wrap is deliberate.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

// StatusCycle is the ordered sequence CycleStatus walks through.
var StatusCycle = []OrderStatus{OrderPending, OrderShipped, OrderDelivered}

// Address is a postal address. Orders embed it without the book-keeping
// fields; the user's address book populates all of them.
type Address struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Type      string             `bson:"type,omitempty" json:"type,omitempty"`
	Street    string             `bson:"street,omitempty" json:"street,omitempty"`
	City      string             `bson:"city,omitempty" json:"city,omitempty"`
	State     string             `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode   string             `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Country   string             `bson:"country,omitempty" json:"country,omitempty"`
	IsDefault bool               `bson:"isDefault,omitempty" json:"isDefault,omitempty"`
}

// ProductSnapshot is the frozen copy of a catalog entry captured into an
// order item. Later catalog edits never change it.
type ProductSnapshot struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	ProductType ProductType        `bson:"productType,omitempty" json:"productType,omitempty"`
}

type OrderItem struct {
	Product  ProductSnapshot `bson:"product" json:"product"`
	Variant  *Variant        `bson:"variant,omitempty" json:"variant,omitempty"`
	Quantity int             `bson:"quantity" json:"quantity"`
	Price    float64         `bson:"price" json:"price"`
}

type PaymentInfo struct {
	Method        string  `bson:"method,omitempty" json:"method,omitempty"`
	Status        string  `bson:"status,omitempty" json:"status,omitempty"`
	TransactionID string  `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Reference     string  `bson:"reference,omitempty" json:"reference,omitempty"`
	Amount        float64 `bson:"amount,omitempty" json:"amount,omitempty"`
}

type ShippingInfo struct {
	Method         string  `bson:"method,omitempty" json:"method,omitempty"`
	Cost           float64 `bson:"cost,omitempty" json:"cost,omitempty"`
	TrackingNumber string  `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	Carrier        string  `bson:"carrier,omitempty" json:"carrier,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress Address            `bson:"shippingAddress" json:"shippingAddress"`
	BillingAddress  *Address           `bson:"billingAddress,omitempty" json:"billingAddress,omitempty"`
	Payment         PaymentInfo        `bson:"payment" json:"payment"`
	Shipping        ShippingInfo       `bson:"shipping" json:"shipping"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Tax             float64            `bson:"tax" json:"tax"`
	Discount        float64            `bson:"discount" json:"discount"`
	Total           float64            `bson:"total" json:"total"`
	Status          OrderStatus        `bson:"status" json:"status"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IsCancelled     bool               `bson:"isCancelled" json:"isCancelled"`
	CancelledAt     *time.Time         `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	IsPaid          bool               `bson:"isPaid" json:"isPaid"`
	PaidAt          *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsShipped       bool               `bson:"isShipped" json:"isShipped"`
	ShippedAt       *time.Time         `bson:"shippedAt,omitempty" json:"shippedAt,omitempty"`
	IsDelivered     bool               `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecalculateTotals restores the order totals invariant from the item
// snapshot: subtotal = Σ(price×quantity), total = subtotal + tax +
// shipping cost − discount. Called at creation and whenever items change;
// items are otherwise immutable.
func (o *Order) RecalculateTotals() {
	var subtotal float64
	for _, item := range o.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	o.Subtotal = subtotal
	o.Total = subtotal + o.Tax + o.Shipping.Cost - o.Discount
}

// GenerateOrderNumber produces an ORD-<epoch millis>-<0..999> number.
// EnsureOrderNumber guards against regenerating one that is already set.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}

func (o *Order) EnsureOrderNumber() {
	if o.OrderNumber == "" {
		o.OrderNumber = GenerateOrderNumber()
	}
}

// paidStatuses are the payment status strings that satisfy the guard on
// the transition to shipped. "success" is the processor's own success
// string; "Successful" survives from older records.
var paidStatuses = map[string]bool{
	"paid":       true,
	"success":    true,
	"Successful": true,
}

// PaymentSucceeded reports whether the order's payment status reads as a
// successful value.
func (o *Order) PaymentSucceeded() bool {
	return o.IsPaid || paidStatuses[o.Payment.Status]
}

type CreateOrderRequest struct {
	ShippingAddress Address  `json:"shippingAddress" binding:"required"`
	BillingAddress  *Address `json:"billingAddress"`
	PaymentMethod   string   `json:"paymentMethod" binding:"required"`
	TaxPrice        float64  `json:"taxPrice"`
	ShippingPrice   float64  `json:"shippingPrice"`
	Notes           string   `json:"notes"`
}

// OrderListResponse is the paginated admin listing payload.
type OrderListResponse struct {
	Orders []Order  `json:"orders"`
	Meta   MetaData `json:"meta"`
}

type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}
