package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code            string             `bson:"code" json:"code"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	DiscountType    DiscountType       `bson:"discountType" json:"discountType"`
	DiscountValue   float64            `bson:"discountValue" json:"discountValue"`
	MinimumPurchase float64            `bson:"minimumPurchase,omitempty" json:"minimumPurchase,omitempty"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"`
	EndDate         time.Time          `bson:"endDate" json:"endDate"`
	MaxUses         int                `bson:"maxUses,omitempty" json:"maxUses,omitempty"`
	CurrentUses     int                `bson:"currentUses" json:"currentUses"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	CreatedBy       primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Normalize uppercases the code and deactivates a coupon whose window has
// already closed. Invoked explicitly before every write.
func (c *Coupon) Normalize(now time.Time) {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	if c.EndDate.Before(now) {
		c.IsActive = false
	}
}

// ValidateWindow enforces start < end at write time.
func (c *Coupon) ValidateWindow() error {
	if !c.EndDate.After(c.StartDate) {
		return fmt.Errorf("end date must be after start date")
	}
	return nil
}

type CreateCouponRequest struct {
	Code            string       `json:"code" binding:"required,min=3,max=64"`
	Description     string       `json:"description"`
	DiscountType    DiscountType `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue   float64      `json:"discountValue" binding:"required,gte=0"`
	MinimumPurchase float64      `json:"minimumPurchase" binding:"gte=0"`
	StartDate       time.Time    `json:"startDate"`
	EndDate         time.Time    `json:"endDate" binding:"required"`
	MaxUses         int          `json:"maxUses" binding:"gte=0"`
}

type ValidateCouponRequest struct {
	Code      string  `json:"code" binding:"required"`
	CartTotal float64 `json:"cartTotal" binding:"required,gt=0"`
}

// ValidateCouponResponse carries discount fields only. Applying the
// discount to a cart or order is the caller's composition.
type ValidateCouponResponse struct {
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`
}
