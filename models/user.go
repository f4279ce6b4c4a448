package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type Profile struct {
	FirstName string `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar    string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

type User struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Email                string               `bson:"email" json:"email"`
	Password             string               `bson:"password" json:"-"`
	Role                 string               `bson:"role" json:"role"`
	Profile              Profile              `bson:"profile,omitempty" json:"profile,omitempty"`
	Addresses            []Address            `bson:"addresses,omitempty" json:"addresses,omitempty"`
	Wishlist             []primitive.ObjectID `bson:"wishlist,omitempty" json:"wishlist,omitempty"`
	ResetPasswordToken   string               `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires *time.Time           `bson:"resetPasswordExpires,omitempty" json:"-"`
	CreatedAt            time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type AddressRequest struct {
	Type      string `json:"type" binding:"omitempty,oneof=home work other"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country" binding:"required"`
	IsDefault *bool  `json:"isDefault"`
}

// UserResponse is the public projection of a user; never includes the
// password hash or reset-token fields.
type UserResponse struct {
	ID      primitive.ObjectID `json:"_id"`
	Email   string             `json:"email"`
	Role    string             `json:"role"`
	Profile Profile            `json:"profile,omitempty"`
}

func (u *User) Public() UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Role: u.Role, Profile: u.Profile}
}
