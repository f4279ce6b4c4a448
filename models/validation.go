package models

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterValidators installs custom binding validations on gin's
// validator engine. "objectid" checks that a string field holds a valid
// hex ObjectID so malformed ids fail at bind time.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		_, err := primitive.ObjectIDFromHex(fl.Field().String())
		return err == nil
	})
}
