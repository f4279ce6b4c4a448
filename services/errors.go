package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceError is a typed error carrying the HTTP status the controller
// should answer with.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
