package repository

import (
	"context"
	"time"

	"github.com/yashrajoria/storefront-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartRepository defines data access for the per-user cart. FindByUser
// returns mongo.ErrNoDocuments when the user has no cart; it never
// creates one as a side effect.
type CartRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, cartID primitive.ObjectID) error
}

type MongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &MongoCartRepository{collection: db.Collection("carts")}
}

func (r *MongoCartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save upserts the cart keyed by owning user; the unique index on "user"
// keeps it one cart per user even under concurrent writers.
func (r *MongoCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	opts := mongoReplaceUpsert()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"user": cart.User}, cart, opts)
	return err
}

func (r *MongoCartRepository) Delete(ctx context.Context, cartID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": cartID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
