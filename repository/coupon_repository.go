package repository

import (
	"context"
	"time"

	"github.com/yashrajoria/storefront-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	// FindActiveByCode matches an active coupon whose validity window
	// contains the given instant. Codes are stored uppercased.
	FindActiveByCode(ctx context.Context, code string, now time.Time) (*models.Coupon, error)
	FindAll(ctx context.Context) ([]models.Coupon, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoCouponRepository struct {
	collection *mongo.Collection
}

func NewMongoCouponRepository(db *mongo.Database) CouponRepository {
	return &MongoCouponRepository{collection: db.Collection("coupons")}
}

func (r *MongoCouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	now := time.Now()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, coupon)
	return err
}

func (r *MongoCouponRepository) FindActiveByCode(ctx context.Context, code string, now time.Time) (*models.Coupon, error) {
	filter := bson.M{
		"code":      code,
		"isActive":  true,
		"startDate": bson.M{"$lte": now},
		"endDate":   bson.M{"$gte": now},
	}
	var coupon models.Coupon
	if err := r.collection.FindOne(ctx, filter).Decode(&coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *MongoCouponRepository) FindAll(ctx context.Context) ([]models.Coupon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var coupons []models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *MongoCouponRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
