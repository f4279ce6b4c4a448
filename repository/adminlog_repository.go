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

// AdminLogRepository is append-only: entries are created and listed,
// never updated or deleted.
type AdminLogRepository interface {
	Append(ctx context.Context, entry *models.AdminLog) error
	FindByOrder(ctx context.Context, orderID primitive.ObjectID) ([]models.AdminLog, error)
	FindAll(ctx context.Context, page, limit int) ([]models.AdminLog, int64, error)
}

type MongoAdminLogRepository struct {
	collection *mongo.Collection
}

func NewMongoAdminLogRepository(db *mongo.Database) AdminLogRepository {
	return &MongoAdminLogRepository{collection: db.Collection("adminlogs")}
}

func (r *MongoAdminLogRepository) Append(ctx context.Context, entry *models.AdminLog) error {
	entry.CreatedAt = time.Now()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *MongoAdminLogRepository) FindByOrder(ctx context.Context, orderID primitive.ObjectID) ([]models.AdminLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"targetOrder": orderID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.AdminLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *MongoAdminLogRepository) FindAll(ctx context.Context, page, limit int) ([]models.AdminLog, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []models.AdminLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
