package repository

import (
	"context"

	"github.com/yashrajoria/storefront-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BlogFilter struct {
	Category      string
	MagazineIssue string
	FeaturedOnly  bool
}

type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	Update(ctx context.Context, blog *models.Blog) error
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	Find(ctx context.Context, filter BlogFilter, page, limit int) ([]models.Blog, int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoBlogRepository struct {
	collection *mongo.Collection
}

func NewMongoBlogRepository(db *mongo.Database) BlogRepository {
	return &MongoBlogRepository{collection: db.Collection("blogs")}
}

func (r *MongoBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if blog.ID.IsZero() {
		blog.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, blog)
	return err
}

func (r *MongoBlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": blog.ID}, blog)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoBlogRepository) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *MongoBlogRepository) Find(ctx context.Context, filter BlogFilter, page, limit int) ([]models.Blog, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.MagazineIssue != "" {
		query["magazineIssue"] = filter.MagazineIssue
	}
	if filter.FeaturedOnly {
		query["featured"] = true
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var blogs []models.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *MongoBlogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
