package services

import (
	"context"

	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ProductService is the catalog. The cart and order flows only read it;
// writes are admin CRUD.
type ProductService struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewProductService(products repository.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, *ServiceError) {
	if product.Name == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "Product name is required"}
	}
	if product.Price < 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Product price cannot be negative"}
	}
	if product.ProductType == "" {
		product.ProductType = models.ProductRegular
	}
	if err := product.ValidatePayload(); err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: err.Error()}
	}
	if product.Slug == "" {
		product.Slug = models.Slugify(product.Name)
	}

	if err := s.products.Create(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &ServiceError{StatusCode: 409, Message: "A product with this slug already exists"}
		}
		s.logger.Error("Failed to create product", zap.String("slug", product.Slug), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create product"}
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, productID string, update *models.Product) (*models.Product, *ServiceError) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid product id"}
	}

	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.String("product", productID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}

	update.ID = existing.ID
	update.CreatedAt = existing.CreatedAt
	if update.ProductType == "" {
		update.ProductType = existing.ProductType
	}
	if err := update.ValidatePayload(); err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: err.Error()}
	}
	if update.Slug == "" {
		update.Slug = models.Slugify(update.Name)
	}

	if err := s.products.Update(ctx, update); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &ServiceError{StatusCode: 409, Message: "A product with this slug already exists"}
		}
		s.logger.Error("Failed to update product", zap.String("product", productID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update product"}
	}
	return update, nil
}

func (s *ProductService) GetByID(ctx context.Context, productID string) (*models.Product, *ServiceError) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid product id"}
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.String("product", productID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}
	return product, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, *ServiceError) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.String("slug", slug), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter, page, limit int) ([]models.Product, int64, *ServiceError) {
	page, limit = normalizePage(page, limit)
	products, total, err := s.products.Find(ctx, filter, page, limit)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list products"}
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, total, nil
}

func (s *ProductService) Delete(ctx context.Context, productID string) *ServiceError {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid product id"}
	}
	if err := s.products.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to delete product", zap.String("product", productID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete product"}
	}
	return nil
}
