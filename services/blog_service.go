package services

import (
	"context"
	"time"

	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type BlogService struct {
	blogs  repository.BlogRepository
	logger *zap.Logger
}

func NewBlogService(blogs repository.BlogRepository, logger *zap.Logger) *BlogService {
	return &BlogService{blogs: blogs, logger: logger}
}

func (s *BlogService) Create(ctx context.Context, req *models.BlogRequest) (*models.Blog, *ServiceError) {
	blog := &models.Blog{
		Title:         req.Title,
		Slug:          req.Slug,
		Description:   req.Description,
		HeaderImage:   req.HeaderImage,
		Featured:      req.Featured,
		MagazineIssue: req.MagazineIssue,
		Category:      req.Category,
		ContentBlocks: req.ContentBlocks,
		Author:        req.Author,
		Tags:          req.Tags,
		PublishedAt:   time.Now(),
	}
	if blog.Slug == "" {
		blog.Slug = models.Slugify(blog.Title)
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &ServiceError{StatusCode: 409, Message: "A post with this slug already exists"}
		}
		s.logger.Error("Failed to create blog post", zap.String("slug", blog.Slug), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create blog post"}
	}
	return blog, nil
}

func (s *BlogService) Update(ctx context.Context, slug string, req *models.BlogRequest) (*models.Blog, *ServiceError) {
	blog, svcErr := s.GetBySlug(ctx, slug)
	if svcErr != nil {
		return nil, svcErr
	}

	blog.Title = req.Title
	blog.Description = req.Description
	blog.HeaderImage = req.HeaderImage
	blog.Featured = req.Featured
	blog.MagazineIssue = req.MagazineIssue
	blog.Category = req.Category
	blog.ContentBlocks = req.ContentBlocks
	blog.Author = req.Author
	blog.Tags = req.Tags
	if req.Slug != "" {
		blog.Slug = req.Slug
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &ServiceError{StatusCode: 409, Message: "A post with this slug already exists"}
		}
		s.logger.Error("Failed to update blog post", zap.String("slug", slug), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update blog post"}
	}
	return blog, nil
}

func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.Blog, *ServiceError) {
	blog, err := s.blogs.FindBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Blog post not found"}
		}
		s.logger.Error("Failed to fetch blog post", zap.String("slug", slug), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch blog post"}
	}
	return blog, nil
}

func (s *BlogService) List(ctx context.Context, filter repository.BlogFilter, page, limit int) ([]models.Blog, int64, *ServiceError) {
	page, limit = normalizePage(page, limit)
	blogs, total, err := s.blogs.Find(ctx, filter, page, limit)
	if err != nil {
		s.logger.Error("Failed to list blog posts", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list blog posts"}
	}
	if blogs == nil {
		blogs = []models.Blog{}
	}
	return blogs, total, nil
}

func (s *BlogService) Delete(ctx context.Context, blogID string) *ServiceError {
	id, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid blog id"}
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 404, Message: "Blog post not found"}
		}
		s.logger.Error("Failed to delete blog post", zap.String("blog", blogID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete blog post"}
	}
	return nil
}
