package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"github.com/yashrajoria/storefront-backend/services"
)

type BlogController struct {
	blogs *services.BlogService
}

func NewBlogController(blogs *services.BlogService) *BlogController {
	return &BlogController{blogs: blogs}
}

func (bc *BlogController) Create(c *gin.Context) {
	var req models.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	blog, svcErr := bc.blogs.Create(c.Request.Context(), &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, blog)
}

func (bc *BlogController) Update(c *gin.Context) {
	var req models.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	blog, svcErr := bc.blogs.Update(c.Request.Context(), c.Param("slug"), &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// List supports ?category=, ?issue= and ?featured=true.
func (bc *BlogController) List(c *gin.Context) {
	page, limit := pageParams(c)
	filter := repository.BlogFilter{
		Category:      c.Query("category"),
		MagazineIssue: c.Query("issue"),
		FeaturedOnly:  c.Query("featured") == "true",
	}

	blogs, total, svcErr := bc.blogs.List(c.Request.Context(), filter, page, limit)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": blogs, "total": total, "page": page, "limit": limit})
}

func (bc *BlogController) GetBySlug(c *gin.Context) {
	blog, svcErr := bc.blogs.GetBySlug(c.Request.Context(), c.Param("slug"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (bc *BlogController) Delete(c *gin.Context) {
	if svcErr := bc.blogs.Delete(c.Request.Context(), c.Param("id")); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog post deleted"})
}
