package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"github.com/yashrajoria/storefront-backend/services"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

func (pc *ProductController) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	created, svcErr := pc.products.Create(c.Request.Context(), &product)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (pc *ProductController) Update(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	updated, svcErr := pc.products.Update(c.Request.Context(), c.Param("id"), &product)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// List supports ?type=, ?tag=, ?search= and pagination. Non-admin
// listings only see active products.
func (pc *ProductController) List(c *gin.Context) {
	page, limit := pageParams(c)
	filter := repository.ProductFilter{
		ProductType: c.Query("type"),
		Tag:         c.Query("tag"),
		Search:      c.Query("search"),
		ActiveOnly:  c.Query("all") != "true",
	}

	products, total, svcErr := pc.products.List(c.Request.Context(), filter, page, limit)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": total, "page": page, "limit": limit})
}

func (pc *ProductController) GetByID(c *gin.Context) {
	product, svcErr := pc.products.GetByID(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) GetBySlug(c *gin.Context) {
	product, svcErr := pc.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) Delete(c *gin.Context) {
	if svcErr := pc.products.Delete(c.Request.Context(), c.Param("id")); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
