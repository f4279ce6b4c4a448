package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront-backend/middleware"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/services"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// GetCart returns the caller's cart, or the empty shape when none
// exists. Reading never creates one.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	cart, svcErr := cc.carts.GetCart(c.Request.Context(), userID)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	if cart == nil {
		c.JSON(http.StatusOK, models.EmptyCartResponse{Items: []models.CartItem{}})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) AddItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	cart, svcErr := cc.carts.AddItem(c.Request.Context(), userID, &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	cart, svcErr := cc.carts.UpdateItemQuantity(c.Request.Context(), userID, c.Param("itemId"), req.Quantity)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	cart, svcErr := cc.carts.RemoveItem(c.Request.Context(), userID, c.Param("itemId"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) Clear(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	if svcErr := cc.carts.Clear(c.Request.Context(), userID); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
