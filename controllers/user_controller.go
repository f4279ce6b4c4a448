package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront-backend/middleware"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	user, svcErr := uc.users.GetProfile(c.Request.Context(), userID)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	user, svcErr := uc.users.UpdateProfile(c.Request.Context(), userID, &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

func (uc *UserController) AddAddress(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	user, svcErr := uc.users.AddAddress(c.Request.Context(), userID, &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"addresses": user.Addresses})
}

func (uc *UserController) UpdateAddress(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	user, svcErr := uc.users.UpdateAddress(c.Request.Context(), userID, c.Param("addressId"), &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": user.Addresses})
}

func (uc *UserController) RemoveAddress(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	user, svcErr := uc.users.RemoveAddress(c.Request.Context(), userID, c.Param("addressId"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": user.Addresses})
}

func (uc *UserController) GetWishlist(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	products, svcErr := uc.users.GetWishlist(c.Request.Context(), userID)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": products})
}

func (uc *UserController) AddToWishlist(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	if svcErr := uc.users.AddToWishlist(c.Request.Context(), userID, c.Param("productId")); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to wishlist"})
}

func (uc *UserController) RemoveFromWishlist(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	if svcErr := uc.users.RemoveFromWishlist(c.Request.Context(), userID, c.Param("productId")); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}
