package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront-backend/middleware"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/services"
)

type CouponController struct {
	coupons *services.CouponService
}

func NewCouponController(coupons *services.CouponService) *CouponController {
	return &CouponController{coupons: coupons}
}

func (cc *CouponController) Create(c *gin.Context) {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var req models.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	coupon, svcErr := cc.coupons.Create(c.Request.Context(), adminID, &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

func (cc *CouponController) Validate(c *gin.Context) {
	var req models.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	res, svcErr := cc.coupons.Validate(c.Request.Context(), &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (cc *CouponController) List(c *gin.Context) {
	coupons, svcErr := cc.coupons.List(c.Request.Context())
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

func (cc *CouponController) Delete(c *gin.Context) {
	if svcErr := cc.coupons.Delete(c.Request.Context(), c.Param("id")); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
}
