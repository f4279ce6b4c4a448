package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront-backend/middleware"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"github.com/yashrajoria/storefront-backend/services"
)

type OrderController struct {
	orders   *services.OrderService
	payments *services.PaymentService
}

func NewOrderController(orders *services.OrderService, payments *services.PaymentService) *OrderController {
	return &OrderController{orders: orders, payments: payments}
}

func (oc *OrderController) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	order, svcErr := oc.orders.CreateFromCart(c.Request.Context(), userID, &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	page, limit := pageParams(c)
	list, svcErr := oc.orders.GetMyOrders(c.Request.Context(), userID, page, limit)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (oc *OrderController) GetByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	order, svcErr := oc.orders.GetByID(c.Request.Context(), c.Param("id"), userID, middleware.IsAdmin(c))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetAll is the admin listing, filterable by ?status= and ?search=
// (order number prefix).
func (oc *OrderController) GetAll(c *gin.Context) {
	page, limit := pageParams(c)
	filter := repository.OrderFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	list, svcErr := oc.orders.GetAll(c.Request.Context(), filter, page, limit)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (oc *OrderController) CycleStatus(c *gin.Context) {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	order, svcErr := oc.orders.CycleStatus(c.Request.Context(), c.Param("id"), adminID)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) Cancel(c *gin.Context) {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	order, svcErr := oc.orders.Cancel(c.Request.Context(), c.Param("id"), adminID)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) MarkPaid(c *gin.Context) {
	order, svcErr := oc.orders.MarkPaid(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) MarkShipped(c *gin.Context) {
	order, svcErr := oc.orders.MarkShipped(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) MarkDelivered(c *gin.Context) {
	order, svcErr := oc.orders.MarkDelivered(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) GetAuditLog(c *gin.Context) {
	entries, svcErr := oc.orders.GetAuditLog(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": entries})
}

func (oc *OrderController) ListAuditLogs(c *gin.Context) {
	page, limit := pageParams(c)
	entries, total, svcErr := oc.orders.ListAuditLogs(c.Request.Context(), page, limit)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": entries, "total": total})
}

func (oc *OrderController) InitializePayment(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var req models.InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	res, svcErr := oc.payments.InitializePayment(c.Request.Context(), userID, &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Webhook receives processor notifications. The raw body is read before
// any parsing so the signature check runs over the exact bytes received.
// No auth middleware runs on this route.
func (oc *OrderController) Webhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	signature := c.GetHeader("x-paystack-signature")
	if svcErr := oc.payments.HandleWebhook(c.Request.Context(), rawBody, signature); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Webhook processed"})
}

func (oc *OrderController) PaymentStatus(c *gin.Context) {
	status, svcErr := oc.payments.PaymentStatus(c.Request.Context(), c.Param("reference"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, status)
}
