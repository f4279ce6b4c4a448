package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yashrajoria/storefront-backend/kafka"
	"github.com/yashrajoria/storefront-backend/mailer"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OrderService owns order creation, the status workflow and the admin
// audit trail.
type OrderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	products repository.ProductRepository
	users    repository.UserRepository
	logs     repository.AdminLogRepository
	events   *kafka.Producer
	mail     mailer.EmailSender
	logger   *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	logs repository.AdminLogRepository,
	events *kafka.Producer,
	mail mailer.EmailSender,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		users:    users,
		logs:     logs,
		events:   events,
		mail:     mail,
		logger:   logger,
	}
}

// CreateFromCart snapshots the caller's cart into a new order, then
// deletes the cart. The two writes are not transactional: a crash in
// between leaves an orphaned cart that the next read simply replaces.
func (s *OrderService) CreateFromCart(ctx context.Context, userID primitive.ObjectID, req *models.CreateOrderRequest) (*models.Order, *ServiceError) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 400, Message: "Cart is empty"}
		}
		s.logger.Error("Failed to fetch cart", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch cart"}
	}
	if len(cart.Items) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Cart is empty"}
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		snapshot := models.ProductSnapshot{ID: line.Product, Price: line.Price, ProductType: line.ProductType}
		if product, err := s.products.FindByID(ctx, line.Product); err == nil {
			snapshot.Name = product.Name
			if len(product.Images) > 0 {
				snapshot.Image = product.Images[0].URL
			}
		}
		items = append(items, models.OrderItem{
			Product:  snapshot,
			Variant:  line.Variant,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}

	order := &models.Order{
		User:            userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Payment:         models.PaymentInfo{Method: req.PaymentMethod, Status: "pending"},
		Shipping:        models.ShippingInfo{Cost: req.ShippingPrice},
		Tax:             req.TaxPrice,
		Status:          models.OrderPending,
		Notes:           req.Notes,
	}
	order.RecalculateTotals()
	order.EnsureOrderNumber()

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create order"}
	}

	if err := s.carts.Delete(ctx, cart.ID); err != nil && !isNotFound(err) {
		// The order is already placed; an orphaned cart is overwritten on
		// the user's next cart write.
		s.logger.Warn("Failed to delete cart after order creation",
			zap.String("order", order.OrderNumber), zap.Error(err))
	}

	s.events.Publish(ctx, kafka.EventOrderCreated, order.OrderNumber, order)
	s.sendConfirmation(ctx, order)

	return order, nil
}

// GetByID returns one order. Non-admins only see their own.
func (s *OrderService) GetByID(ctx context.Context, orderID string, requester primitive.ObjectID, isAdmin bool) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	if !isAdmin && order.User != requester {
		return nil, &ServiceError{StatusCode: 403, Message: "Access denied"}
	}
	return order, nil
}

func (s *OrderService) GetMyOrders(ctx context.Context, userID primitive.ObjectID, page, limit int) (*models.OrderListResponse, *ServiceError) {
	page, limit = normalizePage(page, limit)
	orders, total, err := s.orders.FindByUser(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list orders"}
	}
	return buildOrderList(orders, total, page, limit), nil
}

// GetAll is the admin listing, filterable by status and order number
// prefix.
func (s *OrderService) GetAll(ctx context.Context, filter repository.OrderFilter, page, limit int) (*models.OrderListResponse, *ServiceError) {
	page, limit = normalizePage(page, limit)
	orders, total, err := s.orders.FindAll(ctx, filter, page, limit)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list orders"}
	}
	return buildOrderList(orders, total, page, limit), nil
}

// CycleStatus advances the order one step through pending → shipped →
// delivered and wraps back to pending. Shipping requires a successful
// payment; the wrap clears the progress flags. Every transition writes
// one audit entry.
func (s *OrderService) CycleStatus(ctx context.Context, orderID string, adminID primitive.ObjectID) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	index := -1
	for i, status := range models.StatusCycle {
		if order.Status == status {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, &ServiceError{StatusCode: 400, Message: fmt.Sprintf("Order has invalid status %q", order.Status)}
	}

	next := models.StatusCycle[(index+1)%len(models.StatusCycle)]
	now := time.Now()

	switch next {
	case models.OrderShipped:
		if !order.PaymentSucceeded() {
			return nil, &ServiceError{StatusCode: 400, Message: "Order must be paid before it can be shipped"}
		}
		order.IsShipped = true
		order.ShippedAt = &now
	case models.OrderDelivered:
		order.IsDelivered = true
		order.DeliveredAt = &now
	case models.OrderPending:
		// Wrap-around intentionally regresses progress.
		order.IsShipped = false
		order.ShippedAt = nil
		order.IsDelivered = false
		order.DeliveredAt = nil
	}
	order.Status = next

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order status", zap.String("order", order.OrderNumber), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}

	s.appendLog(ctx, adminID, string(next), order.ID)
	return order, nil
}

// Cancel toggles isCancelled. A second call un-cancels; that
// bidirectionality is intentional. Dispatched orders cannot be
// cancelled. Every call writes one audit entry.
func (s *OrderService) Cancel(ctx context.Context, orderID string, adminID primitive.ObjectID) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	if order.Status == models.OrderShipped || order.Status == models.OrderDelivered {
		return nil, &ServiceError{StatusCode: 409, Message: "Cannot cancel an order that has been shipped or delivered"}
	}

	if order.IsCancelled {
		order.IsCancelled = false
		order.CancelledAt = nil
	} else {
		now := time.Now()
		order.IsCancelled = true
		order.CancelledAt = &now
	}

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order", zap.String("order", order.OrderNumber), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}

	s.appendLog(ctx, adminID, models.AdminLogCancelled, order.ID)
	return order, nil
}

// MarkPaid is the direct, non-cyclic payment flag path.
func (s *OrderService) MarkPaid(ctx context.Context, orderID string) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	if order.IsPaid {
		return nil, &ServiceError{StatusCode: 409, Message: "Order is already paid"}
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.Payment.Status = "paid"

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order", zap.String("order", order.OrderNumber), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}
	return order, nil
}

// MarkShipped is the direct shipping path. It keeps the same payment
// guard as the cyclic path.
func (s *OrderService) MarkShipped(ctx context.Context, orderID string) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	if order.IsShipped {
		return nil, &ServiceError{StatusCode: 409, Message: "Order is already shipped"}
	}
	if !order.PaymentSucceeded() {
		return nil, &ServiceError{StatusCode: 400, Message: "Order must be paid before it can be shipped"}
	}

	now := time.Now()
	order.IsShipped = true
	order.ShippedAt = &now
	order.Status = models.OrderShipped

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order", zap.String("order", order.OrderNumber), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}
	return order, nil
}

// MarkDelivered is the direct delivery path.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID string) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	if order.IsDelivered {
		return nil, &ServiceError{StatusCode: 409, Message: "Order is already delivered"}
	}

	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now
	order.Status = models.OrderDelivered

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order", zap.String("order", order.OrderNumber), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}
	return order, nil
}

// GetAuditLog lists the audit entries for one order, newest first.
func (s *OrderService) GetAuditLog(ctx context.Context, orderID string) ([]models.AdminLog, *ServiceError) {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid order id"}
	}
	entries, err := s.logs.FindByOrder(ctx, id)
	if err != nil {
		s.logger.Error("Failed to list audit log", zap.String("order", orderID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list audit log"}
	}
	return entries, nil
}

// ListAuditLogs pages through the audit trail across all orders, newest
// first.
func (s *OrderService) ListAuditLogs(ctx context.Context, page, limit int) ([]models.AdminLog, int64, *ServiceError) {
	page, limit = normalizePage(page, limit)
	entries, total, err := s.logs.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list audit logs", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list audit logs"}
	}
	if entries == nil {
		entries = []models.AdminLog{}
	}
	return entries, total, nil
}

func (s *OrderService) findOrder(ctx context.Context, orderID string) (*models.Order, *ServiceError) {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid order id"}
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to fetch order", zap.String("order", orderID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}
	return order, nil
}

func (s *OrderService) appendLog(ctx context.Context, adminID primitive.ObjectID, action string, orderID primitive.ObjectID) {
	entry := &models.AdminLog{Admin: adminID, Action: action, TargetOrder: orderID}
	if err := s.logs.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to append audit log",
			zap.String("action", action), zap.String("order", orderID.Hex()), zap.Error(err))
	}
}

func (s *OrderService) sendConfirmation(ctx context.Context, order *models.Order) {
	if s.mail == nil {
		return
	}
	user, err := s.users.FindByID(ctx, order.User)
	if err != nil {
		s.logger.Warn("Failed to resolve user for confirmation email",
			zap.String("order", order.OrderNumber), zap.Error(err))
		return
	}
	subject := fmt.Sprintf("Order confirmation %s", order.OrderNumber)
	body := fmt.Sprintf("<p>Thank you for your order <strong>%s</strong>.</p><p>Total: %.2f</p>",
		order.OrderNumber, order.Total)
	if _, err := s.mail.SendEmail(ctx, user.Email, subject, body); err != nil {
		s.logger.Warn("Failed to send confirmation email",
			zap.String("order", order.OrderNumber), zap.Error(err))
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func buildOrderList(orders []models.Order, total int64, page, limit int) *models.OrderListResponse {
	if orders == nil {
		orders = []models.Order{}
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return &models.OrderListResponse{
		Orders: orders,
		Meta: models.MetaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  totalPages,
			HasMore:     int64(page) < totalPages,
		},
	}
}
