package services

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/yashrajoria/storefront-backend/kafka"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// PaymentService initializes hosted checkouts and reconciles processor
// webhooks into orders.
type PaymentService struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	paystack *PaystackService
	events   *kafka.Producer
	logger   *zap.Logger
}

func NewPaymentService(orders repository.OrderRepository, users repository.UserRepository, paystack *PaystackService, events *kafka.Producer, logger *zap.Logger) *PaymentService {
	return &PaymentService{orders: orders, users: users, paystack: paystack, events: events, logger: logger}
}

// InitializePayment opens a provider-hosted checkout session for the
// caller and returns the redirect URL plus the provider reference.
// Nothing is written locally; the webhook creates the order.
func (s *PaymentService) InitializePayment(ctx context.Context, userID primitive.ObjectID, req *models.InitializePaymentRequest) (*models.InitializePaymentResponse, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("Failed to fetch user", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to initialize payment"}
	}

	// The processor expects the amount in its minor unit.
	amount := int64(math.Round(req.Amount * 100))

	res, err := s.paystack.InitializeTransaction(ctx, user.Email, amount, req.CallbackURL, req.Items, req.ShippingAddress)
	if err != nil {
		s.logger.Error("Payment initialization failed", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 502, Message: "Payment provider is unavailable"}
	}
	return res, nil
}

// HandleWebhook processes one processor notification. The signature is
// verified over the raw body before any parsing; a mismatch rejects the
// request outright. Only charge.success creates records, every other
// event is acknowledged without writes so the processor stops retrying.
func (s *PaymentService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) *ServiceError {
	if !s.paystack.VerifySignature(rawBody, signature) {
		s.logger.Warn("Webhook signature mismatch")
		return &ServiceError{StatusCode: 401, Message: "Invalid signature"}
	}

	var event models.WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return &ServiceError{StatusCode: 400, Message: "Malformed webhook payload"}
	}

	if event.Event != models.WebhookEventChargeSuccess {
		s.logger.Info("Ignoring webhook event", zap.String("event", event.Event))
		return nil
	}

	return s.reconcileChargeSuccess(ctx, &event.Data)
}

// reconcileChargeSuccess persists a new paid order from the event. Line
// items come from the checkout metadata the processor carried, not from
// any server-side cart. An unknown customer email is a processing
// failure so the processor retries.
func (s *PaymentService) reconcileChargeSuccess(ctx context.Context, data *models.WebhookData) *ServiceError {
	user, err := s.users.FindByEmail(ctx, data.Customer.Email)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn("Webhook customer email not found", zap.String("email", data.Customer.Email))
			return &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("Failed to resolve webhook customer", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to process webhook"}
	}

	if existing, err := s.orders.FindByPaymentReference(ctx, data.Reference); err == nil && existing != nil {
		s.logger.Info("Webhook already reconciled", zap.String("reference", data.Reference))
		return nil
	}

	items := make([]models.OrderItem, 0, len(data.Metadata.Items))
	for _, meta := range data.Metadata.Items {
		snapshot := models.ProductSnapshot{Name: meta.Name, Price: meta.Price, Image: meta.Image}
		if id, err := primitive.ObjectIDFromHex(meta.ProductID); err == nil {
			snapshot.ID = id
		}
		quantity := meta.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items = append(items, models.OrderItem{
			Product:  snapshot,
			Variant:  meta.Variant,
			Quantity: quantity,
			Price:    meta.Price,
		})
	}

	now := time.Now()
	order := &models.Order{
		User:   user.ID,
		Items:  items,
		Status: models.OrderPending,
		Payment: models.PaymentInfo{
			Method:        "paystack",
			Status:        data.Status,
			TransactionID: transactionID(data.ID),
			Reference:     data.Reference,
			Amount:        float64(data.Amount) / 100,
		},
		IsPaid: true,
		PaidAt: &now,
	}
	if data.Metadata.ShippingAddress != nil {
		order.ShippingAddress = *data.Metadata.ShippingAddress
	}
	order.RecalculateTotals()
	order.EnsureOrderNumber()

	if err := s.orders.Create(ctx, order); err != nil {
		// The unique payment.reference index catches concurrent
		// redeliveries that raced past the lookup above.
		if mongo.IsDuplicateKeyError(err) {
			s.logger.Info("Webhook already reconciled", zap.String("reference", data.Reference))
			return nil
		}
		s.logger.Error("Failed to persist webhook order", zap.String("reference", data.Reference), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to process webhook"}
	}

	s.events.Publish(ctx, kafka.EventPaymentSucceeded, data.Reference, order)
	s.logger.Info("Webhook order created",
		zap.String("order", order.OrderNumber), zap.String("reference", data.Reference))
	return nil
}

// PaymentStatus returns the payment status of the order holding the
// given provider reference, and nothing else.
func (s *PaymentService) PaymentStatus(ctx context.Context, reference string) (*models.PaymentStatusResponse, *ServiceError) {
	order, err := s.orders.FindByPaymentReference(ctx, reference)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Payment not found"}
		}
		s.logger.Error("Failed to fetch payment", zap.String("reference", reference), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch payment"}
	}
	return &models.PaymentStatusResponse{Reference: reference, Status: order.Payment.Status}, nil
}

func transactionID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
