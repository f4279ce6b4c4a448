package services_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type orderFixture struct {
	svc      *services.OrderService
	orders   *mockOrderRepo
	carts    *mockCartRepo
	products *mockProductRepo
	users    *mockUserRepo
	logs     *mockAdminLogRepo
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:   newMockOrderRepo(),
		carts:    newMockCartRepo(),
		products: newMockProductRepo(),
		users:    newMockUserRepo(),
		logs:     newMockAdminLogRepo(),
	}
	logger, _ := zap.NewDevelopment()
	f.svc = services.NewOrderService(f.orders, f.carts, f.products, f.users, f.logs, nil, nil, logger)
	return f
}

func (f *orderFixture) seedCart(user primitive.ObjectID, items ...models.CartItem) *models.Cart {
	cart := models.NewCart(user)
	cart.ID = primitive.NewObjectID()
	cart.Items = items
	cart.RecalculateTotals()
	f.carts.carts[user] = cart
	return cart
}

func (f *orderFixture) seedOrder(status models.OrderStatus, paymentStatus string) *models.Order {
	order := &models.Order{
		ID:          primitive.NewObjectID(),
		OrderNumber: models.GenerateOrderNumber(),
		User:        primitive.NewObjectID(),
		Status:      status,
		Payment:     models.PaymentInfo{Status: paymentStatus},
	}
	f.orders.orders[order.ID] = order
	return order
}

func cartLine(product primitive.ObjectID, qty int, price float64) models.CartItem {
	return models.CartItem{
		ID:       primitive.NewObjectID(),
		Product:  product,
		Quantity: qty,
		Price:    price,
	}
}

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{13}-\d{1,3}$`)

func TestOrder_CreateFromCart(t *testing.T) {
	f := newOrderFixture()
	user := f.users.add(&models.User{Email: "buyer@example.com"}).ID
	product := f.products.add(regularProduct("Canvas Tote", 25))
	f.seedCart(user, cartLine(product.ID, 2, 25))

	order, svcErr := f.svc.CreateFromCart(context.Background(), user, &models.CreateOrderRequest{
		ShippingAddress: models.Address{Street: "1 Main St", City: "Lagos", Country: "NG"},
		PaymentMethod:   "card",
		TaxPrice:        5,
		ShippingPrice:   10,
	})
	require.Nil(t, svcErr)

	assert.Equal(t, 50.0, order.Subtotal)
	assert.Equal(t, 65.0, order.Total)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Regexp(t, orderNumberPattern, order.OrderNumber)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Canvas Tote", order.Items[0].Product.Name)
	assert.Equal(t, 25.0, order.Items[0].Price)

	// The source cart is deleted after the order is saved.
	assert.Empty(t, f.carts.carts)
}

func TestOrder_CreateFromCart_SnapshotSurvivesCatalogEdits(t *testing.T) {
	f := newOrderFixture()
	user := f.users.add(&models.User{Email: "buyer@example.com"}).ID
	product := f.products.add(regularProduct("Mug", 8))
	f.seedCart(user, cartLine(product.ID, 1, 8))

	order, svcErr := f.svc.CreateFromCart(context.Background(), user, &models.CreateOrderRequest{
		ShippingAddress: models.Address{Street: "1 Main St"},
		PaymentMethod:   "card",
	})
	require.Nil(t, svcErr)

	product.Price = 80
	stored, err := f.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, stored.Items[0].Price)
}

func TestOrder_CreateFromCart_EmptyCart(t *testing.T) {
	f := newOrderFixture()
	user := primitive.NewObjectID()

	_, svcErr := f.svc.CreateFromCart(context.Background(), user, &models.CreateOrderRequest{
		ShippingAddress: models.Address{Street: "1 Main St"},
		PaymentMethod:   "card",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	f.seedCart(user)
	_, svcErr = f.svc.CreateFromCart(context.Background(), user, &models.CreateOrderRequest{
		ShippingAddress: models.Address{Street: "1 Main St"},
		PaymentMethod:   "card",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestOrder_CycleStatus_RequiresPaymentForShipped(t *testing.T) {
	f := newOrderFixture()
	order := f.seedOrder(models.OrderPending, "pending")
	admin := primitive.NewObjectID()

	_, svcErr := f.svc.CycleStatus(context.Background(), order.ID.Hex(), admin)
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	// A refused transition writes no audit entry.
	assert.Empty(t, f.logs.entries)
}

func TestOrder_CycleStatus_FullCycle(t *testing.T) {
	f := newOrderFixture()
	order := f.seedOrder(models.OrderPending, "success")
	admin := primitive.NewObjectID()

	// pending -> shipped
	updated, svcErr := f.svc.CycleStatus(context.Background(), order.ID.Hex(), admin)
	require.Nil(t, svcErr)
	assert.Equal(t, models.OrderShipped, updated.Status)
	assert.True(t, updated.IsShipped)
	assert.NotNil(t, updated.ShippedAt)

	// shipped -> delivered
	updated, svcErr = f.svc.CycleStatus(context.Background(), order.ID.Hex(), admin)
	require.Nil(t, svcErr)
	assert.Equal(t, models.OrderDelivered, updated.Status)
	assert.True(t, updated.IsDelivered)

	// delivered -> pending wraps and clears progress flags.
	updated, svcErr = f.svc.CycleStatus(context.Background(), order.ID.Hex(), admin)
	require.Nil(t, svcErr)
	assert.Equal(t, models.OrderPending, updated.Status)
	assert.False(t, updated.IsShipped)
	assert.Nil(t, updated.ShippedAt)
	assert.False(t, updated.IsDelivered)
	assert.Nil(t, updated.DeliveredAt)

	// Exactly one audit entry per transition.
	require.Len(t, f.logs.entries, 3)
	assert.Equal(t, "shipped", f.logs.entries[0].Action)
	assert.Equal(t, "delivered", f.logs.entries[1].Action)
	assert.Equal(t, "pending", f.logs.entries[2].Action)
	for _, entry := range f.logs.entries {
		assert.Equal(t, admin, entry.Admin)
		assert.Equal(t, order.ID, entry.TargetOrder)
	}
}

func TestOrder_CycleStatus_InvalidStoredStatus(t *testing.T) {
	f := newOrderFixture()
	order := f.seedOrder("archived", "success")

	_, svcErr := f.svc.CycleStatus(context.Background(), order.ID.Hex(), primitive.NewObjectID())
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestOrder_Cancel_Toggle(t *testing.T) {
	f := newOrderFixture()
	order := f.seedOrder(models.OrderPending, "pending")
	admin := primitive.NewObjectID()

	updated, svcErr := f.svc.Cancel(context.Background(), order.ID.Hex(), admin)
	require.Nil(t, svcErr)
	assert.True(t, updated.IsCancelled)
	assert.NotNil(t, updated.CancelledAt)

	// Second call flips it back.
	updated, svcErr = f.svc.Cancel(context.Background(), order.ID.Hex(), admin)
	require.Nil(t, svcErr)
	assert.False(t, updated.IsCancelled)
	assert.Nil(t, updated.CancelledAt)

	// Both directions are audited.
	require.Len(t, f.logs.entries, 2)
	assert.Equal(t, models.AdminLogCancelled, f.logs.entries[0].Action)
	assert.Equal(t, models.AdminLogCancelled, f.logs.entries[1].Action)
}

func TestOrder_Cancel_ConflictAfterDispatch(t *testing.T) {
	f := newOrderFixture()
	shipped := f.seedOrder(models.OrderShipped, "success")
	delivered := f.seedOrder(models.OrderDelivered, "success")
	admin := primitive.NewObjectID()

	for _, order := range []*models.Order{shipped, delivered} {
		_, svcErr := f.svc.Cancel(context.Background(), order.ID.Hex(), admin)
		require.NotNil(t, svcErr)
		assert.Equal(t, 409, svcErr.StatusCode)
	}
	assert.Empty(t, f.logs.entries)
}

func TestOrder_GetByID_OwnerOrAdmin(t *testing.T) {
	f := newOrderFixture()
	order := f.seedOrder(models.OrderPending, "pending")
	stranger := primitive.NewObjectID()

	_, svcErr := f.svc.GetByID(context.Background(), order.ID.Hex(), stranger, false)
	require.NotNil(t, svcErr)
	assert.Equal(t, 403, svcErr.StatusCode)

	got, svcErr := f.svc.GetByID(context.Background(), order.ID.Hex(), order.User, false)
	require.Nil(t, svcErr)
	assert.Equal(t, order.ID, got.ID)

	got, svcErr = f.svc.GetByID(context.Background(), order.ID.Hex(), stranger, true)
	require.Nil(t, svcErr)
	assert.Equal(t, order.ID, got.ID)
}

func TestOrder_MarkShipped_RequiresPayment(t *testing.T) {
	f := newOrderFixture()
	order := f.seedOrder(models.OrderPending, "pending")

	_, svcErr := f.svc.MarkShipped(context.Background(), order.ID.Hex())
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	_, svcErr = f.svc.MarkPaid(context.Background(), order.ID.Hex())
	require.Nil(t, svcErr)

	updated, svcErr := f.svc.MarkShipped(context.Background(), order.ID.Hex())
	require.Nil(t, svcErr)
	assert.True(t, updated.IsShipped)
	assert.Equal(t, models.OrderShipped, updated.Status)

	// Already shipped rejects a second direct mark.
	_, svcErr = f.svc.MarkShipped(context.Background(), order.ID.Hex())
	require.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
}

func TestOrder_PaymentSucceededStatuses(t *testing.T) {
	for _, status := range []string{"paid", "success", "Successful"} {
		order := &models.Order{Payment: models.PaymentInfo{Status: status}}
		assert.True(t, order.PaymentSucceeded(), status)
	}
	order := &models.Order{Payment: models.PaymentInfo{Status: "failed"}}
	assert.False(t, order.PaymentSucceeded())
}

func TestListAuditLogs_SpansOrders(t *testing.T) {
	f := newOrderFixture()
	admin := primitive.NewObjectID()
	first := f.seedOrder(models.OrderPending, "pending")
	second := f.seedOrder(models.OrderPending, "pending")

	_, svcErr := f.svc.Cancel(context.Background(), first.ID.Hex(), admin)
	require.Nil(t, svcErr)
	_, svcErr = f.svc.Cancel(context.Background(), second.ID.Hex(), admin)
	require.Nil(t, svcErr)

	entries, total, svcErr := f.svc.ListAuditLogs(context.Background(), 1, 10)
	require.Nil(t, svcErr)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	assert.Equal(t, "cancelled", entries[0].Action)
	assert.Equal(t, "cancelled", entries[1].Action)
}

func TestListAuditLogs_EmptyTrail(t *testing.T) {
	f := newOrderFixture()

	entries, total, svcErr := f.svc.ListAuditLogs(context.Background(), 0, 0)
	require.Nil(t, svcErr)
	assert.Equal(t, int64(0), total)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
