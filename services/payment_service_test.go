package services_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const webhookSecret = "sk_test_secret"

type paymentFixture struct {
	svc    *services.PaymentService
	orders *mockOrderRepo
	users  *mockUserRepo
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		orders: newMockOrderRepo(),
		users:  newMockUserRepo(),
	}
	logger, _ := zap.NewDevelopment()
	paystack := services.NewPaystackService(webhookSecret, "")
	f.svc = services.NewPaymentService(f.orders, f.users, paystack, nil, logger)
	return f
}

func sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func chargeSuccessBody(t *testing.T, email string, amountMinor int64, reference string) []byte {
	t.Helper()
	event := models.WebhookEvent{
		Event: models.WebhookEventChargeSuccess,
		Data: models.WebhookData{
			ID:        12345,
			Status:    "success",
			Reference: reference,
			Amount:    amountMinor,
			Currency:  "NGN",
			Customer:  models.WebhookCustomer{Email: email},
			Metadata: models.WebhookMetadata{
				Items: []models.PaymentItem{
					{ProductID: primitive.NewObjectID().Hex(), Name: "Canvas Tote", Quantity: 2, Price: 25},
				},
			},
		},
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return body
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	f := newPaymentFixture()
	body := chargeSuccessBody(t, "buyer@example.com", 5000, "ref-1")

	svcErr := f.svc.HandleWebhook(context.Background(), body, "deadbeef")
	require.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
	assert.Empty(t, f.orders.orders)
}

func TestWebhook_SignatureIsOverRawBytes(t *testing.T) {
	f := newPaymentFixture()
	body := chargeSuccessBody(t, "buyer@example.com", 5000, "ref-raw")
	signature := sign(body)

	// The same JSON with different whitespace must not verify.
	tampered := append([]byte(" "), body...)
	svcErr := f.svc.HandleWebhook(context.Background(), tampered, signature)
	require.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
}

func TestWebhook_ChargeSuccessCreatesPaidOrder(t *testing.T) {
	f := newPaymentFixture()
	user := f.users.add(&models.User{Email: "buyer@example.com"})
	body := chargeSuccessBody(t, "buyer@example.com", 5000, "ref-2")

	svcErr := f.svc.HandleWebhook(context.Background(), body, sign(body))
	require.Nil(t, svcErr)
	require.Len(t, f.orders.orders, 1)

	var order *models.Order
	for _, o := range f.orders.orders {
		order = o
	}
	assert.Equal(t, user.ID, order.User)
	assert.True(t, order.IsPaid)
	assert.Equal(t, "paystack", order.Payment.Method)
	assert.Equal(t, "success", order.Payment.Status)
	assert.Equal(t, "ref-2", order.Payment.Reference)
	assert.Equal(t, "12345", order.Payment.TransactionID)
	// Minor units divided down to the major unit.
	assert.Equal(t, 50.0, order.Payment.Amount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Regexp(t, orderNumberPattern, order.OrderNumber)
}

func TestWebhook_UnknownEmailFailsProcessing(t *testing.T) {
	f := newPaymentFixture()
	body := chargeSuccessBody(t, "nobody@example.com", 5000, "ref-3")

	svcErr := f.svc.HandleWebhook(context.Background(), body, sign(body))
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
	assert.Empty(t, f.orders.orders)
}

func TestWebhook_IgnoredEventWritesNothing(t *testing.T) {
	f := newPaymentFixture()
	f.users.add(&models.User{Email: "buyer@example.com"})

	body, err := json.Marshal(models.WebhookEvent{
		Event: "transfer.failed",
		Data:  models.WebhookData{Reference: "ref-4", Customer: models.WebhookCustomer{Email: "buyer@example.com"}},
	})
	require.NoError(t, err)

	svcErr := f.svc.HandleWebhook(context.Background(), body, sign(body))
	assert.Nil(t, svcErr)
	assert.Empty(t, f.orders.orders)
}

func TestWebhook_DuplicateReferenceIsIdempotent(t *testing.T) {
	f := newPaymentFixture()
	f.users.add(&models.User{Email: "buyer@example.com"})
	body := chargeSuccessBody(t, "buyer@example.com", 5000, "ref-5")

	require.Nil(t, f.svc.HandleWebhook(context.Background(), body, sign(body)))
	require.Nil(t, f.svc.HandleWebhook(context.Background(), body, sign(body)))
	assert.Len(t, f.orders.orders, 1)
}

func TestPaymentStatus_ByReference(t *testing.T) {
	f := newPaymentFixture()
	order := &models.Order{
		ID:      primitive.NewObjectID(),
		Payment: models.PaymentInfo{Status: "success", Reference: "ref-6"},
	}
	f.orders.orders[order.ID] = order

	status, svcErr := f.svc.PaymentStatus(context.Background(), "ref-6")
	require.Nil(t, svcErr)
	assert.Equal(t, "ref-6", status.Reference)
	assert.Equal(t, "success", status.Status)

	_, svcErr = f.svc.PaymentStatus(context.Background(), "ref-missing")
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

// racedOrderRepo simulates a concurrent redelivery: the reference lookup
// misses, then the unique payment.reference index rejects the insert.
type racedOrderRepo struct {
	*mockOrderRepo
}

func (r *racedOrderRepo) FindByPaymentReference(context.Context, string) (*models.Order, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *racedOrderRepo) Create(context.Context, *models.Order) error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func TestWebhook_ConcurrentRedeliveryHitsUniqueIndex(t *testing.T) {
	users := newMockUserRepo()
	users.add(&models.User{Email: "buyer@example.com"})
	logger, _ := zap.NewDevelopment()
	paystack := services.NewPaystackService(webhookSecret, "")
	svc := services.NewPaymentService(&racedOrderRepo{newMockOrderRepo()}, users, paystack, nil, logger)

	body := chargeSuccessBody(t, "buyer@example.com", 5000, "ref-race")
	assert.Nil(t, svc.HandleWebhook(context.Background(), body, sign(body)))
}

func TestInitializePayment_SendsShippingAddressMetadata(t *testing.T) {
	var captured struct {
		Amount   int64 `json:"amount"`
		Metadata struct {
			Items           []models.PaymentItem `json:"items"`
			ShippingAddress *models.Address      `json:"shippingAddress"`
		} `json:"metadata"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"authorization_url":"https://checkout.example/abc","reference":"ref-init"}}`))
	}))
	defer server.Close()

	users := newMockUserRepo()
	user := users.add(&models.User{Email: "buyer@example.com"})
	logger, _ := zap.NewDevelopment()
	svc := services.NewPaymentService(newMockOrderRepo(), users, services.NewPaystackService(webhookSecret, server.URL), nil, logger)

	res, svcErr := svc.InitializePayment(context.Background(), user.ID, &models.InitializePaymentRequest{
		Amount:          120.50,
		Items:           []models.PaymentItem{{ProductID: primitive.NewObjectID().Hex(), Name: "Canvas Tote", Quantity: 1, Price: 120.50}},
		ShippingAddress: &models.Address{Street: "12 Marina Rd", City: "Lagos", Country: "NG"},
	})
	require.Nil(t, svcErr)
	assert.Equal(t, "ref-init", res.Reference)
	assert.Equal(t, int64(12050), captured.Amount)
	require.NotNil(t, captured.Metadata.ShippingAddress)
	assert.Equal(t, "Lagos", captured.Metadata.ShippingAddress.City)
	require.Len(t, captured.Metadata.Items, 1)
}
