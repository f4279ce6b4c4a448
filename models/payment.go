package models

// PaymentItem is a line item as the payment processor carries it in
// checkout metadata. The webhook reconciler rebuilds order items from
// these, not from any server-side cart.
type PaymentItem struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Image     string   `json:"image,omitempty"`
	Variant   *Variant `json:"variant,omitempty"`
}

type InitializePaymentRequest struct {
	Amount          float64       `json:"amount" binding:"required,gt=0"`
	Items           []PaymentItem `json:"items" binding:"required,min=1"`
	ShippingAddress *Address      `json:"shippingAddress,omitempty"`
	CallbackURL     string        `json:"callbackUrl"`
}

type InitializePaymentResponse struct {
	AuthorizationURL string `json:"authorizationUrl"`
	Reference        string `json:"reference"`
}

// WebhookEvent is the processor's notification envelope.
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

// WebhookEventChargeSuccess is the only event type that creates records;
// everything else is acknowledged and ignored.
const WebhookEventChargeSuccess = "charge.success"

type WebhookData struct {
	ID        int64           `json:"id"`
	Status    string          `json:"status"`
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"` // minor units
	Currency  string          `json:"currency"`
	Customer  WebhookCustomer `json:"customer"`
	Metadata  WebhookMetadata `json:"metadata"`
}

type WebhookCustomer struct {
	Email string `json:"email"`
}

type WebhookMetadata struct {
	Items           []PaymentItem `json:"items"`
	ShippingAddress *Address      `json:"shippingAddress,omitempty"`
}

type PaymentStatusResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}
