package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yashrajoria/storefront-backend/models"
)

// PaystackService wraps the processor's transaction API and verifies
// webhook signatures with the shared secret key.
type PaystackService struct {
	SecretKey string
	BaseURL   string
	client    *http.Client
}

func NewPaystackService(secretKey, baseURL string) *PaystackService {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &PaystackService{
		SecretKey: secretKey,
		BaseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// VerifySignature checks the x-paystack-signature header against an
// HMAC-SHA512 of the raw request body. The raw bytes must be the ones as
// received on the wire; re-serialized JSON is not byte-identical.
func (s *PaystackService) VerifySignature(rawBody []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(s.SecretKey))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type initializeTransactionRequest struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type initializeTransactionResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// InitializeTransaction opens a hosted checkout session. Amount is in the
// processor's minor unit.
func (s *PaystackService) InitializeTransaction(ctx context.Context, email string, amount int64, callbackURL string, items []models.PaymentItem, shippingAddress *models.Address) (*models.InitializePaymentResponse, error) {
	metadata := map[string]interface{}{"items": items}
	if shippingAddress != nil {
		metadata["shippingAddress"] = shippingAddress
	}
	payload := initializeTransactionRequest{
		Email:       email,
		Amount:      amount,
		CallbackURL: callbackURL,
		Metadata:    metadata,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paystack initialize returned %d: %s", res.StatusCode, raw)
	}

	var parsed initializeTransactionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	if !parsed.Status {
		return nil, fmt.Errorf("paystack initialize failed: %s", parsed.Message)
	}

	return &models.InitializePaymentResponse{
		AuthorizationURL: parsed.Data.AuthorizationURL,
		Reference:        parsed.Data.Reference,
	}, nil
}
