package handlers

import (
	"encoding/json"
	"errors"

	"launchboost-backend/payments"

	"github.com/google/uuid"
)

// testWebhookSignature is what the mock accepts as a valid signature header.
const testWebhookSignature = "test-signature"

// mockCheckout implements payments.Client for handler tests. Webhook payloads
// are plain JSON {"type": ..., "session_id": ...} verified against a fixed
// signature string.
type mockCheckout struct {
	createdSessions []payments.CheckoutParams
	failCreate      bool
}

func newMockCheckout() *mockCheckout {
	return &mockCheckout{}
}

func (m *mockCheckout) CreateCheckoutSession(params payments.CheckoutParams) (*payments.CheckoutSession, error) {
	if m.failCreate {
		return nil, errors.New("payment provider unavailable")
	}
	m.createdSessions = append(m.createdSessions, params)
	id := "cs_test_" + uuid.New().String()[:8]
	return &payments.CheckoutSession{
		ID:  id,
		URL: "https://checkout.test/pay/" + id,
	}, nil
}

func (m *mockCheckout) ParseWebhookEvent(payload []byte, signature string) (*payments.WebhookEvent, error) {
	if signature != testWebhookSignature {
		return nil, errors.New("signature verification failed")
	}
	var evt struct {
		Type      string `json:"type"`
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, err
	}
	return &payments.WebhookEvent{Type: evt.Type, SessionID: evt.SessionID}, nil
}
