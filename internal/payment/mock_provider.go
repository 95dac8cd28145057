package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/metinatakli/bus-booking-system/internal/domain"
)

// MockPaymentProvider settles payments locally. Every checkout session starts
// in DefaultStatus; SetStatus overrides it per reference. Webhook payloads are
// plain JSON {"type": ..., "reference": ...} without a signature.
type MockPaymentProvider struct {
	mu            sync.Mutex
	DefaultStatus domain.PaymentStatus
	statuses      map[string]domain.PaymentStatus
	sessions      []domain.CheckoutRequest
	seq           int
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{
		DefaultStatus: domain.PaymentStatusSucceeded,
		statuses:      make(map[string]domain.PaymentStatus),
	}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	req domain.CheckoutRequest) (*domain.CheckoutSession, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	reference := fmt.Sprintf("cs_mock_%d_%d", req.Payment.ID, m.seq)
	m.statuses[reference] = m.DefaultStatus
	m.sessions = append(m.sessions, req)

	return &domain.CheckoutSession{
		Reference: reference,
		URL:       "https://checkout.invalid/" + reference,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}, nil
}

func (m *MockPaymentProvider) ConfirmPayment(ctx context.Context, reference string) (domain.PaymentStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status, ok := m.statuses[reference]
	if !ok {
		return "", fmt.Errorf("no such checkout session: %s", reference)
	}

	return status, nil
}

func (m *MockPaymentProvider) ParseWebhook(payload []byte, signature string) (*domain.PaymentEvent, error) {
	var event struct {
		Type      domain.PaymentEventType `json:"type"`
		Reference string                  `json:"reference"`
	}

	err := json.Unmarshal(payload, &event)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch event.Type {
	case domain.PaymentEventCompleted:
		m.statuses[event.Reference] = domain.PaymentStatusSucceeded
		return &domain.PaymentEvent{Type: event.Type, Reference: event.Reference, Status: domain.PaymentStatusSucceeded}, nil
	case domain.PaymentEventExpired:
		m.statuses[event.Reference] = domain.PaymentStatusFailed
		return &domain.PaymentEvent{Type: event.Type, Reference: event.Reference, Status: domain.PaymentStatusCanceled}, nil
	default:
		return &domain.PaymentEvent{Type: domain.PaymentEventIgnored}, nil
	}
}

func (m *MockPaymentProvider) SetStatus(reference string, status domain.PaymentStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.statuses[reference] = status
}

// Sessions returns the checkout requests seen so far.
func (m *MockPaymentProvider) Sessions() []domain.CheckoutRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions := make([]domain.CheckoutRequest, len(m.sessions))
	copy(sessions, m.sessions)
	return sessions
}
