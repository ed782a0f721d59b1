package api

import (
	"context"
	"fmt"
	"sync"

	"venues/entities"

	"github.com/lithammer/shortuuid/v3"
)

// PaymentsMock is an in-memory payment provider. Sessions start unpaid;
// MarkPaid flips them, the way a customer completing checkout would.
type PaymentsMock struct {
	lock     sync.Mutex
	sessions map[string]entities.CheckoutSession
}

func NewPaymentsMock() *PaymentsMock {
	return &PaymentsMock{
		sessions: map[string]entities.CheckoutSession{},
	}
}

func (m *PaymentsMock) CreateSession(ctx context.Context, request entities.CheckoutSessionRequest) (entities.CheckoutSession, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	id := "cs_mock_" + shortuuid.New()
	session := entities.CheckoutSession{
		ID:       id,
		URL:      "https://checkout.mock.local/pay/" + id,
		Metadata: request.Metadata,
	}
	m.sessions[id] = session

	return session, nil
}

func (m *PaymentsMock) GetSession(ctx context.Context, sessionID string) (entities.CheckoutSession, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return entities.CheckoutSession{}, fmt.Errorf("unknown checkout session: %s", sessionID)
	}

	return session, nil
}

func (m *PaymentsMock) MarkPaid(sessionID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("unknown checkout session: %s", sessionID)
	}

	session.Paid = true
	session.TransactionID = "txn_mock_" + shortuuid.New()
	m.sessions[sessionID] = session

	return nil
}
