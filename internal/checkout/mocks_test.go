package checkout

import (
	"context"

	"github.com/Aarya06/Bookwizard/internal/order"
)

// MockProcessor implements payment.Processor for testing
type MockProcessor struct {
	ConfirmationID string
	Err            error

	Called      bool
	GotAmount   int64
	GotCurrency string
	GotToken    string
}

func (m *MockProcessor) Charge(_ context.Context, amountMinor int64, currency, token string) (string, error) {
	m.Called = true
	m.GotAmount = amountMinor
	m.GotCurrency = currency
	m.GotToken = token
	if m.Err != nil {
		return "", m.Err
	}
	return m.ConfirmationID, nil
}

// MockOrderStore implements OrderStore for testing
type MockOrderStore struct {
	OrderID string
	Err     error

	Saved *order.Snapshot // captures the snapshot passed to Save
}

func (m *MockOrderStore) Save(_ context.Context, snap *order.Snapshot) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Saved = snap
	return m.OrderID, nil
}

// MockCartStore implements CartStore for testing
type MockCartStore struct {
	Err error

	ClearedSessionID string
	Cleared          bool
}

func (m *MockCartStore) Clear(_ context.Context, sessionID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Cleared = true
	m.ClearedSessionID = sessionID
	return nil
}

// MockDispatcher implements mail.Dispatcher for testing
type MockDispatcher struct {
	Err error

	SentTo      string
	SentSubject string
	SentBody    string
}

func (m *MockDispatcher) Send(_ context.Context, to, subject, body string) error {
	if m.Err != nil {
		return m.Err
	}
	m.SentTo = to
	m.SentSubject = subject
	m.SentBody = body
	return nil
}
