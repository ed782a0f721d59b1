package api

import (
	"context"
	"sync"

	"venues/entities"
)

type NotificationsMock struct {
	lock          sync.Mutex
	Notifications []entities.Notification
}

func (m *NotificationsMock) Notify(ctx context.Context, notification entities.Notification) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.Notifications = append(m.Notifications, notification)
	return nil
}

type MailerMock struct {
	lock         sync.Mutex
	SentReceipts []entities.Receipt
	SentTickets  []entities.Ticket
}

func (m *MailerMock) SendReceipt(ctx context.Context, organizerID string, receipt entities.Receipt) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.SentReceipts = append(m.SentReceipts, receipt)
	return nil
}

func (m *MailerMock) SendTicket(ctx context.Context, buyerID string, ticket entities.Ticket) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.SentTickets = append(m.SentTickets, ticket)
	return nil
}
