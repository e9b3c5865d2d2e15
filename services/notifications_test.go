package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

func TestInbox_NotifyListAndRead(t *testing.T) {
	env := newTestEnv(t)
	inbox := env.svc.Inbox

	require.NoError(t, inbox.Notify(env.ctx, Notice{UserID: "u1", Title: "First", Message: "one"}))
	require.NoError(t, inbox.Notify(env.ctx, Notice{UserID: "u1", Title: "Second", Message: "two"}))
	require.NoError(t, inbox.Notify(env.ctx, Notice{UserID: "u2", Title: "Other", Message: "x"}))

	items, err := inbox.List(env.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Title)
	assert.False(t, items[0].Read)

	n, err := inbox.UnreadCount(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, inbox.MarkRead(env.ctx, "u1", items[0].ID))
	n, err = inbox.UnreadCount(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, inbox.MarkRead(env.ctx, "u2", items[1].ID), ErrNotificationNotFound)
}

func TestInbox_RequiresUserAndTitle(t *testing.T) {
	env := newTestEnv(t)
	assert.ErrorIs(t, env.svc.Inbox.Notify(env.ctx, Notice{Title: "x"}), ErrUserRequired)
	assert.Error(t, env.svc.Inbox.Notify(env.ctx, Notice{UserID: "u1"}))
}

func TestMailNotifier(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{}
	notifier := NewMailNotifier(env.svc.Inbox, mailer)

	require.NoError(t, notifier.Notify(env.ctx, Notice{UserID: "u1", Email: "u1@example.com", Title: "Return Approved", Message: "ok"}))
	require.NoError(t, notifier.Notify(env.ctx, Notice{UserID: "u1", Title: "No address", Message: "ok"}))
	assert.Equal(t, []string{"u1@example.com|Return Approved"}, mailer.sent)

	mailer.err = errors.New("smtp down")
	require.NoError(t, notifier.Notify(env.ctx, Notice{UserID: "u1", Email: "u1@example.com", Title: "Again", Message: "ok"}))

	items, err := env.svc.Inbox.List(env.ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestMailNotifier_InboxFailureSkipsMail(t *testing.T) {
	env := newTestEnv(t)
	env.store.fail("create", models.CollectionNotifications)
	mailer := &fakeMailer{}

	err := NewMailNotifier(env.svc.Inbox, mailer).Notify(env.ctx, Notice{UserID: "u1", Email: "a@b.c", Title: "t"})
	assert.Error(t, err)
	assert.Empty(t, mailer.sent)
}

func TestLifecycle_WritesToInbox(t *testing.T) {
	env := newTestEnv(t)
	env.svc.Lifecycle.notifier = env.svc.Inbox
	order := env.placedOrder(t, "u1")

	_, err := env.svc.Lifecycle.RequestCancel(env.ctx, "u1", order.ID, testReason)
	require.NoError(t, err)
	_, err = env.svc.Lifecycle.UpdateStatus(env.ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	items, err := env.svc.Inbox.List(env.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Order Cancelled", items[0].Title)
	assert.Equal(t, "Your order "+order.ID+" has been cancelled.", items[0].Message)
}
