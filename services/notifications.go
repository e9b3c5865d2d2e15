package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
)

// Notice is one message addressed to a user. Email is optional and only
// used by senders that deliver outside the inbox.
type Notice struct {
	UserID  string
	Email   string
	Title   string
	Message string
}

// Notifier accepts notices for delivery.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// NotificationInbox persists notices as per-user notification records.
type NotificationInbox struct {
	store store.Store
	now   func() time.Time
}

func NewNotificationInbox(st store.Store) *NotificationInbox {
	return &NotificationInbox{store: st, now: time.Now}
}

func (in *NotificationInbox) Notify(ctx context.Context, n Notice) error {
	if n.UserID == "" {
		return ErrUserRequired
	}
	if strings.TrimSpace(n.Title) == "" {
		return utils.ValidationError("notification title is required", nil)
	}
	record := models.Notification{
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Read:      false,
		CreatedAt: in.now(),
	}
	fields, err := store.Encode(record)
	if err != nil {
		return decodeError("notification", err)
	}
	if _, err := in.store.Create(ctx, models.CollectionNotifications, n.UserID, fields); err != nil {
		return remoteError("failed to store notification", err, nil)
	}
	utils.LogDebug("Notification %q stored for user ID: %s", n.Title, n.UserID)
	return nil
}

func newestNotificationsFirst(items []models.Notification) []models.Notification {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

// List returns the user's notifications, newest first.
func (in *NotificationInbox) List(ctx context.Context, userID string) ([]models.Notification, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	docs, err := in.store.Find(ctx, models.CollectionNotifications, userID)
	if err != nil {
		return nil, remoteError("failed to load notifications", err, nil)
	}
	items, err := store.DecodeAll[models.Notification](docs)
	if err != nil {
		return nil, decodeError("notification", err)
	}
	return newestNotificationsFirst(items), nil
}

func (in *NotificationInbox) UnreadCount(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrUserRequired
	}
	docs, err := in.store.Find(ctx, models.CollectionNotifications, userID, store.Eq("read", false))
	if err != nil {
		return 0, remoteError("failed to load notifications", err, nil)
	}
	return len(docs), nil
}

func (in *NotificationInbox) MarkRead(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUserRequired
	}
	err := in.store.Update(ctx, models.CollectionNotifications, userID, id, store.Fields{"read": true})
	if err != nil {
		return remoteError("failed to update notification", err, ErrNotificationNotFound)
	}
	return nil
}

func (in *NotificationInbox) Watch(ctx context.Context, userID string) (*Feed[models.Notification], error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	sub, err := in.store.Subscribe(ctx, models.CollectionNotifications, userID)
	if err != nil {
		return nil, remoteError("failed to watch notifications", err, nil)
	}
	return newFeed[models.Notification](sub, "notification", newestNotificationsFirst), nil
}

// MailNotifier stores the notice through next and then mails a copy when
// the notice carries an address. Mail failures are logged, not returned.
type MailNotifier struct {
	next   Notifier
	mailer utils.Mailer
}

func NewMailNotifier(next Notifier, mailer utils.Mailer) *MailNotifier {
	return &MailNotifier{next: next, mailer: mailer}
}

func (m *MailNotifier) Notify(ctx context.Context, n Notice) error {
	if err := m.next.Notify(ctx, n); err != nil {
		return err
	}
	if m.mailer == nil || n.Email == "" {
		return nil
	}
	if err := m.mailer.Send(n.Email, n.Title, utils.NotificationEmailBody(n.Title, n.Message)); err != nil {
		utils.LogError("Failed to email notification to %s: %v", n.Email, err)
	}
	return nil
}
