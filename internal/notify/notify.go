// Package notify fans a single event out to every channel a user can
// be reached on: the persistent inbox, the realtime websocket hub, and
// FCM push.
package notify

import (
	"context"
	"strconv"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/logger"
	"drivehire-backend/internal/realtime"
	"drivehire-backend/internal/repository"
)

// Message is one user-facing notification.
type Message struct {
	UserID    int64
	BookingID *int64
	Title     string
	Body      string
	Category  domain.NotificationCategory
}

// Notifier delivers a message to a user. Delivery failures on
// secondary channels (push, realtime) never fail the operation that
// triggered them.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

// Dispatcher is the production Notifier.
type Dispatcher struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	hub           *realtime.Hub
	push          PushSender
}

func NewDispatcher(notifications repository.NotificationRepository, users repository.UserRepository, hub *realtime.Hub, push PushSender) *Dispatcher {
	if push == nil {
		push = NoopPushSender{}
	}
	return &Dispatcher{
		notifications: notifications,
		users:         users,
		hub:           hub,
		push:          push,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, msg Message) {
	notification := &domain.Notification{
		UserID:    msg.UserID,
		BookingID: msg.BookingID,
		Title:     msg.Title,
		Message:   msg.Body,
		Category:  msg.Category,
	}
	if err := d.notifications.Create(ctx, notification); err != nil {
		logger.Error("failed to persist notification", "user_id", msg.UserID, "error", err)
	}

	if d.hub != nil {
		d.hub.Publish(realtime.Event{
			Channel:  realtime.UserChannel(msg.UserID),
			Category: string(msg.Category),
			Title:    msg.Title,
			Message:  msg.Body,
		})
		if msg.BookingID != nil {
			d.hub.Publish(realtime.Event{
				Channel:  realtime.BookingChannel(*msg.BookingID),
				Category: string(msg.Category),
				Title:    msg.Title,
				Message:  msg.Body,
			})
		}
	}

	user, err := d.users.GetByID(ctx, msg.UserID)
	if err != nil {
		logger.Warn("notification recipient lookup failed", "user_id", msg.UserID, "error", err)
		return
	}
	if user.FCMToken == "" {
		return
	}
	data := map[string]string{"category": string(msg.Category)}
	if msg.BookingID != nil {
		data["booking_id"] = strconv.FormatInt(*msg.BookingID, 10)
	}
	if err := d.push.SendPush(ctx, user.FCMToken, msg.Title, msg.Body, data); err != nil {
		logger.Warn("push delivery failed", "user_id", msg.UserID, "error", err)
	}
}

// Recorder captures messages for tests.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Notify(ctx context.Context, msg Message) {
	r.Messages = append(r.Messages, msg)
}

// Noop discards everything.
type Noop struct{}

func (Noop) Notify(ctx context.Context, msg Message) {}
