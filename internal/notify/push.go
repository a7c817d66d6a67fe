package notify

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"drivehire-backend/internal/logger"
)

// PushSender delivers a push notification to a device token.
type PushSender interface {
	SendPush(ctx context.Context, token, title, body string, data map[string]string) error
}

// FCMSender sends pushes through Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender initializes the Firebase app from a service account
// credentials file.
func NewFCMSender(ctx context.Context, credentialsFile string) (*FCMSender, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}
	return &FCMSender{client: client}, nil
}

func (s *FCMSender) SendPush(ctx context.Context, token, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	response, err := s.client.Send(ctx, message)
	if err != nil {
		return err
	}
	logger.Debug("push notification sent", "response", response)
	return nil
}

// NoopPushSender discards pushes. Used when FCM is not configured.
type NoopPushSender struct{}

func (NoopPushSender) SendPush(ctx context.Context, token, title, body string, data map[string]string) error {
	return nil
}
