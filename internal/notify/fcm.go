// Package notify sends push notifications to users about activity on their
// reviews and offerings.
package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

// Pusher delivers one notification to a user.
type Pusher interface {
	Push(ctx context.Context, userID int, title, body string, data map[string]string) error
}

// TokenSource resolves the device token registered for a user.
type TokenSource interface {
	GetFCMToken(ctx context.Context, userID int) (string, error)
}

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NewMessagingClient builds the FCM client from a service account file.
func NewMessagingClient(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	return client, nil
}

type FCM struct {
	sender messageSender
	tokens TokenSource
	log    Logger
}

func NewFCM(client *messaging.Client, tokens TokenSource, log Logger) *FCM {
	return &FCM{sender: client, tokens: tokens, log: log}
}

// Push sends the notification to the user's device. Users without a device
// token are skipped silently.
func (f *FCM) Push(ctx context.Context, userID int, title, body string, data map[string]string) error {
	token, err := f.tokens.GetFCMToken(ctx, userID)
	if err != nil {
		return fmt.Errorf("token for user %d: %w", userID, err)
	}
	if token == "" {
		return nil
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{Title: title, Body: body},
					Sound: "default",
				},
			},
		},
	}

	id, err := f.sender.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("send to user %d: %w", userID, err)
	}
	if f.log != nil {
		f.log.Infof("notify: sent %s to user %d", id, userID)
	}
	return nil
}

// Noop drops every notification. Used when no Firebase credentials are
// configured.
type Noop struct{}

func (Noop) Push(context.Context, int, string, string, map[string]string) error { return nil }
