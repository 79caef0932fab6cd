// Package fcm delivers push notifications through Firebase Cloud Messaging.
package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/notification"
)

// TokenSource resolves an account to its registered device tokens. Accounts
// without registered devices resolve to an empty slice, not an error.
type TokenSource interface {
	DeviceTokens(ctx context.Context, accountID kernel.UUID) ([]string, error)
}

// Notifier sends recorded notifications to the recipient's devices via FCM.
type Notifier struct {
	client *messaging.Client
	tokens TokenSource
}

// NewNotifier initializes the Firebase app from a service account file and
// returns a Notifier backed by its messaging client.
func NewNotifier(ctx context.Context, credentialsFile string, tokens TokenSource) (*Notifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("create messaging client: %w", err)
	}

	return NewNotifierWithClient(client, tokens), nil
}

// NewNotifierWithClient wires a Notifier over an existing messaging client.
func NewNotifierWithClient(client *messaging.Client, tokens TokenSource) *Notifier {
	return &Notifier{client: client, tokens: tokens}
}

// Send pushes the notification to every device registered for the
// recipient. A recipient without devices is not an error; the first
// transport failure is.
func (n *Notifier) Send(ctx context.Context, note *notification.Notification) error {
	deviceTokens, err := n.tokens.DeviceTokens(ctx, note.RecipientID())
	if err != nil {
		return fmt.Errorf("resolve device tokens: %w", err)
	}

	for _, token := range deviceTokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: note.Title(),
				Body:  note.Body(),
			},
			Data: map[string]string{
				"kind": string(note.Kind()),
				"key":  note.NaturalKey(),
			},
		}

		if _, err := n.client.Send(ctx, message); err != nil {
			return fmt.Errorf("send to device: %w", err)
		}
	}

	return nil
}
