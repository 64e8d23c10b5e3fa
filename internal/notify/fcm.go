package notify

import (
	"context"
	"log/slog"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Sender delivers a single push message to one device. Implementations never
// return an error: any failure is reported as false and the caller decides
// whether the occurrence is lost or retried.
type Sender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) bool
}

// ReminderData builds the metadata payload attached to every reminder push,
// so clients can route the tap to the right screen.
func ReminderData(reminderID, reminderType string) map[string]string {
	return map[string]string{
		"reminder_id":       reminderID,
		"reminder_type":     reminderType,
		"notification_type": "reminder",
	}
}

type FCMCfg struct {
	CredentialsPath string
	ProjectID       string
}

// FCMSender pushes notifications through Firebase Cloud Messaging. The
// messaging client is built lazily on first send and reused afterwards; a
// failed initialization is not cached, so the next send attempts it again.
type FCMSender struct {
	cfg    FCMCfg
	logger *slog.Logger

	mu     sync.Mutex
	client *messaging.Client
}

func NewFCMSender(cfg FCMCfg, logger *slog.Logger) *FCMSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &FCMSender{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "fcm")),
	}
}

func (s *FCMSender) ensureClient(ctx context.Context) (*messaging.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	var fbCfg *firebase.Config
	if s.cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: s.cfg.ProjectID}
	}
	var opts []option.ClientOption
	if s.cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(s.cfg.CredentialsPath))
	}
	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}
	s.client = client
	s.logger.Info("firebase messaging client initialized")
	return s.client, nil
}

func (s *FCMSender) Send(ctx context.Context, token, title, body string, data map[string]string) bool {
	client, err := s.ensureClient(ctx)
	if err != nil {
		s.logger.Error("firebase initialization failed", slog.String("error", err.Error()))
		return false
	}
	badge := 1
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:      "default",
				Priority:   messaging.PriorityHigh,
				Visibility: messaging.VisibilityPublic,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound:            "default",
					Badge:            &badge,
					ContentAvailable: true,
				},
			},
		},
	}
	resp, err := client.Send(ctx, msg)
	if err != nil {
		s.logger.Error("sending notification failed", slog.String("error", err.Error()))
		return false
	}
	s.logger.Info("notification sent", slog.String("message_id", resp))
	return true
}
