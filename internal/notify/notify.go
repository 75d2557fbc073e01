// Package notify delivers human-readable messages to marketplace
// parties. Delivery is best-effort: the matching and allocation path
// never blocks on, or fails because of, a notification.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Urushihara24/exportum/internal/metrics"
)

// Notifier is the outbound notification sink. Implementations must be
// non-blocking and must never surface delivery errors to the caller.
type Notifier interface {
	Notify(userID int64, text string)
}

// Nop discards all notifications. Used when no sink is configured and
// in tests.
type Nop struct{}

func (Nop) Notify(int64, string) {}

type message struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

// HTTPNotifier posts messages to a delivery endpoint one at a time,
// pausing between sends to respect the downstream rate limit. Messages
// are queued on a buffered channel; when the queue is full the message
// is dropped and logged rather than blocking the engine.
type HTTPNotifier struct {
	endpoint string
	client   *http.Client
	queue    chan message
	delay    time.Duration
	logger   *slog.Logger
}

// NewHTTPNotifier creates a notifier posting to endpoint. The timeout
// bounds each delivery attempt; delay is the pause between consecutive
// sends.
func NewHTTPNotifier(endpoint string, timeout, delay time.Duration, logger *slog.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		queue:    make(chan message, 256),
		delay:    delay,
		logger:   logger,
	}
}

// Start launches the delivery goroutine. It drains the queue until ctx
// is cancelled.
func (n *HTTPNotifier) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-n.queue:
				n.deliver(msg)

				// Inter-message delay for the downstream rate limit.
				select {
				case <-ctx.Done():
					return
				case <-time.After(n.delay):
				}
			}
		}
	}()
}

// Notify enqueues a message without blocking. A full queue drops the
// message and logs the intended recipient.
func (n *HTTPNotifier) Notify(userID int64, text string) {
	select {
	case n.queue <- message{UserID: userID, Text: text}:
	default:
		metrics.NotifyFailures.Inc()
		n.logger.Warn("notification queue full, message dropped",
			slog.Int64("user_id", userID))
	}
}

// deliver posts one message. Errors are logged with the intended
// recipient ID and swallowed.
func (n *HTTPNotifier) deliver(msg message) {
	body, err := json.Marshal(msg)
	if err != nil {
		metrics.NotifyFailures.Inc()
		n.logger.Error("notification marshal failed",
			slog.Int64("user_id", msg.UserID),
			slog.String("error", err.Error()))
		return
	}

	resp, err := n.client.Post(n.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		metrics.NotifyFailures.Inc()
		n.logger.Warn("notification delivery failed",
			slog.Int64("user_id", msg.UserID),
			slog.String("error", err.Error()))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.NotifyFailures.Inc()
		n.logger.Warn("notification delivery failed",
			slog.Int64("user_id", msg.UserID),
			slog.String("status", fmt.Sprintf("%d", resp.StatusCode)))
	}
}
