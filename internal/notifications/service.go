package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"greenlight/internal/config"
)

const userAgent = "Greenlight-Go/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyGateRunCompleted(ctx context.Context, briefID, aggregate string, qualityScore float64) error
	NotifyOverrideRecorded(ctx context.Context, briefID, approver string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		settings: cfg.Notifications,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	settings config.Notifications
}

func (n *ntfyService) NotifyGateRunCompleted(ctx context.Context, briefID, aggregate string, qualityScore float64) error {
	if !n.settings.GateRuns {
		return nil
	}
	briefID = strings.TrimSpace(briefID)
	aggregate = strings.TrimSpace(aggregate)

	data := payload{
		title:   "Greenlight - Gate Run Complete",
		message: fmt.Sprintf("Gate run for %s: %s (score %.1f)", briefID, strings.ToUpper(aggregate), qualityScore),
		tags:    []string{"greenlight", "gates", "completed"},
	}
	if aggregate == "fail" {
		data.priority = "high"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyOverrideRecorded(ctx context.Context, briefID, approver string) error {
	if !n.settings.Overrides {
		return nil
	}
	data := payload{
		title:    "Greenlight - Manual Override",
		message:  fmt.Sprintf("Override recorded for %s by %s", strings.TrimSpace(briefID), strings.TrimSpace(approver)),
		tags:     []string{"greenlight", "override", "review"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.settings.Errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Greenlight - Error",
		message:  builder.String(),
		tags:     []string{"greenlight", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Greenlight - Test",
		message:  "Notification system test",
		tags:     []string{"greenlight", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyGateRunCompleted(context.Context, string, string, float64) error { return nil }
func (noopService) NotifyOverrideRecorded(context.Context, string, string) error          { return nil }
func (noopService) NotifyError(context.Context, error, string) error                      { return nil }
func (noopService) TestNotification(context.Context) error                                { return nil }
