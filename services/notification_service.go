package services

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/models"
	"whitepaper-portal-api/utils"

	"go.uber.org/zap"
)

type EventType string

const (
	EventSubmitted     EventType = "submitted"
	EventUpdated       EventType = "updated"
	EventDeleted       EventType = "deleted"
	EventStatusChanged EventType = "status_changed"
)

// ProposalEvent describes a change to a submission.
type ProposalEvent struct {
	Type         EventType               `json:"type"`
	SubmissionID string                  `json:"submission_id"`
	UserID       string                  `json:"user_id"`
	UserEmail    string                  `json:"-"`
	UserName     string                  `json:"user_name,omitempty"`
	Title        string                  `json:"title,omitempty"`
	Status       models.SubmissionStatus `json:"status"`
	OccurredAt   time.Time               `json:"occurred_at"`
}

func NewProposalEvent(eventType EventType, submission *models.Submission) ProposalEvent {
	return ProposalEvent{
		Type:         eventType,
		SubmissionID: submission.ID,
		UserID:       submission.UserID,
		UserEmail:    submission.UserEmail,
		UserName:     submission.UserName,
		Title:        submission.Title,
		Status:       submission.Status,
		OccurredAt:   time.Now().UTC(),
	}
}

// Notifier fans proposal events out to interested parties. Delivery is best
// effort: failures are logged and never fail the user's action.
type Notifier interface {
	Notify(ctx context.Context, event ProposalEvent)
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, ProposalEvent) {}

// MultiNotifier delivers each event to every notifier in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, event ProposalEvent) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, event)
		}
	}
}

var (
	defaultNotifierMu sync.RWMutex
	defaultNotifier   Notifier = NopNotifier{}
)

// SetDefaultNotifier installs the notifier used by services built with a nil notifier.
func SetDefaultNotifier(n Notifier) {
	defaultNotifierMu.Lock()
	defer defaultNotifierMu.Unlock()
	if n == nil {
		n = NopNotifier{}
	}
	defaultNotifier = n
}

func DefaultNotifier() Notifier {
	defaultNotifierMu.RLock()
	defer defaultNotifierMu.RUnlock()
	return defaultNotifier
}

// MailSender matches config.SendMail.
type MailSender func(to []string, subject, html string) error

// MailNotifier e-mails the submitter when a proposal is received or its status changes.
type MailNotifier struct {
	send    MailSender
	siteURL string
	wg      sync.WaitGroup
}

func NewMailNotifier(send MailSender, siteURL string) *MailNotifier {
	if send == nil {
		send = config.SendMail
	}
	return &MailNotifier{send: send, siteURL: strings.TrimRight(siteURL, "/")}
}

func (n *MailNotifier) Notify(_ context.Context, event ProposalEvent) {
	if !utils.ValidateEmail(event.UserEmail) {
		if event.UserEmail != "" {
			config.Logger.Warn("proposal email skipped: invalid address",
				zap.String("submission_id", event.SubmissionID))
		}
		return
	}

	var subject, message string
	switch event.Type {
	case EventSubmitted:
		subject = "Submission Received: " + event.Title
		message = "Your whitepaper has been added to the Swarm Showcase. Our team will review it and reach out soon."
	case EventStatusChanged:
		subject = fmt.Sprintf("%s is now %s", event.Title, event.Status.Label())
		message = fmt.Sprintf("The status of your proposal changed to %s.", event.Status.Label())
	default:
		return
	}
	if n.siteURL != "" {
		message += "\n\n" + n.siteURL + "/proposal/" + event.SubmissionID
	}

	html := buildProposalEmailHTML(subject, event.UserName, message)
	to := []string{event.UserEmail}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.send(to, subject, html); err != nil {
			config.Logger.Warn("proposal email send failed",
				zap.String("subject", subject),
				zap.String("submission_id", event.SubmissionID),
				zap.Error(err))
		}
	}()
}

// Wait blocks until every queued mail has been attempted.
func (n *MailNotifier) Wait() {
	n.wg.Wait()
}

func buildProposalEmailHTML(subject, name, message string) string {
	if strings.TrimSpace(name) == "" {
		name = "there"
	}
	escapedSubject := template.HTMLEscapeString(subject)
	escapedGreeting := template.HTMLEscapeString(fmt.Sprintf("Hi %s,", name))
	escapedMessage := template.HTMLEscapeString(strings.TrimSpace(message))
	escapedMessage = strings.ReplaceAll(escapedMessage, "\n", "<br />")

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#0f0f0f;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#1a1a1a;border:1px solid #c9a227;border-radius:12px;padding:24px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#f5f5f5;">%s</p>
    <p style="margin:0;font-size:16px;line-height:1.7;color:#f5f5f5;word-break:break-word;">%s</p>
  </div>
</div>
</body>
</html>`, escapedSubject, escapedGreeting, escapedMessage)
}

// EventPublisher is the subset of *nats.Conn used to publish events.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// EventNotifier publishes proposal events as JSON on "<prefix>.<type>".
type EventNotifier struct {
	conn   EventPublisher
	prefix string
}

func NewEventNotifier(conn EventPublisher, prefix string) *EventNotifier {
	if prefix == "" {
		prefix = "proposals"
	}
	return &EventNotifier{conn: conn, prefix: prefix}
}

func (n *EventNotifier) Subject(eventType EventType) string {
	return n.prefix + "." + string(eventType)
}

func (n *EventNotifier) Notify(ctx context.Context, event ProposalEvent) {
	if n.conn == nil {
		return
	}
	if err := ctx.Err(); err != nil {
		config.Logger.Warn("proposal event dropped", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		config.Logger.Error("marshal proposal event", zap.Error(err))
		return
	}
	if err := n.conn.Publish(n.Subject(event.Type), data); err != nil {
		config.Logger.Warn("publish proposal event failed",
			zap.String("subject", n.Subject(event.Type)),
			zap.String("submission_id", event.SubmissionID),
			zap.Error(err))
	}
}
