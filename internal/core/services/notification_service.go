package services

import (
	"context"
	"fmt"
	"strings"

	"eventhire/internal/config"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// NotifyResult reports the outcome of a best-effort notification
type NotifyResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Notifier sends messages to companies. Implementations never return an
// error; failures are reported in NotifyResult.
type Notifier interface {
	NotifyJobRejected(ctx context.Context, companyEmail, jobTitle, reason string) NotifyResult
}

// mailSender is satisfied by *mail.Dialer
type mailSender interface {
	DialAndSend(m ...*mail.Message) error
}

// EmailNotifier delivers notifications over SMTP
type EmailNotifier struct {
	from    string
	sender  mailSender
	enabled bool
	logger  *zap.Logger
}

// NewEmailNotifier creates a notifier from mail config. It is disabled
// when no SMTP host is configured.
func NewEmailNotifier(cfg config.MailConfig, logger *zap.Logger) *EmailNotifier {
	n := &EmailNotifier{
		from:    cfg.From,
		enabled: cfg.Enabled(),
		logger:  orNop(logger),
	}
	if n.enabled {
		n.sender = mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return n
}

// IsEnabled checks if notification is enabled
func (n *EmailNotifier) IsEnabled() bool {
	return n.enabled
}

// NotifyJobRejected tells the company its job request was rejected
func (n *EmailNotifier) NotifyJobRejected(ctx context.Context, companyEmail, jobTitle, reason string) NotifyResult {
	if !n.enabled {
		return NotifyResult{Success: false, Error: "mail disabled"}
	}
	if strings.TrimSpace(companyEmail) == "" {
		return NotifyResult{Success: false, Error: "company email missing"}
	}
	if err := ctx.Err(); err != nil {
		return NotifyResult{Success: false, Error: err.Error()}
	}

	m := mail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", companyEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your job request \"%s\" was not approved", jobTitle))
	m.SetBody("text/plain", rejectionBody(jobTitle, reason))

	if err := n.sender.DialAndSend(m); err != nil {
		n.logger.Warn("rejection email failed",
			zap.String("to", companyEmail),
			zap.Error(err),
		)
		return NotifyResult{Success: false, Error: err.Error()}
	}

	n.logger.Info("rejection email sent", zap.String("to", companyEmail))
	return NotifyResult{Success: true}
}

func rejectionBody(jobTitle, reason string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\nYour job request \"%s\" has been reviewed and was not approved.\n", jobTitle)
	if reason != "" {
		fmt.Fprintf(&b, "\nReason: %s\n", reason)
	}
	b.WriteString("\nYou can update the details and submit a new request at any time.\n\nEventHire")
	return b.String()
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
