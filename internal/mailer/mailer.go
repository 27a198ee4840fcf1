package mailer

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender delivers composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer emails owners about moderation decisions.
type SMTPMailer struct {
	from   string
	sender Sender
	logger *logger.Logger
}

func NewSMTPMailer(host string, port int, from, password string, log *logger.Logger) *SMTPMailer {
	return NewMailer(from, gomail.NewDialer(host, port, from, password), log)
}

func NewMailer(from string, sender Sender, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{from: from, sender: sender, logger: log.Named("Mailer")}
}

func (m *SMTPMailer) ListingModerated(ctx context.Context, to *domain.Account, l *domain.Listing) error {
	if to == nil || to.Email == "" {
		return nil
	}
	subject, body := moderationMessage(to, l)
	return m.SendMessage(ctx, to.Email, subject, body)
}

func (m *SMTPMailer) SendMessage(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.sender.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send email", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	m.logger.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func moderationMessage(to *domain.Account, l *domain.Listing) (string, string) {
	var verdict string
	switch l.Status {
	case domain.StatusApproved:
		verdict = "has been approved and is now visible to buyers"
	case domain.StatusDeclined:
		verdict = "has been declined. Edit it to submit it for review again"
	case domain.StatusSold:
		verdict = "has been marked as sold by a moderator"
	default:
		verdict = "is pending review again"
	}
	subject := fmt.Sprintf("Your listing %q: %s", l.Book.Title, l.Status)
	body := fmt.Sprintf("Hello %s,\n\nYour listing %q %s.\n", to.Name, l.Book.Title, verdict)
	return subject, body
}
