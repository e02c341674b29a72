package channels

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"

	"nftpawn/internal/notifications"
	"nftpawn/internal/platform/config"
)

// EmailSender delivers notifications via SMTP.
type EmailSender struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

// NewEmailSender creates an SMTP email sender.
func NewEmailSender(cfg config.SMTPConfig, logger *slog.Logger) *EmailSender {
	return &EmailSender{cfg: cfg, logger: logger}
}

func (s *EmailSender) Kind() notifications.ChannelKind {
	return notifications.ChannelEmail
}

func (s *EmailSender) Send(ctx context.Context, destination string, msg notifications.Message) error {
	e := email.NewEmail()
	e.From = s.cfg.Sender
	e.To = []string{destination}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("send email to %s: %w", destination, err)
	}

	s.logger.InfoContext(ctx, "email sent", "to", destination, "subject", msg.Subject)
	return nil
}
