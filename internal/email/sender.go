package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"strings"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jvaldes/hucha/internal/config"
)

// Sender delivers rendered reports through the Gmail API on behalf of the
// authenticated user.
type Sender struct {
	cfg config.EmailConfig
}

// NewSender creates a sender from the email configuration.
func NewSender(cfg config.EmailConfig) *Sender {
	return &Sender{cfg: cfg}
}

// Send delivers an HTML message to the configured recipient.
func (s *Sender) Send(ctx context.Context, subject, htmlBody string) error {
	oauthCfg := OAuth2Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		TokenFile:    s.cfg.TokenFile,
	}

	token, err := GetOrCreateToken(ctx, oauthCfg)
	if err != nil {
		return fmt.Errorf("failed to authenticate with Google: %w", err)
	}

	httpClient := oauthCfg.oauthConfig().Client(ctx, token)
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("failed to create gmail service: %w", err)
	}

	message := buildMessage(s.cfg.From, s.cfg.To, subject, htmlBody)
	raw := base64.RawURLEncoding.EncodeToString([]byte(message))

	if _, err := svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("report emailed", "to", s.cfg.To, "subject", subject)
	return nil
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func buildMessage(from, to, subject, htmlBody string) string {
	var b strings.Builder
	if from != "" {
		b.WriteString("From: " + from + "\r\n")
	}
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.String()
}
