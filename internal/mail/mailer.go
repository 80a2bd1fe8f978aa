package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Message is a single outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
	// MessageID is written to the Message-ID header and matched against
	// delivery webhook events. Generated when empty.
	MessageID string
}

type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	FromAddress string
	FromName    string
}

type SMTPSender struct {
	dialer *gomail.Dialer
	cfg    SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		cfg:    cfg,
	}
}

// Send delivers msg and returns its message id.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := msg.MessageID
	if messageID == "" {
		messageID = NewMessageID(s.cfg.FromAddress)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	if msg.ToName != "" {
		m.SetAddressHeader("To", msg.To, msg.ToName)
	} else {
		m.SetHeader("To", msg.To)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", "<"+messageID+">")
	if msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else {
		m.SetBody("text/html", msg.HTML)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("sending email via %s: %w", s.cfg.Host, err)
	}

	slog.DebugContext(ctx, "email sent", "message_id", messageID, "subject", msg.Subject)
	return messageID, nil
}

// NewMessageID returns a globally unique id in the sender's domain.
func NewMessageID(fromAddress string) string {
	domain := "churchthreads.local"
	if at := strings.LastIndex(fromAddress, "@"); at >= 0 && at < len(fromAddress)-1 {
		domain = fromAddress[at+1:]
	}
	return uuid.NewString() + "@" + domain
}
