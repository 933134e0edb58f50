package email

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/01moynul/fitshop-api/internal/config"
	"gopkg.in/mail.v2"
)

// Sender delivers a rendered message on behalf of a store.
type Sender interface {
	Send(ctx context.Context, storeID string, m *Mail) error
}

// SMTPSender sends through the store's own SMTP account. Stores without an
// SMTP host get the log-only placeholder, which is what local development uses.
type SMTPSender struct {
	Stores  config.StoreLookup
	Timeout time.Duration
}

func NewSMTPSender(stores config.StoreLookup, timeout time.Duration) *SMTPSender {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SMTPSender{Stores: stores, Timeout: timeout}
}

func (s *SMTPSender) Send(ctx context.Context, storeID string, m *Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg, ok := s.Stores.Store(storeID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoStoreConfig, storeID)
	}
	if cfg.SMTP.Host == "" {
		return LogSender{}.Send(ctx, storeID, m)
	}

	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.From, m.FromName)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	msg.AddAlternative("text/html", m.HTML)

	port := cfg.SMTP.Port
	if port == 0 {
		port = 587
	}
	d := mail.NewDialer(cfg.SMTP.Host, port, cfg.SMTP.Username, cfg.SMTP.Password)
	d.Timeout = s.Timeout

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogSender is our placeholder transport: instead of sending a real email,
// we log it to the console.
type LogSender struct{}

func (LogSender) Send(_ context.Context, storeID string, m *Mail) error {
	log.Println("====================================================")
	log.Printf("--- NEW EMAIL (PLACEHOLDER) store=%s ---", storeID)
	log.Printf("From: %s <%s>", m.FromName, m.From)
	log.Printf("To: %s", m.To)
	log.Printf("Subject: %s", m.Subject)
	log.Println("--- Body ---")
	log.Println(m.Text)
	log.Println("====================================================")
	return nil
}
