package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
)

type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	host     string
	port     string
	from     string
	password string
}

func NewSMTPSender(host, port, from, password string) *SMTPSender {
	return &SMTPSender{host: host, port: port, from: from, password: password}
}

func (s *SMTPSender) Send(_ context.Context, to, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + s.from + "\r\n" +
		"To: " + to + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		htmlBody + "\r\n")

	if err := smtp.SendMail(s.host+":"+s.port, auth, s.from, []string{to}, message); err != nil {
		return fmt.Errorf("send mail via %s: %w", s.host, err)
	}
	return nil
}

// LogSender stands in when no SMTP relay is configured: it logs the mail and
// succeeds, so the rest of the notification flow behaves normally.
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("email delivery not configured, skipping mail to %s (%q)", to, subject)
	return nil
}
