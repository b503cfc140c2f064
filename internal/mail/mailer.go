package mail

import (
	"bytes"
	"fmt"
	"net/smtp"

	"confreg/internal/config"
	"confreg/internal/logger"
	"confreg/internal/models"
)

// Service sends transactional receipt emails. When SMTP is unconfigured or
// the booking has no email address, sending is silently skipped; transport
// failures are returned so the caller can log them, but callers must never
// propagate them further.
type Service struct {
	cfg    config.EmailConfig
	logger *logger.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewService(cfg config.EmailConfig, log *logger.Logger) *Service {
	return &Service{cfg: cfg, logger: log, send: smtp.SendMail}
}

func (s *Service) SendReceipt(booking models.Booking) error {
	if s.cfg.SMTPHost == "" || booking.Email == "" {
		s.logger.Debug("MAIL", "Receipt skipped: mail not configured or no recipient")
		return nil
	}

	subject, body := BuildReceipt(booking)
	msg := s.buildMessage(booking.Email, subject, body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" && s.cfg.SMTPPassword != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	if err := s.send(addr, auth, s.cfg.From, []string{booking.Email}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	s.logger.LogMail(booking.Email, "Receipt sent")
	return nil
}

func (s *Service) buildMessage(to, subject, body string) []byte {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", s.cfg.From))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}
