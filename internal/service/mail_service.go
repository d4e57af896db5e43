package service

import (
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// MailService sends transactional email over SMTP. Constructed once in
// bootstrap and injected into the components that need it.
type MailService struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Logger
}

func NewMailService(cfg config.SMTPConfig, log *logrus.Logger) *MailService {
	return &MailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

// Send delivers a plain-text message, optionally attaching files by path.
func (s *MailService) Send(to []string, subject, body string, attachments ...string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	for _, attachment := range attachments {
		m.Attach(attachment)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Warnf("Failed to send email to %v: %+v", to, err)
		return err
	}
	return nil
}
