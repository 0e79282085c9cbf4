package mailer

import (
	"crypto/tls"
	"log"
	"strconv"

	"mailflow-backend/pkg/config"

	"gopkg.in/gomail.v2"
)

// smtpTransport sends through a plain SMTP relay using gomail
type smtpTransport struct {
	dialer        *gomail.Dialer
	senderAddress string
	senderName    string
}

func NewSMTPTransport(cfg *config.Config) Transport {
	log.Printf("[mailer] Initializing SMTP transport for host: %s, port: %d, user: %s", cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser)
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	if cfg.SMTPSkipTLSVerify {
		log.Printf("[mailer] TLS certificate verification is disabled for SMTP connections")
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &smtpTransport{
		dialer:        d,
		senderAddress: cfg.SenderAddress,
		senderName:    cfg.SenderName,
	}
}

func (t *smtpTransport) Send(msg *RenderedMessage) (bool, error) {
	m := gomail.NewMessage()

	from := msg.From
	if from == "" {
		from = t.senderAddress
	}
	m.SetAddressHeader("From", from, t.senderName)
	m.SetHeader("To", msg.To...)
	if len(msg.CC) > 0 {
		m.SetHeader("Cc", msg.CC...)
	}
	if len(msg.BCC) > 0 {
		m.SetHeader("Bcc", msg.BCC...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("X-Priority", strconv.Itoa(msg.Priority))

	if msg.HTML {
		m.SetBody("text/html", msg.Body)
	} else {
		m.SetBody("text/plain", msg.Body)
	}

	if err := t.dialer.DialAndSend(m); err != nil {
		log.Printf("[mailer] SMTP send failed: %v", err)
		return false, err
	}

	log.Printf("[mailer] Mail sent to %d recipients. Subject: %s", len(msg.To), msg.Subject)
	return true, nil
}
