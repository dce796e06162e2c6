package config

import (
	"crypto/tls"
	"fmt"

	mail "github.com/go-mail/mail/v2"
)

// MailConfigured reports whether outgoing mail can be sent.
func MailConfigured() bool {
	return Cfg.SMTPHost != "" && Cfg.SMTPFrom != ""
}

func SendMail(to []string, subject, html string) error {
	if len(to) == 0 {
		return nil
	}
	if !MailConfigured() {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	m := mail.NewMessage()
	m.SetHeader("From", Cfg.SMTPFrom)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := mail.NewDialer(Cfg.SMTPHost, Cfg.SMTPPort, Cfg.SMTPUser, Cfg.SMTPPass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         Cfg.SMTPHost,
		InsecureSkipVerify: Cfg.SMTPSkipTLSVerify, // dev only
	}

	return d.DialAndSend(m)
}
