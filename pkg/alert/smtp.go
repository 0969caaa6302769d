package alert

import (
	"context"

	"gopkg.in/gomail.v2"

	config "github.com/anuban-lab/sarabun/pkg/config"
	"github.com/anuban-lab/sarabun/pkg/logutils"
)

type SMTPAlerter struct {
	dialer *gomail.Dialer
	sender string
}

func newSMTPAlerter() alertHandlerInterface {
	smtpConfig := config.GetConfig()
	dialer := gomail.NewDialer(
		smtpConfig.SMTP.Host,
		smtpConfig.SMTP.Port,
		smtpConfig.SMTP.User,
		smtpConfig.SMTP.Password,
	)
	return &SMTPAlerter{
		dialer: dialer,
		sender: smtpConfig.SMTP.Sender,
	}
}

func (sa *SMTPAlerter) SendMessageTo(_ context.Context, receiver, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", sa.sender)
	m.SetHeader("To", receiver)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := sa.dialer.DialAndSend(m); err != nil {
		logutils.Log.Errorf("failed to send mail to %s: %v", receiver, err)
		return err
	}
	return nil
}
