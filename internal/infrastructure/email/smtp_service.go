package email

import (
	"context"
	"fmt"
	"net/smtp"
)

type WelcomeEmailData struct {
	Email    string
	Username string
}

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error {
	subject := "Welcome to SparkIn"
	body := fmt.Sprintf(`Hi %s,

Thanks for joining SparkIn! Your account is ready: sign in, set up your
profile and publish your first post.

If you did not create this account, you can ignore this email.`, data.Username)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body))

	return smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg)
}
