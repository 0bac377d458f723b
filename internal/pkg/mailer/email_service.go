package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendResetToken(toEmail, token string) error
	SendUserId(toEmail, nickname, userId string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderEmail, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendResetToken(toEmail, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Password reset for your study assistant account")

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.clientURL, token)

	body := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; color: #222;">
			<h2>Reset your password</h2>
			<p>We received a request to reset the password for this account.</p>
			<p><a href="%s" style="background: #2563eb; color: #fff; padding: 10px 18px; border-radius: 4px; text-decoration: none; display: inline-block;">Choose a new password</a></p>
			<p>If the button does not work, paste this link into your browser:</p>
			<p>%s</p>
			<p>The link expires in one hour. If you did not ask for a reset, you can ignore this message.</p>
		</div>
	`, resetLink, resetLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send reset token to %s: %w", toEmail, err)
	}

	return nil
}

func (s *emailService) SendUserId(toEmail, nickname, userId string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your study assistant login id")

	greeting := "Hello"
	if nickname != "" {
		greeting = fmt.Sprintf("Hello %s", nickname)
	}

	body := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; color: #222;">
			<h2>Your login id</h2>
			<p>%s, you asked us to remind you of the id registered with this email address.</p>
			<p style="font-size: 18px; font-weight: bold;">%s</p>
			<p><a href="%s/login" style="background: #2563eb; color: #fff; padding: 10px 18px; border-radius: 4px; text-decoration: none; display: inline-block;">Go to login</a></p>
			<p>If you did not ask for this reminder, you can ignore this message.</p>
		</div>
	`, greeting, userId, s.clientURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send user id to %s: %w", toEmail, err)
	}

	return nil
}
