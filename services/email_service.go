package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"gopkg.in/gomail.v2"

	"agrinet-api/config"
	"agrinet-api/utils"
)

// OTPMailer dispatches one-time verification codes. Satisfied by
// EmailService; tests substitute a stub.
type OTPMailer interface {
	SendOTP(email, name, code string) error
}

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// GenerateOTP returns a random 6-digit numeric code.
func GenerateOTP() string {
	const digits = "0123456789"
	code := make([]byte, 6)

	for i := range code {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		code[i] = digits[num.Int64()]
	}

	return string(code)
}

// SendOTP emails the verification code to the given address.
func (es *EmailService) SendOTP(email, name, code string) error {
	if !utils.IsValidEmail(email) {
		return fmt.Errorf("invalid recipient address: %s", email)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "AgriNet - Email Verification")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Email Verification</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #2e7d32; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .code { background: #e9ecef; padding: 20px; text-align: center; border-radius: 8px; margin: 20px 0; }
        .code-number { font-size: 32px; font-weight: bold; color: #2e7d32; letter-spacing: 8px; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>AgriNet</h1>
            <p>Email Verification</p>
        </div>
        <div class="content">
            <h2>Hello %s!</h2>
            <p>Welcome to AgriNet! Please verify your email address to complete your registration.</p>

            <div class="code">
                <p><strong>Your verification code is:</strong></p>
                <div class="code-number">%s</div>
                <p><small>This code will expire in 5 minutes.</small></p>
            </div>

            <p>If you didn't create an account with AgriNet, please ignore this email.</p>

            <p><strong>The AgriNet Team</strong></p>
        </div>
        <div class="footer">
            <p>This is an automated email, please do not reply.</p>
        </div>
    </div>
</body>
</html>`, name, code)

	textBody := fmt.Sprintf(`
Hello %s!

Welcome to AgriNet! Please verify your email address to complete your registration.

Your verification code is: %s

This code will expire in 5 minutes.

If you didn't create an account with AgriNet, please ignore this email.

The AgriNet Team
`, name, code)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
