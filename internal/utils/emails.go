package utils

import (
	"log"

	"gopkg.in/gomail.v2"

	"github.com/PranayKumarReddyW/Backend/internal/config"
)

// SendEmail sends an HTML email, attaching any listed files.
func SendEmail(cfg config.Config, to string, subject string, body string, attachments ...string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", cfg.SMTPUsername)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	for _, path := range attachments {
		mailer.Attach(path)
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	if err := dialer.DialAndSend(mailer); err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Email sent successfully to %s", to)
	return nil
}
