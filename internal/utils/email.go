package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

// EmailConfig carries SMTP settings read from the environment. When
// host, port or sender are missing, sending is disabled and SendEmail
// returns an error the caller can log and ignore.
type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// GetEmailConfig reads SMTP settings from environment variables.
func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail delivers a plain-text message over SMTP. Authentication is
// only used when both username and password are configured.
func SendEmail(to, subject, body string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + body)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

// SendReservationOutcomeEmail composes and sends the booking outcome
// notification: a confirmation for admitted bookings, the rejection
// reason otherwise.
func SendReservationOutcomeEmail(to, restaurant, date, timeOfDay string, partySize int, success bool, reason string) error {
	if success {
		subject := fmt.Sprintf("Reservation confirmed at %s", restaurant)
		body := fmt.Sprintf(
			"Your table for %d at %s is confirmed for %s at %s.\n\nSee you there!\n",
			partySize, restaurant, date, timeOfDay)
		return SendEmail(to, subject, body)
	}
	subject := fmt.Sprintf("Reservation request at %s could not be completed", restaurant)
	body := fmt.Sprintf(
		"We could not complete your reservation for %d at %s on %s at %s.\n\n%s\n",
		partySize, restaurant, date, timeOfDay, reason)
	return SendEmail(to, subject, body)
}
