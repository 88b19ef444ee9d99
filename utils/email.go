package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

func SendWelcomeEmail(email, name string) {
	go func() {
		subject := "Welcome to LaunchBoost!"
		body := fmt.Sprintf(`<h2>Welcome to LaunchBoost, %s!</h2>
<p>Thank you for creating your account. You can now:</p>
<ul>
<li>Browse exclusive SaaS deals</li>
<li>Claim discount codes from founders</li>
<li>Submit your own product deals</li>
</ul>
<p>The LaunchBoost Team</p>`, strings.Split(name, " ")[0])
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}()
}

func SendDealSubmittedEmail(email, name, dealTitle string) {
	go func() {
		subject := "Deal Submitted for Review - LaunchBoost"
		body := fmt.Sprintf(`<h2>Deal Submitted!</h2>
<p>Hi %s,</p>
<p>Your deal <strong>%s</strong> has been submitted and is pending review.</p>
<p>We'll notify you once it has been approved and is live on the marketplace.</p>
<p>The LaunchBoost Team</p>`, strings.Split(name, " ")[0], dealTitle)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send submission email to %s: %v", email, err)
		}
	}()
}

func SendDealReviewedEmail(email, name, dealTitle, status string) {
	go func() {
		subject := "Deal Review Update - LaunchBoost"
		body := fmt.Sprintf(`<h2>Deal Review Update</h2>
<p>Hi %s,</p>
<p>Your deal <strong>%s</strong> has been <strong>%s</strong>.</p>
<p>The LaunchBoost Team</p>`, strings.Split(name, " ")[0], dealTitle, status)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send review email to %s: %v", email, err)
		}
	}()
}

func SendCodeClaimedEmail(email, name, dealTitle, code string) {
	go func() {
		subject := fmt.Sprintf("Your Code for %s - LaunchBoost", dealTitle)
		body := fmt.Sprintf(`<h2>Deal Code Claimed!</h2>
<p>Hi %s,</p>
<p>Here is your discount code for <strong>%s</strong>:</p>
<div style="background:#f5f5f5;padding:15px;border-radius:8px;margin:20px 0;">
<p style="margin:5px 0;font-size:20px;"><strong>%s</strong></p>
</div>
<p>Redeem it on the product's website before the deal expires.</p>
<p>The LaunchBoost Team</p>`, strings.Split(name, " ")[0], dealTitle, code)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send claim email to %s: %v", email, err)
		}
	}()
}
