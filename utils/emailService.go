package utils

import (
	"elearning/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email through SendGrid. When no API key is
// configured the message is printed to the console instead, so local
// development and tests never hit the network.
func SendEmail(to, subject, htmlBody string) error {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("--- Console Email ---\nTo: %s\nSubject: %s\n%s\n--- End Email ---", to, subject, htmlBody)
		return nil
	}

	from := mail.NewEmail("E-Learning Platform", config.AppConfig.EmailSender)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all outgoing emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A3C6E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A3C6E; line-height: 1.6; }
			.content h2 { color: #1A3C6E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #d7b56d; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>E-LEARNING PLATFORM</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 E-Learning Platform. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendVerificationEmail carries the link that materializes a pending
// registration. Sent synchronously: registration rolls back when it fails.
func SendVerificationEmail(email, firstName, token string) error {
	if firstName == "" {
		firstName = "User"
	}
	verificationURL := fmt.Sprintf("%s/verify-email?token=%s", config.AppConfig.FrontendURL, token)

	subject := "Verify your email address"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for registering. Please confirm your email address to activate your account.</p>
		<p><a class="btn" href="%s">Verify Email</a></p>
		<div class="info-box">
			This link expires in %d hours. If it expires, simply register again.
		</div>
	`, firstName, verificationURL, config.AppConfig.PendingUserTTLHours)

	return SendEmail(email, subject, getEmailTemplate("Confirm Your Email", body))
}

// SendWelcomeEmail greets a freshly verified account. Best-effort, async.
func SendWelcomeEmail(email, firstName string) {
	if firstName == "" {
		firstName = "User"
	}
	subject := "Welcome aboard!"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your account is now active. Browse the catalog and enroll in your first course.</p>
	`, firstName)

	go SendEmail(email, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendEnrollmentEmail confirms a new enrollment. Best-effort, async.
func SendEnrollmentEmail(email, firstName, courseTitle string) {
	if firstName == "" {
		firstName = "User"
	}
	subject := "Enrollment confirmed: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<p>Head to your dashboard to start watching.</p>
	`, firstName, courseTitle)

	go SendEmail(email, subject, getEmailTemplate("Enrollment Successful", body))
}
