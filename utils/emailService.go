package utils

import (
	"elearn/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a transactional email through SendGrid.
func SendEmail(toEmail, subject, plainBody, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("SENDGRID_API_KEY not set, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	if htmlBody == "" {
		htmlBody = "<pre>" + plainBody + "</pre>"
	}

	from := mail.NewEmail("E-Learn", config.AppConfig.EmailSender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainBody, htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("email delivery failed, code: %d", resp.StatusCode)
	}

	return nil
}

// SendOTPEmail delivers a verification code.
func SendOTPEmail(otp, email string) error {
	subject := "Your E-Learn verification code"
	plain := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes. Do not share it with anyone.", otp)
	html := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif;">
				<p>Your One Time Password (OTP) is:</p>
				<h1 style="color: #4CAF50;">%s</h1>
				<p>It expires in 5 minutes. Do not share this OTP with anyone.</p>
			</body>
		</html>
	`, otp)
	return SendEmail(email, subject, plain, html)
}

// SendEnrollmentDecisionEmail notifies a user that their enrollment
// request was approved or rejected.
func SendEnrollmentDecisionEmail(email, userName, courseName, status, reason string) error {
	var subject, plain string
	if status == "APPROVED" {
		subject = fmt.Sprintf("Enrollment approved: %s", courseName)
		plain = fmt.Sprintf("Dear %s,\n\nYour enrollment in %s has been approved. The course content is now available in your account.\n\nHappy learning!", userName, courseName)
	} else {
		subject = fmt.Sprintf("Enrollment update: %s", courseName)
		plain = fmt.Sprintf("Dear %s,\n\nYour enrollment request for %s was not approved.", userName, courseName)
		if reason != "" {
			plain += fmt.Sprintf("\nReason: %s", reason)
		}
		plain += "\n\nYou may submit a new request at any time."
	}

	html := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif;">
				<pre style="font-family: inherit;">%s</pre>
			</body>
		</html>
	`, plain)

	return SendEmail(email, subject, plain, html)
}
