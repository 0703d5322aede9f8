package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"time"

	"learnhub/config"
)

const (
	smtpHost = "smtp.gmail.com"
	smtpPort = "587"
)

func sendHTMLEmail(email, subjectLine, body string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	to := []string{email}

	subject := "Subject: " + subjectLine + "\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	message := []byte(subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		log.Printf("Error sending email to %s: %v", email, err)
		return err
	}

	log.Println("Email sent successfully to", email)
	return nil
}

// SendSubscriptionEmail sends a confirmation when a student subscribes to a course
func SendSubscriptionEmail(email, userName, courseTitle string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Subscription Confirmed</h2>
					<p style="font-size: 16px; color: #555555;">Hi %s,</p>
					<p style="font-size: 16px; color: #555555;">You are now subscribed to <strong>%s</strong>. All lessons and games of the course are unlocked for you.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Thank you for learning with us.</p>
				</div>
			</body>
		</html>
	`, userName, courseTitle)

	return sendHTMLEmail(email, "Course Subscription Confirmation - LearnHub", body)
}

// SendCourseCompletionEmail congratulates a student on reaching 100% progress
func SendCourseCompletionEmail(email, userName, courseTitle string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #4CAF50; text-align: center;">Congratulations, %s!</h2>
					<p style="font-size: 16px; color: #555555;">You completed every lesson of <strong>%s</strong>.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Keep going, your next course is waiting.</p>
				</div>
			</body>
		</html>
	`, userName, courseTitle)

	return sendHTMLEmail(email, "Course Completed - LearnHub", body)
}

// SendSubscriptionExpiryReminder warns a user their platform subscription is about to end
func SendSubscriptionExpiryReminder(email, userName string, expiresAt *time.Time) error {
	expiry := "soon"
	if expiresAt != nil {
		expiry = expiresAt.Format("02 Jan 2006")
	}

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Subscription Expiring</h2>
					<p style="font-size: 16px; color: #555555;">Hi %s,</p>
					<p style="font-size: 16px; color: #555555;">Your LearnHub subscription expires on <strong>%s</strong>. Renew to keep access to your courses.</p>
				</div>
			</body>
		</html>
	`, userName, expiry)

	return sendHTMLEmail(email, "Subscription Expiry Reminder - LearnHub", body)
}
