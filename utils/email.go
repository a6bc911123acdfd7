package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendOrderConfirmation emails the buyer their order summary and, when the
// settlement minted one, the reward discount code. Called after commit; a
// failed mail never affects the order.
func SendOrderConfirmation(to string, orderNumber int64, total float64, rewardCode string) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	body := fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p>Your order <strong>#%d</strong> has been confirmed.</p>
		<p>Amount paid: <strong>%.2f</strong></p>`, orderNumber, total)
	if rewardCode != "" {
		body += fmt.Sprintf(`
		<p>You just placed a milestone order - here is a discount code for
		your next purchase: <strong>%s</strong></p>`, rewardCode)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Order #%d confirmed - %s", orderNumber, AppName))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
