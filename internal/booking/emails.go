package booking

import (
	"fmt"
)

// sendPaidNotifications emails the customer and alerts the admin after
// a booking settles as paid. Failures are logged and swallowed: mail
// must never undo or block a settlement.
func (s *service) sendPaidNotifications(b *Booking) {
	subject := "Session Booking Confirmation"
	text := fmt.Sprintf(
		"Dear %s,\n\nYour session is confirmed for %s at %s (%s).\nPlease be on time to make the most of your reading.\n\nWarm regards,\nThe Team",
		b.FirstName, b.SessionDate, b.SessionTime(), b.Profile,
	)
	html := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your session is confirmed for <strong>%s at %s (%s)</strong>.</p><p>Please be on time to make the most of your reading.</p><p>Warm regards,<br>The Team</p>",
		b.FirstName, b.SessionDate, b.SessionTime(), b.Profile,
	)

	if _, err := s.mail.Send(b.Email, b.FirstName, subject, text, html); err != nil {
		s.logger.Error("confirmation email failed", "booking_id", b.ID, "error", err)
	}

	if s.adminEmail == "" {
		return
	}

	alertSubject := "New Session Booking"
	alertText := fmt.Sprintf(
		"New booking paid.\nName: %s %s\nEmail: %s\nSession: %s at %s (%s)\nAmount: %.2f %s",
		b.FirstName, b.LastName, b.Email,
		b.SessionDate, b.SessionTime(), b.Profile,
		b.Amount, b.Currency,
	)

	if _, err := s.mail.Send(s.adminEmail, "", alertSubject, alertText, ""); err != nil {
		s.logger.Error("admin alert email failed", "booking_id", b.ID, "error", err)
	}
}
